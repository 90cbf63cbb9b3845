package router

import (
	"net/http"
	"strings"
	"time"

	"blogcms/internal/cache"
	"blogcms/internal/config"
	"blogcms/internal/handlers"
	"blogcms/internal/logger"
	"blogcms/internal/middleware"
	"blogcms/internal/repository"
	"blogcms/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers into a gin engine.
func New(cfg *config.Config, conn *gorm.DB, store cache.Store) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = true
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger.Z()))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/", "/admin/"})))

	sessionStore := cookie.NewStore([]byte(cfg.Session.Secret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   strings.HasPrefix(cfg.Server.SiteURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(cfg.Session.Name, sessionStore))

	r.HTMLRender = LoadTemplates(cfg.Server.TemplatesDir, cfg.Server.SiteName)
	r.Static("/static", cfg.Server.StaticDir)

	posts := repository.NewPostRepository(conn)
	comments := repository.NewCommentRepository(conn)
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second

	blogService := services.NewBlogService(posts, comments)
	adminService := services.NewAdminService(posts, comments, store, cfg.Admin.PasswordHash)

	RegisterRoutes(r, Handlers{
		Blog:  handlers.NewBlogHandler(blogService),
		API:   handlers.NewAPIHandler(services.NewAPIService(posts, store, ttl)),
		Admin: handlers.NewAdminHandler(adminService),
		Feed:  handlers.NewFeedHandler(blogService, cfg.Server.SiteURL, cfg.Server.SiteName),
	}, adminService.Enabled())

	if !adminService.Enabled() {
		logger.Warnw("admin_disabled", "reason", "admin.password_hash is empty")
	}
	return r
}

// Handlers groups the route handlers.
type Handlers struct {
	Blog  *handlers.BlogHandler
	API   *handlers.APIHandler
	Admin *handlers.AdminHandler
	Feed  *handlers.FeedHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers, adminEnabled bool) {
	// 公共页面
	r.GET("/", h.Blog.Home)
	r.GET("/blog/", h.Blog.List)
	r.GET("/blog/:slug/", h.Blog.Detail)
	r.POST("/blog/:slug/", h.Blog.SubmitComment)
	r.GET("/feed.xml", h.Feed.RSSFeed)

	// 只读 API
	api := r.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))
	{
		api.GET("/posts/", h.API.ListPosts)
		api.GET("/posts/:id/", h.API.GetPost)
	}

	// 后台
	admin := r.Group("/admin")
	admin.POST("/login", h.Admin.Login)
	admin.POST("/logout", h.Admin.Logout)
	authorized := admin.Group("")
	authorized.Use(middleware.AdminRequired(adminEnabled))
	{
		authorized.GET("/posts", h.Admin.ListPosts)
		authorized.POST("/posts", h.Admin.CreatePost)
		authorized.GET("/posts/:id", h.Admin.GetPost)
		authorized.PUT("/posts/:id", h.Admin.UpdatePost)
		authorized.PATCH("/posts/:id/publish", h.Admin.SetPublish)
		authorized.DELETE("/posts/:id", h.Admin.DeletePost)
		authorized.GET("/comments", h.Admin.ListComments)
		authorized.PATCH("/comments/:id/approval", h.Admin.SetApproval)
	}

	r.NoRoute(func(c *gin.Context) {
		handlers.RenderError(c, http.StatusNotFound, "Page not found.")
	})
}
