package handlers

import (
	"errors"
	"strconv"
	"strings"

	"blogcms/internal/middleware"
	"blogcms/internal/response"
	"blogcms/internal/services"
	"blogcms/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// toAppError maps service errors onto envelope codes.
func toAppError(err error) *response.AppError {
	var appErr *response.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, services.ErrNotFound):
		return response.WrapError(response.CodeNotFound, "not found", err)
	case errors.Is(err, services.ErrSlugExists):
		return response.WrapError(response.CodeConflict, "slug already exists", err)
	case errors.Is(err, services.ErrInvalidInput):
		return response.WrapError(response.CodeBadRequest, err.Error(), err)
	case errors.Is(err, services.ErrInvalidPassword):
		return response.WrapError(response.CodeUnauthorized, "invalid password", err)
	case errors.Is(err, services.ErrAdminDisabled):
		return response.WrapError(response.CodeUnauthorized, "admin is disabled", err)
	default:
		return response.WrapError(response.CodeInternal, "internal error", err)
	}
}

func respondError(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.Code == response.CodeInternal {
		_ = c.Error(err)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.NotFound(c, "not found")
		return 0, false
	}
	return uint(id), true
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "password is required")
		return
	}
	if err := h.admin.Login(req.Password); err != nil {
		respondError(c, err)
		return
	}
	session := sessions.Default(c)
	session.Set(middleware.AdminSessionKey, true)
	if err := session.Save(); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"admin": true})
}

// Logout POST /admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.AdminSessionKey)
	if err := session.Save(); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"admin": false})
}

// ListPosts GET /admin/posts
func (h *AdminHandler) ListPosts(c *gin.Context) {
	page := utils.ParsePositiveInt(c.Query("page"), 1)
	posts, total, err := h.admin.ListPosts(c.Request.Context(), services.PostFilter{
		Search:   c.Query("q"),
		IsPublic: utils.ParseBool(c.Query("is_public")),
		Category: c.Query("category"),
		Author:   c.Query("author"),
		Page:     page,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithPage(c, posts, response.NewPagination(page, services.AdminPageSize, total))
}

// GetPost GET /admin/posts/:id
func (h *AdminHandler) GetPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	post, err := h.admin.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, post)
}

// CreatePost POST /admin/posts
func (h *AdminHandler) CreatePost(c *gin.Context) {
	var in services.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	post, err := h.admin.CreatePost(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, post)
}

// UpdatePost PUT /admin/posts/:id
func (h *AdminHandler) UpdatePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in services.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	post, err := h.admin.UpdatePost(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, post)
}

type publishRequest struct {
	IsPublic *bool `json:"is_public" binding:"required"`
}

// SetPublish PATCH /admin/posts/:id/publish
func (h *AdminHandler) SetPublish(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "is_public is required")
		return
	}
	if err := h.admin.SetPostPublic(c.Request.Context(), id, *req.IsPublic); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "is_public": *req.IsPublic})
}

// DeletePost DELETE /admin/posts/:id
func (h *AdminHandler) DeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.admin.DeletePost(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListComments GET /admin/comments
func (h *AdminHandler) ListComments(c *gin.Context) {
	page := utils.ParsePositiveInt(c.Query("page"), 1)
	filter := services.CommentFilter{
		Search:     strings.TrimSpace(c.Query("q")),
		IsApproved: utils.ParseBool(c.Query("is_approved")),
		Page:       page,
	}
	if postID := utils.ParsePositiveInt(c.Query("post_id"), 0); postID > 0 {
		filter.PostID = uint(postID)
	}
	comments, total, err := h.admin.ListComments(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithPage(c, comments, response.NewPagination(page, services.AdminPageSize, total))
}

type approvalRequest struct {
	IsApproved *bool `json:"is_approved" binding:"required"`
}

// SetApproval PATCH /admin/comments/:id/approval
func (h *AdminHandler) SetApproval(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "is_approved is required")
		return
	}
	if err := h.admin.SetCommentApproved(c.Request.Context(), id, *req.IsApproved); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "is_approved": *req.IsApproved})
}
