package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"blogcms/internal/models"
	"blogcms/internal/services"
	"blogcms/internal/utils"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	blog *services.BlogService
}

func NewBlogHandler(blog *services.BlogService) *BlogHandler {
	return &BlogHandler{blog: blog}
}

// Home 首页，展示最新公开文章
func (h *BlogHandler) Home(c *gin.Context) {
	page, _, err := h.blog.ListPosts(c.Request.Context(), "", "1")
	if err != nil {
		serverError(c, err)
		return
	}
	Render(c, http.StatusOK, "home.html", gin.H{"Page": page})
}

// List 文章列表，支持 q 搜索与 page 分页
func (h *BlogHandler) List(c *gin.Context) {
	page, query, err := h.blog.ListPosts(c.Request.Context(), c.Query("q"), c.Query("page"))
	if err != nil {
		serverError(c, err)
		return
	}
	Render(c, http.StatusOK, "blog/list.html", gin.H{
		"Page":  page,
		"Query": query,
	})
}

// renderedComment carries a comment with its body rendered to safe HTML.
type renderedComment struct {
	models.Comment
	ContentHTML template.HTML
}

func detailData(d *services.Detail) gin.H {
	comments := make([]renderedComment, len(d.ShownComments))
	for i, com := range d.ShownComments {
		comments[i] = renderedComment{Comment: com, ContentHTML: utils.RenderComment(com.Content)}
	}
	return gin.H{
		"Post":            d.Post,
		"ContentHTML":     utils.RenderPostContent(d.Post.Content),
		"Comments":        comments,
		"TotalComments":   d.TotalComments,
		"HasMoreComments": d.HasMoreComments,
		"NextCount":       d.NextCount,
		"CurrentCount":    d.CurrentCount,
		"Form":            services.CommentInput{},
		"InvalidFields":   []string(nil),
	}
}

// Detail 文章详情，c 控制展示的评论数
func (h *BlogHandler) Detail(c *gin.Context) {
	detail, ok := h.loadDetail(c)
	if !ok {
		return
	}
	Render(c, http.StatusOK, "blog/detail.html", detailData(detail))
}

// SubmitComment 提交评论，成功后重定向回详情页
func (h *BlogHandler) SubmitComment(c *gin.Context) {
	detail, ok := h.loadDetail(c)
	if !ok {
		return
	}

	var in services.CommentInput
	if err := c.ShouldBind(&in); err != nil {
		in = services.CommentInput{}
	}
	result, err := h.blog.SubmitComment(c.Request.Context(), detail.Post, in)
	if err != nil {
		serverError(c, err)
		return
	}

	if result.OK() {
		addFlash(c, FlashSuccess, result.Message)
		c.Redirect(http.StatusFound, "/blog/"+detail.Post.Slug+"/")
		return
	}

	data := detailData(detail)
	data["Form"] = result.Input
	data["InvalidFields"] = result.Fields
	data["Messages"] = []Flash{{Kind: FlashError, Message: result.Message}}
	Render(c, http.StatusBadRequest, "blog/detail.html", data)
}

func (h *BlogHandler) loadDetail(c *gin.Context) (*services.Detail, bool) {
	detail, err := h.blog.GetDetail(c.Request.Context(), c.Param("slug"), c.Query("c"))
	if errors.Is(err, services.ErrNotFound) {
		RenderError(c, http.StatusNotFound, "Post not found.")
		return nil, false
	}
	if err != nil {
		serverError(c, err)
		return nil, false
	}
	return detail, true
}
