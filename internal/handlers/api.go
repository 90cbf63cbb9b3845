package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"blogcms/internal/services"

	"github.com/gin-gonic/gin"
)

type APIHandler struct {
	api *services.APIService
}

func NewAPIHandler(api *services.APIService) *APIHandler {
	return &APIHandler{api: api}
}

func apiNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func apiServerError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "A server error occurred."})
}

// ListPosts GET /api/posts/
func (h *APIHandler) ListPosts(c *gin.Context) {
	posts, err := h.api.ListPosts(c.Request.Context())
	if err != nil {
		apiServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost GET /api/posts/:id/
func (h *APIHandler) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apiNotFound(c)
		return
	}
	post, err := h.api.GetPost(c.Request.Context(), uint(id))
	if errors.Is(err, services.ErrNotFound) {
		apiNotFound(c)
		return
	}
	if err != nil {
		apiServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
