package handlers

import (
	"net/http"

	"blogcms/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// flash kinds, also used as CSS classes in the messages include
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

// Render helper to inject common variables like pending notices
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	messages, _ := obj["Messages"].([]Flash)
	obj["Messages"] = append(popFlashes(c), messages...)
	if _, ok := obj["Query"]; !ok {
		obj["Query"] = ""
	}
	obj["CurrentPath"] = c.Request.URL.Path
	obj["IsAdmin"] = middleware.IsAdmin(c)

	c.HTML(code, name, obj)
}

// RenderError renders error.html with message
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message, "Code": code})
}

// serverError records err for the request logger and renders a generic 500 page.
func serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	RenderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

func addFlash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, kind)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}
}

func popFlashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	var out []Flash
	for _, kind := range []string{FlashSuccess, FlashError} {
		for _, v := range session.Flashes(kind) {
			if s, ok := v.(string); ok {
				out = append(out, Flash{Kind: kind, Message: s})
			}
		}
	}
	if len(out) > 0 {
		if err := session.Save(); err != nil {
			_ = c.Error(err)
		}
	}
	return out
}
