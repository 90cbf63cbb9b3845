package middleware

import (
	"blogcms/internal/response"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AdminSessionKey marks a session that passed the admin password check.
const AdminSessionKey = "admin"

// IsAdmin reports whether the request's session is logged in as admin.
func IsAdmin(c *gin.Context) bool {
	v, ok := sessions.Default(c).Get(AdminSessionKey).(bool)
	return ok && v
}

// AdminRequired rejects requests without an admin session. With enabled false every
// request is rejected.
func AdminRequired(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			response.Abort(c, response.CodeUnauthorized, "admin is disabled")
			return
		}
		if !IsAdmin(c) {
			response.Abort(c, response.CodeUnauthorized, "login required")
			return
		}
		c.Next()
	}
}
