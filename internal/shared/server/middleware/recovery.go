package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-critic/internal/shared/server/respond"
	"resume-critic/internal/shared/telemetry"
)

const panicMessage = "Unexpected server error"

// Recovery turns a handler panic into a 500. Browser page requests get the
// HTML error page; API callers get the JSON envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("http.panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"error":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
			})
			if c.Writer.Written() {
				c.Abort()
				return
			}
			if wantsHTML(c) {
				respond.HTMLError(c, http.StatusInternalServerError, "internal", panicMessage)
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal", panicMessage, nil)
		}()
		c.Next()
	}
}

func wantsHTML(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return false
	}
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
