package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader  = "X-Request-Id"
	requestIDCtxKey  = "requestId"
	maxRequestIDSize = 128
)

// RequestID propagates a caller-supplied X-Request-Id when it looks safe to
// log, and otherwise mints a UUID. The ID is echoed on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if !isValidRequestID(id) {
			id = uuid.NewString()
		}
		c.Set(requestIDCtxKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext returns the ID set by RequestID, or "".
func RequestIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(requestIDCtxKey)
}

// isValidRequestID accepts 1..128 characters of [A-Za-z0-9._:-].
func isValidRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDSize {
		return false
	}
	for i := 0; i < len(id); i++ {
		ch := id[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '-', ch == '_', ch == '.', ch == ':':
		default:
			return false
		}
	}
	return true
}
