package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods  = "GET,POST,OPTIONS"
	corsAllowHeaders  = "Content-Type, X-Request-Id"
	corsExposeHeaders = "X-Request-Id, Content-Disposition, Retry-After"
	corsMaxAge        = "600"
)

type originPolicy struct {
	any     bool
	allowed map[string]struct{}
}

func newOriginPolicy(origins []string) originPolicy {
	p := originPolicy{allowed: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch o {
		case "":
		case "*":
			p.any = true
		default:
			p.allowed[strings.ToLower(o)] = struct{}{}
		}
	}
	return p
}

// allow returns the value for Access-Control-Allow-Origin, or "" if the
// origin is not permitted.
func (p originPolicy) allow(origin string) string {
	if origin == "" {
		return ""
	}
	if p.any {
		return "*"
	}
	if _, ok := p.allowed[strings.ToLower(strings.TrimRight(origin, "/"))]; ok {
		return origin
	}
	return ""
}

// CORS answers preflight requests and decorates responses for allowed
// origins. "*" in allowedOrigins permits any origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	policy := newOriginPolicy(allowedOrigins)

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Add("Vary", "Origin")
		if value := policy.allow(c.GetHeader("Origin")); value != "" {
			h.Set("Access-Control-Allow-Origin", value)
			h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
			if c.Request.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", corsAllowMethods)
				h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				h.Set("Access-Control-Max-Age", corsMaxAge)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
