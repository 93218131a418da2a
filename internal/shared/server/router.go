package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-critic/internal/analyses"
	"resume-critic/internal/services/health"
	"resume-critic/internal/shared/config"
	"resume-critic/internal/shared/metrics"
	"resume-critic/internal/shared/server/middleware"
	"resume-critic/internal/uploads"
	"resume-critic/internal/web"
)

const rateLimitGroupAnalyze = "ANALYZE"

// RouterDeps carries the handlers NewRouter mounts. UploadsHandler may be nil.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	WebHandler      *web.Handler
	UploadsHandler  *uploads.Handler
	Health          *health.Service
	RateLimiter     *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				rateLimitGroupAnalyze: {Rate: deps.Config.RateLimitRPS, Burst: deps.Config.RateLimitBurst},
			},
			GroupFor: rateLimitGroup,
			Limiter:  deps.RateLimiter,
		}),
	)

	api := r.Group("/api/v1")
	if deps.Health != nil {
		deps.Health.RegisterRoutes(r, api)
	}
	if deps.WebHandler != nil {
		deps.WebHandler.RegisterRoutes(r)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}
	if deps.UploadsHandler != nil {
		deps.UploadsHandler.RegisterRoutes(api)
	}
	r.GET("/metrics", metrics.Handler())

	return r
}

// rateLimitGroup limits only the routes that run an analysis.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	p := c.Request.URL.Path
	if p == "/upload-resume" || strings.HasPrefix(p, "/api/v1/analyses") {
		return rateLimitGroupAnalyze
	}
	return ""
}
