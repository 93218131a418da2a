package health

import (
	"github.com/gin-gonic/gin"

	"resume-critic/internal/shared/server/respond"
)

const serviceName = "AI Resume Critic"

// Service encapsulates health-related checks.
type Service struct {
	RulesVersion string
}

// NewService constructs a new health service.
func NewService(rulesVersion string) *Service {
	return &Service{RulesVersion: rulesVersion}
}

// Status is the API health payload.
func (s *Service) Status() gin.H {
	return gin.H{"ok": true, "rulesVersion": s.RulesVersion}
}

// Liveness is the root health payload kept for existing probes.
func (s *Service) Liveness() gin.H {
	return gin.H{"status": "healthy", "service": serviceName}
}

// RegisterRoutes attaches GET /health to r and GET /health to api.
func (s *Service) RegisterRoutes(r gin.IRoutes, api gin.IRoutes) {
	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, s.Liveness())
	})
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, s.Status())
	})
}
