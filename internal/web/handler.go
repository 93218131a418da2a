package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-critic/internal/analyses"
	"resume-critic/internal/analyses/rules"
	"resume-critic/internal/shared/server/middleware"
	"resume-critic/internal/shared/server/respond"
)

// Handler serves the browser upload form and the rendered report.
type Handler struct {
	Svc            *analyses.Service
	Rules          *rules.Table
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *analyses.Service, table *rules.Table, maxUploadBytes int64) *Handler {
	if table == nil {
		table = rules.Default()
	}
	return &Handler{Svc: svc, Rules: table, MaxUploadBytes: maxUploadBytes}
}

type industryOption struct {
	Name  string
	Label string
}

type formPage struct {
	Industries  []industryOption
	MaxUploadMB int64
}

// RegisterRoutes attaches the page routes. The engine must have Templates loaded.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.form)
	r.GET("/upload", h.form)
	r.POST("/upload-resume", h.upload)
}

func (h *Handler) form(c *gin.Context) {
	page := formPage{MaxUploadMB: h.MaxUploadBytes >> 20}
	for _, ind := range h.Rules.Industries {
		page.Industries = append(page.Industries, industryOption{Name: ind.Name, Label: ind.Label})
	}
	respond.HTML(c, http.StatusOK, "form.html", page)
}

func (h *Handler) upload(c *gin.Context) {
	in, err := analyses.ReadUpload(c, h.MaxUploadBytes)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set("fileName", in.FileName)

	ctx := analyses.WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	result, err := h.Svc.Analyze(ctx, in)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Set("analysisId", result.ID)
	c.Set("format", result.Format)
	c.Set("industry", result.Report.Industry)
	c.Set("score", result.Report.OverallScore)
	respond.HTML(c, http.StatusOK, "report.html", result)
}

func (h *Handler) fail(c *gin.Context, err error) {
	f := analyses.Classify(err)
	respond.HTMLError(c, f.Status, f.Code, f.Message)
}
