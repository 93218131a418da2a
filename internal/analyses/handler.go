package analyses

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-critic/internal/export"
	"resume-critic/internal/shared/server/middleware"
	"resume-critic/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.analyzeUpload)
	rg.POST("/analyses/from-storage", h.analyzeStored)
}

type storedRequest struct {
	Key            string `json:"key"`
	FileName       string `json:"fileName"`
	Industry       string `json:"industry"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) analyzeUpload(c *gin.Context) {
	format, ok := downloadFormat(c)
	if !ok {
		return
	}

	in, err := ReadUpload(c, h.MaxUploadBytes)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set("fileName", in.FileName)

	result, err := h.Svc.Analyze(WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c)), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.write(c, result, format)
}

func (h *Handler) analyzeStored(c *gin.Context) {
	format, ok := downloadFormat(c)
	if !ok {
		return
	}

	var req storedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid JSON body", nil)
		return
	}
	req.Key = strings.TrimSpace(req.Key)
	if req.Key == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "key is required", []map[string]string{
			{"field": "key", "issue": "required"},
		})
		return
	}
	fileName := displayName(req.FileName)
	if fileName == "" {
		fileName = displayName(req.Key)
	}
	c.Set("fileName", fileName)

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	result, err := h.Svc.AnalyzeStored(ctx, req.Key, fileName, req.Industry, req.JobDescription)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.write(c, result, format)
}

func (h *Handler) write(c *gin.Context, result Result, format string) {
	c.Set("analysisId", result.ID)
	c.Set("format", result.Format)
	c.Set("industry", result.Report.Industry)
	c.Set("score", result.Report.OverallScore)

	switch format {
	case "xlsx":
		data, err := export.XLSX(result.Export())
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to render workbook", nil)
			return
		}
		respond.Attachment(c, export.FileName(result.FileName, "xlsx"), export.ContentTypeXLSX, data)
	case "pdf":
		data, err := export.PDF(result.Export())
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to render pdf", nil)
			return
		}
		respond.Attachment(c, export.FileName(result.FileName, "pdf"), export.ContentTypePDF, data)
	default:
		respond.OK(c, result)
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	f := Classify(err)
	respond.Error(c, f.Status, f.Code, f.Message, nil)
}

// downloadFormat validates ?format before any work is done.
func downloadFormat(c *gin.Context) (string, bool) {
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	switch format {
	case "", "json":
		return "json", true
	case "xlsx", "pdf":
		return format, true
	default:
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "format must be one of: json, xlsx, pdf", []map[string]string{
			{"field": "format", "issue": "invalid"},
		})
		return "", false
	}
}
