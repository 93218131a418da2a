package uploads

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resume-critic/internal/extract"
	"resume-critic/internal/shared/server/middleware"
	"resume-critic/internal/shared/server/respond"
	"resume-critic/internal/shared/telemetry"
	"resume-critic/internal/shared/util"
)

const (
	presignExpires       = 15 * time.Minute
	defaultRegion        = "us-east-1"
	defaultUploadsPrefix = "documents/"
)

// PutObjectPresigner is the subset of s3.PresignClient used here.
type PutObjectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Handler issues presigned PUT URLs so clients can upload résumés straight
// to the bucket and then analyze them by key.
type Handler struct {
	presign  PutObjectPresigner
	bucket   string
	prefix   string
	maxBytes int64
	newID    func() string
}

// New constructs a Handler around an existing presigner.
func New(presign PutObjectPresigner, bucket, prefix string, maxBytes int64) *Handler {
	return &Handler{
		presign:  presign,
		bucket:   bucket,
		prefix:   normalizePrefix(prefix),
		maxBytes: maxBytes,
		newID:    uuid.NewString,
	}
}

// NewFromConfig loads AWS config for region and builds a presigning Handler.
func NewFromConfig(ctx context.Context, region, bucket, prefix string, maxBytes int64) (*Handler, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, fmt.Errorf("uploads bucket is required")
	}
	region = strings.TrimSpace(region)
	if region == "" {
		region = defaultRegion
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return New(s3.NewPresignClient(s3.NewFromConfig(cfg)), bucket, prefix, maxBytes), nil
}

type presignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type presignResponse struct {
	UploadURL        string `json:"uploadUrl"`
	S3Key            string `json:"s3Key"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}

// RegisterRoutes attaches the presign route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/presign", h.presignUpload)
}

func (h *Handler) presignUpload(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req.FileName = strings.TrimSpace(req.FileName)
	req.ContentType = strings.TrimSpace(req.ContentType)

	if req.FileName == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileName is required", nil)
		return
	}
	format := extract.ResolveFormat(req.FileName, req.ContentType, nil)
	if format == extract.FormatUnknown || req.ContentType != format.ContentType() {
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_format", "only PDF and DOCX uploads are accepted", nil)
		return
	}
	if req.SizeBytes <= 0 || (h.maxBytes > 0 && req.SizeBytes > h.maxBytes) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "sizeBytes exceeds limit", nil)
		return
	}

	sanitized, err := util.SanitizeFileName(req.FileName)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid fileName", nil)
		return
	}

	key := path.Join(h.prefix, h.newID(), sanitized)
	out, err := h.presign.PresignPutObject(c.Request.Context(), presignInput(h.bucket, key, req.ContentType), func(opts *s3.PresignOptions) {
		opts.Expires = presignExpires
	})
	if err != nil {
		telemetry.Error("uploads.presign.failed", map[string]any{
			"err":          err.Error(),
			"bucket":       h.bucket,
			"key":          key,
			"content_type": req.ContentType,
			"size_bytes":   req.SizeBytes,
			"request_id":   middleware.RequestIDFromContext(c),
		})
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to generate upload url", nil)
		return
	}

	respond.OK(c, presignResponse{
		UploadURL:        out.URL,
		S3Key:            key,
		ExpiresInSeconds: int64(presignExpires.Seconds()),
	})
}

func presignInput(bucket, key, contentType string) *s3.PutObjectInput {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	return input
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return strings.TrimSuffix(defaultUploadsPrefix, "/")
	}
	return prefix
}
