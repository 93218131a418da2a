package respond

import (
	"github.com/gin-gonic/gin"

	"resume-critic/internal/shared/telemetry"
)

// ErrorBody is the machine-readable part of every API error.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse is the {"error": {...}} envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error aborts with the JSON error envelope and logs the failure.
func Error(c *gin.Context, status int, code, message string, details any) {
	logFailure(c, status, code, message)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message, Details: details}})
}

// logFailure records client errors at warn and server errors at error, tagged
// with whatever the handler stored on the context so far.
func logFailure(c *gin.Context, status int, code, message string) {
	fields := map[string]any{
		"status":  status,
		"code":    code,
		"message": message,
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
	}
	for ctxKey, field := range map[string]string{
		"requestId": "request_id",
		"fileName":  "file_name",
		"format":    "format",
	} {
		if v := c.GetString(ctxKey); v != "" {
			fields[field] = v
		}
	}

	log := telemetry.Warn
	if status >= 500 {
		log = telemetry.Error
	}
	log("http.error", fields)
}
