package respond

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// OK writes a 200 JSON payload. Analysis results are per-upload, so they are
// marked uncacheable.
func OK(c *gin.Context, payload any) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, payload)
}

// Attachment sends data as a download named fileName.
func Attachment(c *gin.Context, fileName, contentType string, data []byte) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": fileName})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition)
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, data)
}
