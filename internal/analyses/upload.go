package analyses

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for part headers and the small text fields.
const multipartOverhead = 64 << 10

// ReadUpload reads the multipart "file" part plus the optional "industry"
// and "jobDescription" fields. Bodies over maxBytes yield ErrUploadTooLarge.
func ReadUpload(c *gin.Context, maxBytes int64) (Input, error) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			return Input{}, fmt.Errorf("read upload: %w", ErrUploadTooLarge)
		}
		return Input{}, fmt.Errorf("read upload: %w", ErrMissingFile)
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return Input{}, fmt.Errorf("read upload %q: %w", header.Filename, ErrUploadTooLarge)
	}

	file, err := header.Open()
	if err != nil {
		return Input{}, fmt.Errorf("open upload %q: %w", header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Input{}, fmt.Errorf("read upload %q: %w", header.Filename, err)
	}

	jobDescription := c.PostForm("jobDescription")
	if jobDescription == "" {
		jobDescription = c.PostForm("job_description")
	}
	return Input{
		FileName:       displayName(header.Filename),
		ContentType:    header.Header.Get("Content-Type"),
		Data:           data,
		Industry:       c.PostForm("industry"),
		JobDescription: jobDescription,
	}, nil
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

func displayName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if name == "" {
		return ""
	}
	return filepath.Base(name)
}
