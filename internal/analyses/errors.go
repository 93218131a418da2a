package analyses

import (
	"context"
	"errors"
	"net/http"

	"resume-critic/internal/extract"
	"resume-critic/internal/shared/storage/object"
	"resume-critic/internal/shared/storage/object/local"
	s3store "resume-critic/internal/shared/storage/object/s3"
)

var (
	// ErrMissingFile is returned when a multipart request has no "file" part.
	ErrMissingFile = errors.New("file is required")
	// ErrUploadTooLarge is returned when the upload exceeds the configured limit.
	ErrUploadTooLarge = errors.New("upload too large")
	// ErrSourceUnavailable is returned when no source store is configured.
	ErrSourceUnavailable = errors.New("source store not configured")
)

const (
	ErrorCodeValidation        = "validation_error"
	ErrorCodeUnsupportedFormat = "unsupported_format"
	ErrorCodeParseFailure      = "parse_failure"
	ErrorCodeEmptyInput        = "empty_input"
	ErrorCodeTooLarge          = "file_too_large"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeSourceUnavailable = "source_unavailable"
	ErrorCodeCanceled          = "request_canceled"
	ErrorCodeInternal          = "internal"
)

// Failure is the HTTP rendering of an analysis error.
type Failure struct {
	Status  int
	Code    string
	Message string
}

// Classify maps an analysis error onto a status, code and user-facing message.
func Classify(err error) Failure {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return Failure{http.StatusUnsupportedMediaType, ErrorCodeUnsupportedFormat, "Only PDF and DOCX files are supported."}
	case errors.Is(err, extract.ErrEmptyInput):
		return Failure{http.StatusBadRequest, ErrorCodeEmptyInput, "The uploaded file is empty."}
	case errors.Is(err, extract.ErrParseFailure):
		return Failure{http.StatusUnprocessableEntity, ErrorCodeParseFailure, "Could not extract text from the document. It may be corrupt, encrypted, or image-only."}
	case errors.Is(err, extract.ErrTooLarge), errors.Is(err, ErrUploadTooLarge):
		return Failure{http.StatusRequestEntityTooLarge, ErrorCodeTooLarge, "The file exceeds the upload size limit."}
	case errors.Is(err, ErrMissingFile):
		return Failure{http.StatusBadRequest, ErrorCodeValidation, "A résumé file is required."}
	case errors.Is(err, local.ErrInvalidKey), errors.Is(err, s3store.ErrInvalidKey):
		return Failure{http.StatusBadRequest, ErrorCodeValidation, "The storage key is invalid."}
	case errors.Is(err, object.ErrNotFound):
		return Failure{http.StatusNotFound, ErrorCodeNotFound, "The stored document was not found."}
	case errors.Is(err, ErrSourceUnavailable):
		return Failure{http.StatusServiceUnavailable, ErrorCodeSourceUnavailable, "Stored document analysis is not configured."}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Failure{http.StatusRequestTimeout, ErrorCodeCanceled, "The request was canceled."}
	default:
		return Failure{http.StatusInternalServerError, ErrorCodeInternal, "Failed to analyze the document."}
	}
}
