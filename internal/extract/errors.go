package extract

import "errors"

var (
	// ErrUnsupportedFormat is returned before any decode attempt for
	// formats other than PDF and DOCX.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrParseFailure covers corrupt, encrypted, or text-less documents.
	ErrParseFailure = errors.New("parse failure")
	// ErrEmptyInput is returned for zero-byte uploads.
	ErrEmptyInput = errors.New("empty input")
	// ErrTooLarge is returned when a stored object exceeds the upload limit.
	ErrTooLarge = errors.New("document too large")
)
