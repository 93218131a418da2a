package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a key does not resolve to an object.
var ErrNotFound = errors.New("object not found")

// Store is a read-only source of uploaded résumé files.
type Store interface {
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
