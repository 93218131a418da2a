package llm

import (
	"context"
	"errors"
)

// Client produces optional free-text commentary on an already scored résumé.
// Commentary never feeds back into the score.
type Client interface {
	Critique(ctx context.Context, input CritiqueInput) (string, error)
}

// CritiqueInput captures what the commentary prompt needs.
type CritiqueInput struct {
	ResumeText     string
	JobDescription string
	Industry       string
	Score          int
	Strengths      []string
	Improvements   []string
	PromptVersion  string
}

// ErrDisabled is returned by the placeholder client.
var ErrDisabled = errors.New("llm commentary disabled")

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// Critique returns ErrDisabled.
func (PlaceholderClient) Critique(ctx context.Context, input CritiqueInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrDisabled
}
