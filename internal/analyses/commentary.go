package analyses

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"resume-critic/internal/llm"
	"resume-critic/internal/shared/telemetry"
)

const commentaryRetryDelay = 300 * time.Millisecond

// retryingCommentary retries a commentary call once on transient failures.
type retryingCommentary struct {
	base       llm.Client
	requestID  string
	analysisID string
	delay      time.Duration
}

func newRetryingCommentary(base llm.Client, analysisID, requestID string) llm.Client {
	if base == nil {
		return nil
	}
	return retryingCommentary{
		base:       base,
		requestID:  requestID,
		analysisID: analysisID,
		delay:      commentaryRetryDelay,
	}
}

func (r retryingCommentary) Critique(ctx context.Context, input llm.CritiqueInput) (string, error) {
	text, err := r.base.Critique(ctx, input)
	if err == nil || !shouldRetryCommentary(err) {
		return text, err
	}

	telemetry.Warn("commentary.retry", map[string]any{
		"attempt":     1,
		"request_id":  r.requestID,
		"analysis_id": r.analysisID,
		"err":         sanitizeError(err),
	})
	select {
	case <-time.After(r.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return r.base.Critique(ctx, input)
}

func shouldRetryCommentary(err error) bool {
	if err == nil || errors.Is(err, llm.ErrDisabled) {
		return false
	}
	// The caller's deadline is spent; a retry cannot finish.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if status, ok := providerStatus(err); ok {
		return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "unexpected eof")
}

// providerStatus extracts the HTTP status from go-openai's typed errors.
func providerStatus(err error) (int, bool) {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return apiErr.HTTPStatusCode, true
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return reqErr.HTTPStatusCode, true
	}
	return 0, false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
