package analyses

import "context"

type ctxKey int

const ctxKeyRequestID ctxKey = iota

// WithRequestID tags ctx so analysis log lines can be joined to the HTTP access log.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}

// logFields returns fields with request_id added when ctx carries one.
func logFields(ctx context.Context, fields map[string]any) map[string]any {
	if id := requestIDFromContext(ctx); id != "" {
		fields["request_id"] = id
	}
	return fields
}
