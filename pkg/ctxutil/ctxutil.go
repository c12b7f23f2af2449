package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	buildIDKey   ctxKey = "build_id"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithBuildID stores the id of the lexicon build serving the request.
func WithBuildID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, buildIDKey, id)
}

// BuildIDFromCtx extracts the lexicon build ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func BuildIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(buildIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
