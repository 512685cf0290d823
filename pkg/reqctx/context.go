// Package reqctx carries per-call metadata for outbound backend requests.
package reqctx

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey int

const (
	keyRequestMeta ctxKey = iota
)

// RequestMeta identifies one logical console action across its backend calls.
type RequestMeta struct {
	// RequestID is sent as X-Request-Id on every call. UUID v4 string.
	RequestID string

	// Action names the initiating console action, e.g. "appointments.reschedule".
	Action string

	// StartedAt is when the action began.
	StartedAt time.Time
}

// NewRequestMeta creates metadata for a fresh console action.
func NewRequestMeta(action string) *RequestMeta {
	return &RequestMeta{
		RequestID: uuid.NewString(),
		Action:    action,
		StartedAt: time.Now(),
	}
}

// WithRequestMeta stores RequestMeta in the context.
func WithRequestMeta(ctx context.Context, meta *RequestMeta) context.Context {
	return context.WithValue(ctx, keyRequestMeta, meta)
}

// RequestMetaFromContext retrieves RequestMeta from the context.
// Returns nil, false if not set.
func RequestMetaFromContext(ctx context.Context) (*RequestMeta, bool) {
	v := ctx.Value(keyRequestMeta)
	if v == nil {
		return nil, false
	}
	meta, ok := v.(*RequestMeta)
	return meta, ok
}

// RequestIDFromContext is a convenience function to get just the request ID.
// Returns empty string if RequestMeta is not set.
func RequestIDFromContext(ctx context.Context) string {
	meta, ok := RequestMetaFromContext(ctx)
	if !ok || meta == nil {
		return ""
	}
	return meta.RequestID
}
