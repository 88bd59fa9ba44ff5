// Package net carries request scoped values between middleware and handlers
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest puts reqID where chi's RequestID middleware would; a blank id leaves ctx as is
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID is the id set by chi's RequestID middleware or WithRequest
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }
