// Package ctxutil carries per-request identifiers through a context.Context.
package ctxutil

import "context"

type key int

const (
	requestIDKey key = iota
	clientIDKey
)

func stringValue(ctx context.Context, k key) string {
	s, _ := ctx.Value(k).(string)
	return s
}

// WithRequestID returns a copy of ctx carrying the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string { return stringValue(ctx, requestIDKey) }

// WithClientID returns a copy of ctx carrying the client ID.
func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientIDKey, id)
}

// ClientID returns the client ID stored in ctx, or "".
func ClientID(ctx context.Context) string { return stringValue(ctx, clientIDKey) }
