// Package mocks provides tracing doubles for tests.
package mocks

import (
	"bistro/infras/otel"
	"context"
)

// NewOtel returns a tracer that records nothing.
func NewOtel() otel.Otel {
	return otel.Noop()
}

// NewScope returns a scope whose span is discarded.
func NewScope() otel.Scope {
	_, scope := otel.Noop().NewScope(context.Background(), "test", "test")

	return scope
}
