package telemetry

import (
	"context"
	"io"

	"go.trai.ch/forge/internal/core/ports"
)

// NoOp is a no-op implementation of ports.Telemetry.
type NoOp struct{}

// NewNoOp creates a new no-op telemetry.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a no-op vertex.
func (t *NoOp) Record(_ context.Context, _ string) ports.Vertex {
	return noopVertex{}
}

// Close does nothing.
func (t *NoOp) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer { return io.Discard }
func (noopVertex) Stderr() io.Writer { return io.Discard }
func (noopVertex) Cached()           {}
func (noopVertex) Done(_ error)      {}
