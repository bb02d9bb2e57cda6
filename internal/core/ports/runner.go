// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// Invocation describes one external process to spawn.
type Invocation struct {
	// Exec is the executable name or path.
	Exec string
	// Args are the command-line arguments, already fully composed.
	Args []string
	// Dir is the working directory; empty inherits the current directory.
	Dir string
	// Env is the full environment; nil inherits the parent environment.
	Env []string
	// Stdout and Stderr optionally receive the streams as they are produced,
	// in addition to the captured copies returned in Result.
	Stdout io.Writer
	Stderr io.Writer
}

// Result carries the captured output of a finished invocation.
type Result struct {
	Stdout []byte
	Stderr []byte
}

// Runner is the single subprocess boundary. One call spawns one process and
// waits for it; there are no retries at this layer.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes the invocation. A non-zero exit or a spawn failure yields
	// domain.ErrToolExecution with exit code and captured output attached;
	// the partial Result is still returned for diagnostics.
	Run(ctx context.Context, inv Invocation) (Result, error)
}
