package ports

import (
	"context"
	"io"
)

// Telemetry records per-item progress of build steps.
type Telemetry interface {
	// Record starts a new vertex for one unit of work.
	Record(ctx context.Context, name string) Vertex

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex is one recorded unit of work.
type Vertex interface {
	// Stdout returns a writer capturing the unit's standard output.
	Stdout() io.Writer

	// Stderr returns a writer capturing the unit's error output.
	Stderr() io.Writer

	// Cached marks the vertex as satisfied by an existing artefact.
	Cached()

	// Done completes the vertex, successfully or with an error.
	Done(err error)
}
