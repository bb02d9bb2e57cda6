package tools

import (
	"context"
	"sync"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Wrapper decorates a compiler with a different front-end executable, the
// way mpif90 drives an underlying gfortran or ifort. The wrapper borrows the
// wrapped compiler's argument construction, flag set and capabilities; only
// the executable name, the registry name and the MPI capability are its own.
//
// Wrappers nest: a wrapper around a wrapper substitutes its own executable
// for the whole chain.
type Wrapper struct {
	name    string
	exec    string
	wrapped Compiler
	mpi     bool
	log     ports.Logger

	mu      sync.Mutex
	avail   availability
	version domain.Version
}

var _ Compiler = (*Wrapper)(nil)

// NewWrapper creates a compiler wrapper.
func NewWrapper(name, exec string, wrapped Compiler, mpi bool, deps Deps) *Wrapper {
	return &Wrapper{
		name:    name,
		exec:    exec,
		wrapped: wrapped,
		mpi:     mpi,
		log:     deps.Logger,
	}
}

// NewMpif90 wraps a Fortran compiler with the mpif90 driver.
func NewMpif90(wrapped Compiler, deps Deps) *Wrapper {
	return NewWrapper("mpif90-"+wrapped.Name(), "mpif90", wrapped, true, deps)
}

// NewMpicc wraps a C compiler with the mpicc driver.
func NewMpicc(wrapped Compiler, deps Deps) *Wrapper {
	return NewWrapper("mpicc-"+wrapped.Name(), "mpicc", wrapped, true, deps)
}

// NewCrayFtn wraps a Fortran compiler with the Cray ftn driver.
func NewCrayFtn(wrapped Compiler, deps Deps) *Wrapper {
	return NewWrapper("crayftn-"+wrapped.Name(), "ftn", wrapped, true, deps)
}

// NewCrayCc wraps a C compiler with the Cray cc driver.
func NewCrayCc(wrapped Compiler, deps Deps) *Wrapper {
	return NewWrapper("craycc-"+wrapped.Name(), "cc", wrapped, true, deps)
}

// Name returns the wrapper's registry name, e.g. "mpif90-gfortran".
func (w *Wrapper) Name() string { return w.name }

// ExecName returns the wrapper's own executable.
func (w *Wrapper) ExecName() string { return w.exec }

// Category returns the wrapped compiler's category.
func (w *Wrapper) Category() domain.Category { return w.wrapped.Category() }

// Flags returns the wrapped compiler's flag set; the pair shares flags.
func (w *Wrapper) Flags() *domain.Flags { return w.wrapped.Flags() }

// Suite returns the wrapped compiler's suite.
func (w *Wrapper) Suite() string { return w.wrapped.Suite() }

// MPI reports the wrapper's own MPI capability.
func (w *Wrapper) MPI() bool { return w.mpi }

// OpenMPFlag returns the wrapped compiler's OpenMP flag.
func (w *Wrapper) OpenMPFlag() string { return w.wrapped.OpenMPFlag() }

// FortranFeatures returns the wrapped compiler's capability handle.
func (w *Wrapper) FortranFeatures() (*FortranFeatures, bool) {
	return w.wrapped.FortranFeatures()
}

// Available reports whether the wrapper and the wrapped compiler agree on a
// version. A mismatched pairing, say mpif90 built against a different
// gfortran than the one on PATH, is treated as unavailable.
func (w *Wrapper) Available(ctx context.Context) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.avail == availUnknown {
		if _, err := w.versionLocked(ctx); err != nil {
			w.log.Warn("wrapper " + w.name + " unavailable: " + err.Error())
			w.avail = availNo
		} else {
			w.avail = availYes
		}
	}
	return w.avail == availYes
}

// Version returns the chain's version. The wrapper probes its own executable
// with the wrapped compiler's parsing strategy and requires the result to
// match the wrapped compiler's version exactly.
func (w *Wrapper) Version(ctx context.Context) (domain.Version, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.versionLocked(ctx)
}

func (w *Wrapper) versionLocked(ctx context.Context) (domain.Version, error) {
	if w.version != nil {
		return w.version, nil
	}

	inner, err := w.wrapped.Version(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "wrapped compiler version unknown")
	}
	own, err := w.wrapped.versionOf(ctx, w.exec)
	if err != nil {
		unavailable := zerr.With(domain.ErrToolUnavailable, "tool", w.name)
		return nil, zerr.With(unavailable, "cause", err.Error())
	}
	if !own.Equal(inner) {
		mismatch := zerr.With(domain.ErrToolUnavailable, "tool", w.name)
		mismatch = zerr.With(mismatch, "wrapper_version", own.String())
		return nil, zerr.With(mismatch, "compiler_version", inner.String())
	}

	w.version = own
	return own, nil
}

// Run invokes the wrapper executable with the wrapped compiler's flags.
func (w *Wrapper) Run(ctx context.Context, req RunRequest) ([]byte, error) {
	return w.wrapped.runAs(ctx, w.exec, req)
}

// Compile compiles through the wrapper executable using the wrapped
// compiler's argument construction.
func (w *Wrapper) Compile(ctx context.Context, req CompileRequest) error {
	return w.wrapped.compileAs(ctx, w.exec, req)
}

func (w *Wrapper) compileAs(ctx context.Context, execName string, req CompileRequest) error {
	return w.wrapped.compileAs(ctx, execName, req)
}

func (w *Wrapper) runAs(ctx context.Context, execName string, req RunRequest) ([]byte, error) {
	return w.wrapped.runAs(ctx, execName, req)
}

func (w *Wrapper) versionOf(ctx context.Context, execName string) (domain.Version, error) {
	return w.wrapped.versionOf(ctx, execName)
}
