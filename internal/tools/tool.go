// Package tools implements the registry of external build tools and the
// compiler, wrapper and linker decoration chain.
package tools

import (
	"context"
	"io"
	"sync"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Tool is the common surface of every external executable in the registry.
type Tool interface {
	// Name is the registry name, unique within a category.
	Name() string

	// ExecName is the executable invoked when the tool runs.
	ExecName() string

	// Category is the tool's role. Immutable after construction.
	Category() domain.Category

	// Flags is the tool's own mutable flag set, prepended to every run.
	Flags() *domain.Flags

	// Available reports whether the executable can be located and responds to
	// a version probe. The result is cached after the first computation.
	Available(ctx context.Context) bool

	// Version returns the parsed tool version, probing once and caching.
	// It fails with domain.ErrToolUnavailable when the probe fails or its
	// output cannot be parsed.
	Version(ctx context.Context) (domain.Version, error)

	// Run invokes the executable with the tool's flags prepended to the
	// request arguments and returns the captured standard output. A non-zero
	// exit surfaces as domain.ErrToolExecution; there are no retries.
	Run(ctx context.Context, req RunRequest) ([]byte, error)
}

// RunRequest describes one tool invocation.
type RunRequest struct {
	// Args follow the tool's accumulated flags on the command line.
	Args []string
	// Dir is the working directory; empty inherits the current one.
	Dir string
	// Env is the full environment; nil inherits the parent environment.
	Env []string
	// Stdout and Stderr optionally stream the output as it is produced.
	Stdout io.Writer
	Stderr io.Writer
}

// Deps bundles the collaborators every tool needs.
type Deps struct {
	Runner ports.Runner
	Logger ports.Logger
}

type availability int

const (
	availUnknown availability = iota
	availYes
	availNo
)

// Generic is the base Tool implementation.
type Generic struct {
	name     string
	exec     string
	category domain.Category
	flags    *domain.Flags
	runner   ports.Runner
	log      ports.Logger
	prober   VersionProber

	mu      sync.Mutex
	avail   availability
	version domain.Version
}

var _ Tool = (*Generic)(nil)

// NewTool creates a generic tool with the default version prober.
func NewTool(name, exec string, category domain.Category, deps Deps) *Generic {
	return &Generic{
		name:     name,
		exec:     exec,
		category: category,
		flags:    domain.NewFlags(),
		runner:   deps.Runner,
		log:      deps.Logger,
		prober:   defaultProber(),
	}
}

// Name returns the registry name.
func (t *Generic) Name() string { return t.name }

// ExecName returns the executable name.
func (t *Generic) ExecName() string { return t.exec }

// Category returns the tool category.
func (t *Generic) Category() domain.Category { return t.category }

// Flags returns the tool's own flag set.
func (t *Generic) Flags() *domain.Flags { return t.flags }

// Available reports whether the tool responds to its version probe.
// A failed probe is absorbed here: the tool is simply excluded from later
// selection, the build itself keeps going with whatever is available.
func (t *Generic) Available(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.avail == availUnknown {
		if _, err := t.versionLocked(ctx); err != nil {
			t.log.Debug("tool " + t.name + " unavailable: " + err.Error())
			t.avail = availNo
		} else {
			t.avail = availYes
		}
	}
	return t.avail == availYes
}

// Version returns the cached version, probing on first use.
func (t *Generic) Version(ctx context.Context) (domain.Version, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.versionLocked(ctx)
}

func (t *Generic) versionLocked(ctx context.Context) (domain.Version, error) {
	if t.version != nil {
		return t.version, nil
	}

	v, err := t.prober.Probe(ctx, t.probeFunc(t.exec))
	if err != nil {
		unavailable := zerr.With(domain.ErrToolUnavailable, "tool", t.name)
		return nil, zerr.With(unavailable, "cause", err.Error())
	}
	t.version = v
	return v, nil
}

// Run invokes the tool's executable.
func (t *Generic) Run(ctx context.Context, req RunRequest) ([]byte, error) {
	return t.runAs(ctx, t.exec, req)
}

// runAs invokes the tool composition with an explicit executable name. The
// decoration chain passes the substituted name down here instead of mutating
// shared state, so concurrent use of one compiler through different wrappers
// is safe.
func (t *Generic) runAs(ctx context.Context, execName string, req RunRequest) ([]byte, error) {
	args := append(t.flags.List(), req.Args...)
	res, err := t.runner.Run(ctx, ports.Invocation{
		Exec:   execName,
		Args:   args,
		Dir:    req.Dir,
		Env:    req.Env,
		Stdout: req.Stdout,
		Stderr: req.Stderr,
	})
	if err != nil {
		return res.Stdout, zerr.With(err, "tool", t.name)
	}
	return res.Stdout, nil
}

// probeFunc adapts the runner for version probing of an arbitrary executable.
// Probes run without the tool's accumulated flags.
func (t *Generic) probeFunc(execName string) ProbeFunc {
	return func(ctx context.Context, args ...string) (string, error) {
		res, err := t.runner.Run(ctx, ports.Invocation{Exec: execName, Args: args})
		if err != nil {
			return string(res.Stdout) + string(res.Stderr), err
		}
		return string(res.Stdout), nil
	}
}

// Shell is a command shell, convenient for user configuration snippets
// such as querying nc-config.
type Shell struct {
	*Generic
}

// NewShell creates a shell tool invoked as <name> -c <command>.
func NewShell(name string, deps Deps) *Shell {
	return &Shell{Generic: NewTool(name, name, domain.CategoryShell, deps)}
}

// RunCommand executes one shell command line and returns its stdout.
func (s *Shell) RunCommand(ctx context.Context, command string) ([]byte, error) {
	return s.Run(ctx, RunRequest{Args: []string{"-c", command}})
}
