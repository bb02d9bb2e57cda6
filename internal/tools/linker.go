package tools

import (
	"context"
	"os"
	"slices"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Linker links object files through a compiler front-end. One linker is
// synthesized per registered compiler, so wrappers get their own.
//
// The linker owns the LDFLAGS environment variable; compilers never read it.
type Linker struct {
	compiler   Compiler
	name       string
	outputFlag string
	flags      *domain.Flags
	log        ports.Logger

	// libNames preserves registration order for stable diagnostics.
	libNames []string
	libFlags map[string][]string
	preLib   []string
	postLib  []string
}

var _ SuiteTool = (*Linker)(nil)

// LinkRequest describes one link step.
type LinkRequest struct {
	// Inputs are the object files; they are sorted before composition so the
	// command line is deterministic across filesystem walk orders.
	Inputs []string
	// Output is the executable path.
	Output string
	// OpenMP appends the compiler's OpenMP flag.
	OpenMP bool
	// Libs name configured libraries, expanded in the given caller order.
	Libs []string
}

// NewLinker creates a linker around a compiler. Its own flag set is seeded
// from LDFLAGS.
func NewLinker(compiler Compiler, deps Deps) *Linker {
	return &Linker{
		compiler:   compiler,
		name:       "linker-" + compiler.Name(),
		outputFlag: "-o",
		flags:      domain.NewFlags(strings.Fields(os.Getenv("LDFLAGS"))...),
		log:        deps.Logger,
		libFlags:   map[string][]string{},
	}
}

// Name returns the synthesized registry name, e.g. "linker-gfortran".
func (l *Linker) Name() string { return l.name }

// ExecName returns the underlying compiler's executable.
func (l *Linker) ExecName() string { return l.compiler.ExecName() }

// Category implements Tool.
func (l *Linker) Category() domain.Category { return domain.CategoryLinker }

// Flags returns the linker's own flag set, separate from the compiler's.
func (l *Linker) Flags() *domain.Flags { return l.flags }

// Suite returns the underlying compiler's suite.
func (l *Linker) Suite() string { return l.compiler.Suite() }

// MPI reports the underlying compiler's MPI capability.
func (l *Linker) MPI() bool { return l.compiler.MPI() }

// Available delegates to the underlying compiler.
func (l *Linker) Available(ctx context.Context) bool { return l.compiler.Available(ctx) }

// Version delegates to the underlying compiler.
func (l *Linker) Version(ctx context.Context) (domain.Version, error) {
	return l.compiler.Version(ctx)
}

// Run invokes the compiler executable with the compiler's flags followed by
// the linker's own flags.
func (l *Linker) Run(ctx context.Context, req RunRequest) ([]byte, error) {
	req.Args = append(l.flags.List(), req.Args...)
	return l.compiler.runAs(ctx, l.compiler.ExecName(), req)
}

// AddLibFlags registers or replaces the flags for a named library.
// Replacing an existing library logs a warning unless silentReplace is set.
func (l *Linker) AddLibFlags(lib string, flags []string, silentReplace bool) {
	if _, exists := l.libFlags[lib]; exists {
		if !silentReplace {
			l.log.Warn("replacing existing flags for library " + lib)
		}
	} else {
		l.libNames = append(l.libNames, lib)
	}
	l.libFlags[lib] = slices.Clone(flags)
}

// RemoveLibFlags unregisters a library. Unknown names are ignored so
// platform configs can blanket-remove libraries they redefine.
func (l *Linker) RemoveLibFlags(lib string) {
	if _, exists := l.libFlags[lib]; !exists {
		return
	}
	delete(l.libFlags, lib)
	l.libNames = slices.DeleteFunc(l.libNames, func(n string) bool { return n == lib })
}

// LibFlags returns the flags registered for a library.
func (l *Linker) LibFlags(lib string) ([]string, error) {
	flags, ok := l.libFlags[lib]
	if !ok {
		unknown := zerr.With(domain.ErrUnknownLibrary, "library", lib)
		return nil, zerr.With(unknown, "linker", l.name)
	}
	return slices.Clone(flags), nil
}

// Libraries returns the registered library names in registration order.
func (l *Linker) Libraries() []string { return slices.Clone(l.libNames) }

// AddPreLibFlags appends flags emitted before any library flags.
func (l *Linker) AddPreLibFlags(flags ...string) {
	l.preLib = append(l.preLib, flags...)
}

// AddPostLibFlags appends flags emitted after all library flags.
func (l *Linker) AddPostLibFlags(flags ...string) {
	l.postLib = append(l.postLib, flags...)
}

// Link links the objects into an executable. Every requested library is
// resolved before any process is spawned, so an unknown name fails the step
// without side effects.
func (l *Linker) Link(ctx context.Context, req LinkRequest) error {
	var libArgs []string
	for _, lib := range req.Libs {
		flags, err := l.LibFlags(lib)
		if err != nil {
			return err
		}
		libArgs = append(libArgs, flags...)
	}

	var args []string
	if req.OpenMP && l.compiler.OpenMPFlag() != "" {
		args = append(args, l.compiler.OpenMPFlag())
	}
	args = append(args, slices.Sorted(slices.Values(req.Inputs))...)
	args = append(args, l.preLib...)
	args = append(args, libArgs...)
	args = append(args, l.postLib...)
	args = append(args, l.outputFlag, req.Output)

	_, err := l.Run(ctx, RunRequest{Args: args})
	return err
}
