package tools

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// SuiteTool is a tool that belongs to a named compiler suite.
type SuiteTool interface {
	Tool

	// Suite is the vendor suite the tool belongs to, e.g. "gnu".
	Suite() string

	// MPI reports whether the tool is MPI-capable.
	MPI() bool
}

// Compiler is a tool that compiles a single source file. The unexported
// methods carry the wrapper substitution: a wrapper reuses the wrapped
// compiler's argument construction but passes its own executable name down
// the chain, so the outermost wrapper's executable wins.
type Compiler interface {
	SuiteTool

	// OpenMPFlag is the flag enabling OpenMP, empty when unsupported.
	OpenMPFlag() string

	// Compile compiles one source file.
	Compile(ctx context.Context, req CompileRequest) error

	// FortranFeatures returns the Fortran capability handle when the
	// compiler (directly or through its wrapper chain) compiles Fortran.
	FortranFeatures() (*FortranFeatures, bool)

	compileAs(ctx context.Context, execName string, req CompileRequest) error
	runAs(ctx context.Context, execName string, req RunRequest) ([]byte, error)
	versionOf(ctx context.Context, execName string) (domain.Version, error)
}

// CompileRequest describes one compile step.
type CompileRequest struct {
	// Input is the source file path.
	Input string
	// Output is the object file path. It should be absolute: the command
	// runs from the input's directory so only the bare source file name is
	// embedded in debug info and module files.
	Output string
	// AddFlags are per-file flags placed after the compiler's own flags.
	AddFlags []string
	// OpenMP appends the compiler's OpenMP flag.
	OpenMP bool
	// SyntaxOnly checks syntax without producing an object file. Only
	// Fortran compilers with a syntax-only flag support it.
	SyntaxOnly bool
}

// CompilerSpec describes a concrete compiler for construction.
type CompilerSpec struct {
	Name  string
	Exec  string
	Suite string
	// MPI marks compilers whose stock driver already links MPI, such as the
	// Cray wrappers shipped as the platform compiler.
	MPI bool
	// CompileFlag defaults to "-c", OutputFlag to "-o".
	CompileFlag string
	OutputFlag  string
	OpenMPFlag  string
	// VersionPattern captures the dotted version in group one.
	VersionPattern string
	// VersionNormalize optionally rewrites probe output before matching.
	VersionNormalize func(string) string
	// EnvFlagsVar names the environment variable whose whitespace-separated
	// tokens seed the compiler's flag set.
	EnvFlagsVar string
}

type baseCompiler struct {
	*Generic
	suite       string
	mpi         bool
	compileFlag string
	outputFlag  string
	openmpFlag  string
}

var _ Compiler = (*baseCompiler)(nil)

func newBaseCompiler(category domain.Category, spec CompilerSpec, deps Deps) *baseCompiler {
	if spec.CompileFlag == "" {
		spec.CompileFlag = "-c"
	}
	if spec.OutputFlag == "" {
		spec.OutputFlag = "-o"
	}

	g := NewTool(spec.Name, spec.Exec, category, deps)
	if spec.VersionPattern != "" {
		g.prober = &RegexProber{
			Pattern:   regexp.MustCompile(spec.VersionPattern),
			Normalize: spec.VersionNormalize,
		}
	}
	if spec.EnvFlagsVar != "" {
		g.flags.Add(strings.Fields(os.Getenv(spec.EnvFlagsVar))...)
	}

	return &baseCompiler{
		Generic:     g,
		suite:       spec.Suite,
		mpi:         spec.MPI,
		compileFlag: spec.CompileFlag,
		outputFlag:  spec.OutputFlag,
		openmpFlag:  spec.OpenMPFlag,
	}
}

// NewCCompiler creates a C compiler. Its flag set is seeded from CFLAGS
// unless EnvFlagsVar names another variable.
func NewCCompiler(spec CompilerSpec, deps Deps) Compiler {
	if spec.EnvFlagsVar == "" {
		spec.EnvFlagsVar = "CFLAGS"
	}
	return newBaseCompiler(domain.CategoryCCompiler, spec, deps)
}

// Suite implements SuiteTool.
func (c *baseCompiler) Suite() string { return c.suite }

// MPI implements SuiteTool.
func (c *baseCompiler) MPI() bool { return c.mpi }

// OpenMPFlag implements Compiler.
func (c *baseCompiler) OpenMPFlag() string { return c.openmpFlag }

// FortranFeatures implements Compiler. Plain compilers have none.
func (c *baseCompiler) FortranFeatures() (*FortranFeatures, bool) { return nil, false }

// Compile implements Compiler.
func (c *baseCompiler) Compile(ctx context.Context, req CompileRequest) error {
	return c.compileAs(ctx, c.exec, req)
}

func (c *baseCompiler) compileAs(ctx context.Context, execName string, req CompileRequest) error {
	return c.compile(ctx, execName, req, nil)
}

// compile builds the argument list in a fixed order and invokes the
// executable. feats is nil for non-Fortran compilers.
func (c *baseCompiler) compile(ctx context.Context, execName string, req CompileRequest, feats *FortranFeatures) error {
	args := []string{c.compileFlag}

	add := domain.NewFlags(req.AddFlags...)
	if n := add.Remove(c.compileFlag, false); n > 0 {
		c.log.Warn("removed managed flag " + c.compileFlag + " from per-file flags for " + req.Input)
	}
	if feats != nil && feats.moduleFolderFlag != "" {
		if n := add.Remove(feats.moduleFolderFlag, true); n > 0 {
			c.log.Warn("module output path is managed, removed " + feats.moduleFolderFlag + " from per-file flags for " + req.Input)
		}
	}
	args = append(args, add.List()...)

	if req.OpenMP && c.openmpFlag != "" {
		if add.Contains(c.openmpFlag) {
			c.log.Warn("OpenMP flag " + c.openmpFlag + " already present in per-file flags for " + req.Input)
		} else {
			args = append(args, c.openmpFlag)
		}
	}

	if req.SyntaxOnly {
		if feats == nil || feats.syntaxOnlyFlag == "" {
			unsupported := zerr.With(domain.ErrUnsupportedOperation, "operation", "syntax-only")
			return zerr.With(unsupported, "tool", c.name)
		}
		args = append(args, feats.syntaxOnlyFlag)
	}

	if feats != nil && feats.moduleFolderFlag != "" && feats.moduleOutputPath != "" {
		args = append(args, feats.moduleFolderFlag, feats.moduleOutputPath)
	}

	args = append(args, filepath.Base(req.Input), c.outputFlag, req.Output)
	_, err := c.runAs(ctx, execName, RunRequest{Args: args, Dir: filepath.Dir(req.Input)})
	return err
}

// versionOf probes an arbitrary executable with this compiler's version
// strategy, without touching the cached version.
func (c *baseCompiler) versionOf(ctx context.Context, execName string) (domain.Version, error) {
	return c.prober.Probe(ctx, c.probeFunc(execName))
}
