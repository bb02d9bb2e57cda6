package tools

import (
	"context"

	"go.trai.ch/forge/internal/core/domain"
)

// FortranFeatures carries the Fortran-only capabilities of a compiler:
// syntax checking and the module output folder. Wrappers share the handle of
// the compiler they wrap, so setting the module path once configures the
// whole chain.
type FortranFeatures struct {
	moduleFolderFlag string
	syntaxOnlyFlag   string
	moduleOutputPath string
}

// SupportsSyntaxOnly reports whether the compiler can check syntax without
// producing an object file.
func (f *FortranFeatures) SupportsSyntaxOnly() bool { return f.syntaxOnlyFlag != "" }

// SetModuleOutputPath sets the folder receiving compiled .mod files.
// Configure it before compile workers start; reads are not synchronised.
func (f *FortranFeatures) SetModuleOutputPath(path string) { f.moduleOutputPath = path }

// ModuleOutputPath returns the configured module folder, empty when unset.
func (f *FortranFeatures) ModuleOutputPath() string { return f.moduleOutputPath }

// FortranSpec extends CompilerSpec with the Fortran-only flags.
type FortranSpec struct {
	CompilerSpec

	// ModuleFolderFlag directs compiled module files, e.g. -J for gfortran.
	ModuleFolderFlag string
	// SyntaxOnlyFlag enables syntax checking, empty when unsupported.
	SyntaxOnlyFlag string
}

type fortranCompiler struct {
	*baseCompiler
	features FortranFeatures
}

var _ Compiler = (*fortranCompiler)(nil)

// NewFortranCompiler creates a Fortran compiler. Its flag set is seeded from
// FFLAGS unless EnvFlagsVar names another variable.
func NewFortranCompiler(spec FortranSpec, deps Deps) Compiler {
	if spec.EnvFlagsVar == "" {
		spec.EnvFlagsVar = "FFLAGS"
	}
	return &fortranCompiler{
		baseCompiler: newBaseCompiler(domain.CategoryFortranCompiler, spec.CompilerSpec, deps),
		features: FortranFeatures{
			moduleFolderFlag: spec.ModuleFolderFlag,
			syntaxOnlyFlag:   spec.SyntaxOnlyFlag,
		},
	}
}

// FortranFeatures implements Compiler.
func (f *fortranCompiler) FortranFeatures() (*FortranFeatures, bool) { return &f.features, true }

// Compile implements Compiler.
func (f *fortranCompiler) Compile(ctx context.Context, req CompileRequest) error {
	return f.compileAs(ctx, f.exec, req)
}

func (f *fortranCompiler) compileAs(ctx context.Context, execName string, req CompileRequest) error {
	return f.compile(ctx, execName, req, &f.features)
}
