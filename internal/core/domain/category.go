// Package domain contains the core domain models for the tool registry and
// the incremental rebuild engine.
package domain

// Category classifies the role of an external build tool.
//
// The set is closed: the registry keys its tool lists by Category, and
// default-tool selection branches on the category's compiler/MPI properties.
type Category int

const (
	// CategoryCCompiler is a C compiler such as gcc or icc.
	CategoryCCompiler Category = iota
	// CategoryFortranCompiler is a Fortran compiler such as gfortran or ifort.
	CategoryFortranCompiler
	// CategoryCPreprocessor is a C preprocessor.
	CategoryCPreprocessor
	// CategoryFortranPreprocessor is a Fortran-flavoured preprocessor.
	CategoryFortranPreprocessor
	// CategoryLinker is a linker, always synthesized from a compiler.
	CategoryLinker
	// CategoryCodeGen is a source-to-source code generation tool.
	CategoryCodeGen
	// CategoryArchiver is a static library archiver (ar).
	CategoryArchiver
	// CategoryGit is the git version control tool.
	CategoryGit
	// CategorySubversion is the subversion version control tool.
	CategorySubversion
	// CategoryFcm is the fcm version control tool.
	CategoryFcm
	// CategoryRsync is the rsync file transfer tool.
	CategoryRsync
	// CategoryShell is a command shell (bash, sh, ...).
	CategoryShell
	// CategoryMisc is a tool that fits no other category.
	CategoryMisc
)

// IsCompiler reports whether tools of this category are compilers.
func (c Category) IsCompiler() bool {
	return c == CategoryCCompiler || c == CategoryFortranCompiler
}

// IsMPIAware reports whether MPI capability matters when selecting a default
// tool of this category. This covers compilers and linkers.
func (c Category) IsMPIAware() bool {
	return c.IsCompiler() || c == CategoryLinker
}

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCCompiler:
		return "c-compiler"
	case CategoryFortranCompiler:
		return "fortran-compiler"
	case CategoryCPreprocessor:
		return "c-preprocessor"
	case CategoryFortranPreprocessor:
		return "fortran-preprocessor"
	case CategoryLinker:
		return "linker"
	case CategoryCodeGen:
		return "code-generation"
	case CategoryArchiver:
		return "archiver"
	case CategoryGit:
		return "git"
	case CategorySubversion:
		return "subversion"
	case CategoryFcm:
		return "fcm"
	case CategoryRsync:
		return "rsync"
	case CategoryShell:
		return "shell"
	case CategoryMisc:
		return "misc"
	default:
		return "unknown"
	}
}

// Categories returns every known category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryCCompiler,
		CategoryFortranCompiler,
		CategoryCPreprocessor,
		CategoryFortranPreprocessor,
		CategoryLinker,
		CategoryCodeGen,
		CategoryArchiver,
		CategoryGit,
		CategorySubversion,
		CategoryFcm,
		CategoryRsync,
		CategoryShell,
		CategoryMisc,
	}
}
