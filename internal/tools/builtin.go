package tools

import "go.trai.ch/forge/internal/core/domain"

// RegisterBuiltins fills a registry with the stock tool set: the known
// compiler suites, their MPI and Cray platform wrappers, preprocessors,
// the archiver, version control clients, rsync, shells and PSyclone.
//
// Registration order within a category sets the initial defaults: GNU first.
func RegisterBuiltins(r *Registry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deps := r.deps

	ccs := []Compiler{
		NewCCompiler(CompilerSpec{
			Name: "gcc", Exec: "gcc", Suite: "gnu",
			OpenMPFlag:     "-fopenmp",
			VersionPattern: `(?m)gcc \(.*?\) (\d[\d.]+\d)(?:$| )`,
		}, deps),
		NewCCompiler(CompilerSpec{
			Name: "icc", Exec: "icc", Suite: "intel-classic",
			OpenMPFlag:     "-qopenmp",
			VersionPattern: `icc \(ICC\) (\d[\d.]+\d) `,
		}, deps),
		NewCCompiler(CompilerSpec{
			Name: "icx", Exec: "icx", Suite: "intel-llvm",
			OpenMPFlag:     "-qopenmp",
			VersionPattern: `Intel\(R\) oneAPI DPC\+\+/C\+\+ Compiler (\d[\d.]+\d) `,
		}, deps),
		NewCCompiler(CompilerSpec{
			Name: "nvc", Exec: "nvc", Suite: "nvidia",
			OpenMPFlag:       "-mp",
			VersionPattern:   `nvc (\d[\d.]+\d)`,
			VersionNormalize: DashesToDots,
		}, deps),
		NewCCompiler(CompilerSpec{
			Name: "craycc", Exec: "craycc", Suite: "cray", MPI: true,
			OpenMPFlag:     "-qopenmp",
			VersionPattern: `Cray [Cc][^\d]* (\d[\d.]+\d)`,
		}, deps),
	}

	fcs := []Compiler{
		NewFortranCompiler(FortranSpec{
			CompilerSpec: CompilerSpec{
				Name: "gfortran", Exec: "gfortran", Suite: "gnu",
				OpenMPFlag:     "-fopenmp",
				VersionPattern: `(?m)GNU Fortran \(.*?\) (\d[\d.]+\d)(?:$| )`,
			},
			ModuleFolderFlag: "-J",
			SyntaxOnlyFlag:   "-fsyntax-only",
		}, deps),
		NewFortranCompiler(FortranSpec{
			CompilerSpec: CompilerSpec{
				Name: "ifort", Exec: "ifort", Suite: "intel-classic",
				OpenMPFlag:     "-qopenmp",
				VersionPattern: `ifort \(IFORT\) (\d[\d.]+\d) `,
			},
			ModuleFolderFlag: "-module",
			SyntaxOnlyFlag:   "-syntax-only",
		}, deps),
		NewFortranCompiler(FortranSpec{
			CompilerSpec: CompilerSpec{
				Name: "ifx", Exec: "ifx", Suite: "intel-llvm",
				OpenMPFlag:     "-qopenmp",
				VersionPattern: `ifx \(IFX\) (\d[\d.]+\d) `,
			},
			ModuleFolderFlag: "-module",
			SyntaxOnlyFlag:   "-syntax-only",
		}, deps),
		NewFortranCompiler(FortranSpec{
			CompilerSpec: CompilerSpec{
				Name: "nvfortran", Exec: "nvfortran", Suite: "nvidia",
				OpenMPFlag:       "-mp",
				VersionPattern:   `nvfortran (\d[\d.]+\d)`,
				VersionNormalize: DashesToDots,
			},
			ModuleFolderFlag: "-module",
			SyntaxOnlyFlag:   "-Msyntax-only",
		}, deps),
		NewFortranCompiler(FortranSpec{
			CompilerSpec: CompilerSpec{
				Name: "crayftn", Exec: "crayftn", Suite: "cray", MPI: true,
				OpenMPFlag:     "-homp",
				VersionPattern: `Cray Fortran : Version (\d[\d.]+\d)`,
			},
			ModuleFolderFlag: "-J",
			SyntaxOnlyFlag:   "-syntax-only",
		}, deps),
	}

	// Fortran before C, so Fortran-backed linkers win default selection.
	for _, c := range fcs {
		r.add(c)
	}
	for _, c := range ccs {
		r.add(c)
	}

	// MPI drivers for every base compiler, plus the Cray platform wrappers
	// for the suites Cray systems actually ship.
	for _, c := range fcs {
		if c.MPI() {
			continue
		}
		r.add(NewMpif90(c, deps))
		if c.Suite() == "gnu" || c.Suite() == "intel-classic" {
			r.add(NewCrayFtn(c, deps))
		}
	}
	for _, c := range ccs {
		if c.MPI() {
			continue
		}
		r.add(NewMpicc(c, deps))
		if c.Suite() == "gnu" || c.Suite() == "intel-classic" {
			r.add(NewCrayCc(c, deps))
		}
	}

	cpp := NewTool("cpp", "cpp", domain.CategoryCPreprocessor, deps)
	r.add(cpp)
	// Traditional mode keeps the preprocessor from mangling Fortran
	// continuation lines and Hollerith-looking tokens.
	fpp := NewTool("cpp", "cpp", domain.CategoryFortranPreprocessor, deps)
	fpp.Flags().Add("-traditional-cpp", "-P")
	r.add(fpp)

	r.add(NewTool("ar", "ar", domain.CategoryArchiver, deps))
	r.add(NewTool("git", "git", domain.CategoryGit, deps))
	r.add(NewTool("svn", "svn", domain.CategorySubversion, deps))
	r.add(NewTool("fcm", "fcm", domain.CategoryFcm, deps))
	r.add(NewTool("rsync", "rsync", domain.CategoryRsync, deps))

	for _, sh := range []string{"bash", "sh", "ksh", "dash"} {
		r.add(NewShell(sh, deps))
	}

	r.add(NewPsyclone(deps))
}
