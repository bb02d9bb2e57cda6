package tools_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/tools"
	"go.uber.org/mock/gomock"
)

func newGfortran(deps tools.Deps) tools.Compiler {
	return tools.NewFortranCompiler(tools.FortranSpec{
		CompilerSpec: tools.CompilerSpec{
			Name: "gfortran", Exec: "gfortran", Suite: "gnu",
			OpenMPFlag:     "-fopenmp",
			VersionPattern: `(?m)GNU Fortran \(.*?\) (\d[\d.]+\d)(?:$| )`,
		},
		ModuleFolderFlag: "-J",
		SyntaxOnlyFlag:   "-fsyntax-only",
	}, deps)
}

func newGcc(deps tools.Deps) tools.Compiler {
	return tools.NewCCompiler(tools.CompilerSpec{
		Name: "gcc", Exec: "gcc", Suite: "gnu",
		OpenMPFlag:     "-fopenmp",
		VersionPattern: `(?m)gcc \(.*?\) (\d[\d.]+\d)(?:$| )`,
	}, deps)
}

func TestFortranCompiler_Compile_ArgumentOrder(t *testing.T) {
	t.Setenv("FFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, runner := testDeps(ctrl)

	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv ports.Invocation) (ports.Result, error) {
			assert.Equal(t, "gfortran", inv.Exec)
			assert.Equal(t, "/proj/src", inv.Dir)
			assert.Equal(t, []string{
				"-c", "-O2", "-fopenmp", "-J", "/proj/build/mods", "a.f90", "-o", "/proj/build/a.o",
			}, inv.Args)
			return ports.Result{}, nil
		})

	fc := newGfortran(deps)
	feats, ok := fc.FortranFeatures()
	require.True(t, ok)
	feats.SetModuleOutputPath("/proj/build/mods")

	err := fc.Compile(context.Background(), tools.CompileRequest{
		Input:    "/proj/src/a.f90",
		Output:   "/proj/build/a.o",
		AddFlags: []string{"-O2"},
		OpenMP:   true,
	})
	require.NoError(t, err)
}

func TestFortranCompiler_Compile_StripsManagedFlags(t *testing.T) {
	t.Setenv("FFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, runner := testDeps(ctrl)

	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv ports.Invocation) (ports.Result, error) {
			assert.Equal(t, []string{"-c", "-O2", "a.f90", "-o", "a.o"}, inv.Args)
			return ports.Result{}, nil
		})

	fc := newGfortran(deps)

	// The compile flag and the module folder flag are managed by the
	// compiler itself and must not leak in from per-file flags.
	err := fc.Compile(context.Background(), tools.CompileRequest{
		Input:    "/src/a.f90",
		Output:   "a.o",
		AddFlags: []string{"-c", "-J", "elsewhere", "-O2"},
	})
	require.NoError(t, err)
}

func TestFortranCompiler_Compile_DuplicateOpenMPFlagKeptOnce(t *testing.T) {
	t.Setenv("FFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, runner := testDeps(ctrl)

	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv ports.Invocation) (ports.Result, error) {
			assert.Equal(t, []string{"-c", "-fopenmp", "a.f90", "-o", "a.o"}, inv.Args)
			return ports.Result{}, nil
		})

	fc := newGfortran(deps)

	err := fc.Compile(context.Background(), tools.CompileRequest{
		Input:    "/src/a.f90",
		Output:   "a.o",
		AddFlags: []string{"-fopenmp"},
		OpenMP:   true,
	})
	require.NoError(t, err)
}

func TestFortranCompiler_Compile_SyntaxOnly(t *testing.T) {
	t.Setenv("FFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, runner := testDeps(ctrl)

	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv ports.Invocation) (ports.Result, error) {
			assert.Equal(t, []string{"-c", "-fsyntax-only", "a.f90", "-o", "a.o"}, inv.Args)
			return ports.Result{}, nil
		})

	fc := newGfortran(deps)

	err := fc.Compile(context.Background(), tools.CompileRequest{
		Input:      "/src/a.f90",
		Output:     "a.o",
		SyntaxOnly: true,
	})
	require.NoError(t, err)
}

func TestCCompiler_Compile_SyntaxOnlyUnsupported(t *testing.T) {
	t.Setenv("CFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, _ := testDeps(ctrl)

	cc := newGcc(deps)

	// No process may be spawned for an unsupported request; the strict
	// runner mock enforces that.
	err := cc.Compile(context.Background(), tools.CompileRequest{
		Input:      "/src/a.c",
		Output:     "a.o",
		SyntaxOnly: true,
	})
	require.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}

func TestCompiler_FlagsSeededFromEnvironment(t *testing.T) {
	t.Setenv("FFLAGS", "-O3 -funroll-loops")
	ctrl := gomock.NewController(t)
	deps, _ := testDeps(ctrl)

	fc := newGfortran(deps)
	assert.Equal(t, []string{"-O3", "-funroll-loops"}, fc.Flags().List())
}
