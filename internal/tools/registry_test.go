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

func newIfort(deps tools.Deps) tools.Compiler {
	return tools.NewFortranCompiler(tools.FortranSpec{
		CompilerSpec: tools.CompilerSpec{
			Name: "ifort", Exec: "ifort", Suite: "intel-classic",
			OpenMPFlag:     "-qopenmp",
			VersionPattern: `ifort \(IFORT\) (\d[\d.]+\d) `,
		},
		ModuleFolderFlag: "-module",
		SyntaxOnlyFlag:   "-syntax-only",
	}, deps)
}

func TestRegistry_AddCompilerSynthesizesLinker(t *testing.T) {
	t.Setenv("FFLAGS", "")
	t.Setenv("LDFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, _ := testDeps(ctrl)

	r := tools.New(deps)
	r.Add(newGfortran(deps))

	lk, err := r.Lookup(domain.CategoryLinker, "linker-gfortran")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryLinker, lk.Category())

	// Wrappers are compilers too and get their own linker.
	gf, err := r.Lookup(domain.CategoryFortranCompiler, "gfortran")
	require.NoError(t, err)
	r.Add(tools.NewMpif90(gf.(tools.Compiler), deps))

	_, err = r.Lookup(domain.CategoryLinker, "linker-mpif90-gfortran")
	require.NoError(t, err)
}

func TestRegistry_Lookup_Errors(t *testing.T) {
	t.Setenv("FFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, _ := testDeps(ctrl)

	r := tools.New(deps)
	r.Add(newGfortran(deps))

	_, err := r.Lookup(domain.CategoryArchiver, "ar")
	require.ErrorIs(t, err, domain.ErrUnknownCategory)

	_, err = r.Lookup(domain.CategoryFortranCompiler, "flang")
	require.ErrorIs(t, err, domain.ErrUnknownTool)
}

func TestRegistry_GetDefault_RefusesMPIAwareCategories(t *testing.T) {
	ctrl := gomock.NewController(t)
	deps, _ := testDeps(ctrl)

	r := tools.New(deps)

	for _, category := range []domain.Category{
		domain.CategoryCCompiler,
		domain.CategoryFortranCompiler,
		domain.CategoryLinker,
	} {
		_, err := r.GetDefault(context.Background(), category)
		require.ErrorIs(t, err, domain.ErrMPIRequired, category.String())
	}
}

func TestRegistry_GetDefaultWithMPI(t *testing.T) {
	t.Setenv("FFLAGS", "")
	t.Setenv("LDFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, runner := testDeps(ctrl)

	// Every probe succeeds with a consistent GNU version.
	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		Return(stdout("GNU Fortran (GCC) 13.2.0\n"), nil).
		AnyTimes()

	r := tools.New(deps)
	gf := newGfortran(deps)
	r.Add(gf)
	r.Add(tools.NewMpif90(gf, deps))

	serial, err := r.GetDefaultWithMPI(context.Background(), domain.CategoryFortranCompiler, false)
	require.NoError(t, err)
	assert.Equal(t, "gfortran", serial.Name())

	parallel, err := r.GetDefaultWithMPI(context.Background(), domain.CategoryFortranCompiler, true)
	require.NoError(t, err)
	assert.Equal(t, "mpif90-gfortran", parallel.Name())

	lk, err := r.GetDefaultWithMPI(context.Background(), domain.CategoryLinker, true)
	require.NoError(t, err)
	assert.Equal(t, "linker-mpif90-gfortran", lk.Name())
}

func TestRegistry_GetDefaultWithMPI_NoMatch(t *testing.T) {
	t.Setenv("FFLAGS", "")
	t.Setenv("LDFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, runner := testDeps(ctrl)

	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		Return(stdout("GNU Fortran (GCC) 13.2.0\n"), nil).
		AnyTimes()

	r := tools.New(deps)
	r.Add(newGfortran(deps))

	_, err := r.GetDefaultWithMPI(context.Background(), domain.CategoryFortranCompiler, true)
	require.ErrorIs(t, err, domain.ErrNoMatchingTool)
}

func TestRegistry_GetDefaultWithMPI_SkipsUnavailable(t *testing.T) {
	t.Setenv("FFLAGS", "")
	t.Setenv("LDFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, runner := testDeps(ctrl)

	// gfortran probes fail, ifort probes answer.
	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv ports.Invocation) (ports.Result, error) {
			if inv.Exec == "ifort" {
				return stdout("ifort (IFORT) 2021.10.0 20230609\n"), nil
			}
			return ports.Result{}, assert.AnError
		}).
		AnyTimes()

	r := tools.New(deps)
	r.Add(newGfortran(deps))
	r.Add(newIfort(deps))

	fc, err := r.GetDefaultWithMPI(context.Background(), domain.CategoryFortranCompiler, false)
	require.NoError(t, err)
	assert.Equal(t, "ifort", fc.Name())
}

func TestRegistry_SetDefaultCompilerSuite(t *testing.T) {
	t.Setenv("FFLAGS", "")
	t.Setenv("CFLAGS", "")
	t.Setenv("LDFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, _ := testDeps(ctrl)

	r := tools.New(deps)
	r.Add(newGcc(deps))
	r.Add(tools.NewCCompiler(tools.CompilerSpec{
		Name: "icc", Exec: "icc", Suite: "intel-classic",
		OpenMPFlag: "-qopenmp",
	}, deps))
	r.Add(newGfortran(deps))
	r.Add(newIfort(deps))

	require.NoError(t, r.SetDefaultCompilerSuite("intel-classic"))

	names := func(category domain.Category) []string {
		var out []string
		for _, tool := range r.ToolsIn(category) {
			out = append(out, tool.Name())
		}
		return out
	}

	// Stable partition: the chosen suite first, relative order kept.
	assert.Equal(t, []string{"icc", "gcc"}, names(domain.CategoryCCompiler))
	assert.Equal(t, []string{"ifort", "gfortran"}, names(domain.CategoryFortranCompiler))
	assert.Equal(t,
		[]string{"linker-icc", "linker-ifort", "linker-gcc", "linker-gfortran"},
		names(domain.CategoryLinker))
}

func TestRegistry_SetDefaultCompilerSuite_Unknown(t *testing.T) {
	t.Setenv("FFLAGS", "")
	t.Setenv("CFLAGS", "")
	t.Setenv("LDFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, _ := testDeps(ctrl)

	r := tools.New(deps)
	r.Add(newGcc(deps))
	r.Add(newGfortran(deps))

	err := r.SetDefaultCompilerSuite("cray")
	require.ErrorIs(t, err, domain.ErrSuiteNotFound)
}

func TestRegisterBuiltins(t *testing.T) {
	t.Setenv("FFLAGS", "")
	t.Setenv("CFLAGS", "")
	t.Setenv("LDFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, _ := testDeps(ctrl)

	r := tools.New(deps)
	tools.RegisterBuiltins(r)

	for _, name := range []string{"gcc", "icc", "icx", "nvc", "craycc", "mpicc-gcc", "craycc-gcc"} {
		_, err := r.Lookup(domain.CategoryCCompiler, name)
		require.NoError(t, err, name)
	}
	for _, name := range []string{"gfortran", "ifort", "ifx", "nvfortran", "crayftn", "mpif90-gfortran", "crayftn-ifort"} {
		_, err := r.Lookup(domain.CategoryFortranCompiler, name)
		require.NoError(t, err, name)
	}

	// Every compiler, wrappers included, got a linker.
	_, err := r.Lookup(domain.CategoryLinker, "linker-mpif90-ifort")
	require.NoError(t, err)

	_, err = r.Lookup(domain.CategoryFortranPreprocessor, "cpp")
	require.NoError(t, err)
	_, err = r.Lookup(domain.CategoryCodeGen, "psyclone")
	require.NoError(t, err)
	_, err = r.Lookup(domain.CategoryShell, "bash")
	require.NoError(t, err)
}
