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

func TestLinker_Link_CommandComposition(t *testing.T) {
	t.Setenv("FFLAGS", "")
	t.Setenv("LDFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, runner := testDeps(ctrl)

	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv ports.Invocation) (ports.Result, error) {
			assert.Equal(t, "gfortran", inv.Exec)
			// compiler flags, linker flags, openmp, sorted objects,
			// pre-lib, libs in request order, post-lib, output.
			assert.Equal(t, []string{
				"-x", "-y", "-fopenmp", "a.o", "b.o", "-p", "-l2", "-l1", "-q", "-o", "prog",
			}, inv.Args)
			return ports.Result{}, nil
		})

	fc := newGfortran(deps)
	fc.Flags().Add("-x")

	lk := tools.NewLinker(fc, deps)
	lk.Flags().Add("-y")
	lk.AddLibFlags("lib_one", []string{"-l1"}, false)
	lk.AddLibFlags("lib_two", []string{"-l2"}, false)
	lk.AddPreLibFlags("-p")
	lk.AddPostLibFlags("-q")

	err := lk.Link(context.Background(), tools.LinkRequest{
		Inputs: []string{"b.o", "a.o"},
		Output: "prog",
		OpenMP: true,
		Libs:   []string{"lib_two", "lib_one"},
	})
	require.NoError(t, err)
}

func TestLinker_Link_UnknownLibraryFailsBeforeSpawn(t *testing.T) {
	t.Setenv("FFLAGS", "")
	t.Setenv("LDFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, _ := testDeps(ctrl)

	lk := tools.NewLinker(newGfortran(deps), deps)
	lk.AddLibFlags("known", []string{"-lknown"}, false)

	// The strict runner mock verifies nothing was spawned.
	err := lk.Link(context.Background(), tools.LinkRequest{
		Inputs: []string{"a.o"},
		Output: "prog",
		Libs:   []string{"known", "missing"},
	})
	require.ErrorIs(t, err, domain.ErrUnknownLibrary)
}

func TestLinker_LibFlagManagement(t *testing.T) {
	t.Setenv("FFLAGS", "")
	t.Setenv("LDFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, _ := testDeps(ctrl)

	lk := tools.NewLinker(newGfortran(deps), deps)

	lk.AddLibFlags("netcdf", []string{"-lnetcdf"}, false)
	flags, err := lk.LibFlags("netcdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"-lnetcdf"}, flags)

	// Replacement swaps the flags but keeps the registration slot.
	lk.AddLibFlags("netcdf", []string{"-lnetcdff", "-lnetcdf"}, true)
	flags, err = lk.LibFlags("netcdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"-lnetcdff", "-lnetcdf"}, flags)
	assert.Equal(t, []string{"netcdf"}, lk.Libraries())

	// Removing an unknown library is a silent no-op.
	lk.RemoveLibFlags("not-there")

	lk.RemoveLibFlags("netcdf")
	_, err = lk.LibFlags("netcdf")
	require.ErrorIs(t, err, domain.ErrUnknownLibrary)
	assert.Empty(t, lk.Libraries())
}

func TestLinker_SeededFromLDFLAGS(t *testing.T) {
	t.Setenv("FFLAGS", "")
	t.Setenv("LDFLAGS", "-L/opt/lib -static")
	ctrl := gomock.NewController(t)
	deps, _ := testDeps(ctrl)

	fc := newGfortran(deps)
	lk := tools.NewLinker(fc, deps)

	// LDFLAGS belong to the linker alone, not to the compiler.
	assert.Equal(t, []string{"-L/opt/lib", "-static"}, lk.Flags().List())
	assert.Empty(t, fc.Flags().List())
}

func TestLinker_DelegatesIdentity(t *testing.T) {
	t.Setenv("FFLAGS", "")
	t.Setenv("LDFLAGS", "")
	ctrl := gomock.NewController(t)
	deps, _ := testDeps(ctrl)

	fc := newGfortran(deps)
	lk := tools.NewLinker(fc, deps)

	assert.Equal(t, "linker-gfortran", lk.Name())
	assert.Equal(t, "gfortran", lk.ExecName())
	assert.Equal(t, domain.CategoryLinker, lk.Category())
	assert.Equal(t, "gnu", lk.Suite())
	assert.False(t, lk.MPI())
}
