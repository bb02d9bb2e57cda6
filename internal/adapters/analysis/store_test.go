package analysis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/analysis"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
)

func TestStore_RecordAndLookup(t *testing.T) {
	store, err := analysis.NewStore("", fs.NewHasher())
	require.NoError(t, err)

	store.Record(domain.AnalysedSource{Path: "a.f90", ContentHash: 10, Deps: []string{"m"}})
	store.Record(domain.AnalysedSource{Path: "m", ContentHash: 20})

	src, err := store.SourceFor("a.f90")
	require.NoError(t, err)
	assert.Equal(t, uint64(10), src.ContentHash)
	assert.Equal(t, []string{"m"}, src.Deps)

	hashes := store.DepHashes([]string{"m", "ghost"})
	assert.Equal(t, map[string]uint64{"m": 20}, hashes, "unknown deps are left out")
}

func TestStore_UnanalysedFileFallsBackToContentHash(t *testing.T) {
	store, err := analysis.NewStore("", fs.NewHasher())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "loose.f90")
	require.NoError(t, os.WriteFile(path, []byte("program x\nend\n"), 0o644))

	src, err := store.SourceFor(path)
	require.NoError(t, err)
	assert.NotZero(t, src.ContentHash)
	assert.Empty(t, src.Deps)

	// Hash lookups are cached per run.
	h, err := store.HashOf(path)
	require.NoError(t, err)
	assert.Equal(t, src.ContentHash, h)
}

func TestStore_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".forge", "analysis.json")

	store, err := analysis.NewStore(path, fs.NewHasher())
	require.NoError(t, err)
	store.Record(domain.AnalysedSource{Path: "a.f90", ContentHash: 99, Deps: []string{"m"}})
	require.NoError(t, store.Save())

	reopened, err := analysis.NewStore(path, fs.NewHasher())
	require.NoError(t, err)

	src, err := reopened.SourceFor("a.f90")
	require.NoError(t, err)
	assert.Equal(t, uint64(99), src.ContentHash)
	assert.Equal(t, map[string]uint64{"a.f90": 99}, reopened.DepHashes([]string{"a.f90"}))
}

func TestStore_MissingFileFails(t *testing.T) {
	store, err := analysis.NewStore("", fs.NewHasher())
	require.NoError(t, err)

	_, err = store.HashOf(filepath.Join(t.TempDir(), "absent.f90"))
	require.Error(t, err)
}
