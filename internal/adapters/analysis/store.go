// Package analysis persists the external analyzer's output and answers
// dependency-hash lookups for fingerprinting.
package analysis

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store holds the analysis of the current source tree. Sources the analyzer
// has not reported fall back to a content hash with no dependencies, so
// fingerprinting degrades to plain file hashing instead of failing.
type Store struct {
	path   string
	hasher *fs.Hasher

	mu      sync.Mutex
	data    domain.Analysis
	byPath  map[string]*domain.AnalysedSource
	hashes  map[string]uint64
}

// NewStore creates an analysis store persisting to path. An empty path keeps
// the analysis in memory only.
func NewStore(path string, hasher *fs.Hasher) (*Store, error) {
	s := &Store{
		path:   path,
		hasher: hasher,
		byPath: map[string]*domain.AnalysedSource{},
		hashes: map[string]uint64{},
	}
	if path == "" {
		return s, nil
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return zerr.Wrap(err, "cannot read analysis file")
	}
	if err := json.Unmarshal(data, &s.data); err != nil {
		return zerr.With(zerr.Wrap(err, "cannot parse analysis file"), "path", s.path)
	}
	s.index()
	return nil
}

func (s *Store) index() {
	for i := range s.data.Sources {
		src := &s.data.Sources[i]
		s.byPath[src.Path] = src
	}
	for dep, h := range s.data.DepHashes {
		s.hashes[dep] = h
	}
}

// Save persists the analysis. In-memory stores are a no-op.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return zerr.Wrap(err, "cannot create analysis folder")
	}
	data, err := json.MarshalIndent(&s.data, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "cannot encode analysis")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "cannot write analysis file")
	}
	return nil
}

// Record stores one analysed source, replacing any earlier entry for the
// same path, and remembers its content hash as a dependency hash.
func (s *Store) Record(src domain.AnalysedSource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.byPath[src.Path]; ok {
		*prev = src
	} else {
		s.data.Sources = append(s.data.Sources, src)
		s.byPath[src.Path] = &s.data.Sources[len(s.data.Sources)-1]
		s.index()
	}
	if s.data.DepHashes == nil {
		s.data.DepHashes = map[string]uint64{}
	}
	s.data.DepHashes[src.Path] = src.ContentHash
	s.hashes[src.Path] = src.ContentHash
}

// SourceFor returns the analysed view of a file. Unanalysed files get a
// fresh content hash and an empty dependency list.
func (s *Store) SourceFor(path string) (domain.AnalysedSource, error) {
	s.mu.Lock()
	if src, ok := s.byPath[path]; ok {
		out := *src
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	h, err := s.HashOf(path)
	if err != nil {
		return domain.AnalysedSource{}, err
	}
	return domain.AnalysedSource{Path: path, ContentHash: h}, nil
}

// HashOf returns the content hash of a file, from the analysis when present
// and freshly computed otherwise. Computed hashes are cached per run.
func (s *Store) HashOf(path string) (uint64, error) {
	s.mu.Lock()
	if h, ok := s.hashes[path]; ok {
		s.mu.Unlock()
		return h, nil
	}
	s.mu.Unlock()

	h, err := s.hasher.ComputeFileHash(path)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.hashes[path] = h
	s.mu.Unlock()
	return h, nil
}

// DepHashes resolves the content hashes of the named dependencies. Unknown
// names are left out; the fingerprint layer reports them as missing.
func (s *Store) DepHashes(deps []string) map[string]uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]uint64, len(deps))
	for _, dep := range deps {
		if h, ok := s.hashes[dep]; ok {
			out[dep] = h
		}
	}
	return out
}
