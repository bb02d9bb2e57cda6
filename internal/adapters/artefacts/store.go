// Package artefacts implements the named artefact-collection store.
package artefacts

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtefactStore = (*Store)(nil)

// Store implements ports.ArtefactStore using a flat JSON file.
// An empty path keeps the store in memory only.
type Store struct {
	path string

	mu  sync.RWMutex
	doc document
}

type document struct {
	Meta        meta                `json:"meta,omitzero"`
	Collections map[string][]string `json:"collections"`
}

type meta struct {
	RunID     string    `json:"run_id,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// NewStore creates a store backed by the file at the given path, loading any
// existing content. An empty path yields a memory-only store.
func NewStore(path string) (*Store, error) {
	s := &Store{doc: document{Collections: make(map[string][]string)}}
	if path != "" {
		s.path = filepath.Clean(path)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	if s.path == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read artefact store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		return zerr.Wrap(err, "failed to unmarshal artefact store")
	}
	if s.doc.Collections == nil {
		s.doc.Collections = make(map[string][]string)
	}

	return nil
}

// save persists the document; callers must hold the write lock.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal artefact store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for artefact store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write artefact store")
	}

	return nil
}

// Get returns a copy of the named collection, or nil when absent.
func (s *Store) Get(name string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths, ok := s.doc.Collections[name]
	if !ok {
		return nil
	}
	return slices.Clone(paths)
}

// Put replaces the entire named collection.
func (s *Store) Put(name string, paths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Collections[name] = slices.Clone(paths)
	s.doc.Meta.Timestamp = time.Now().UTC()
	return s.save()
}

// SetRun tags the store with the current build-run identifier.
func (s *Store) SetRun(runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Meta.RunID = runID
	s.doc.Meta.Timestamp = time.Now().UTC()
	return s.save()
}
