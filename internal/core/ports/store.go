package ports

// ArtefactStore maps named collections to ordered lists of file paths.
// Build steps read one input collection and publish one output collection.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtefactStore interface {
	// Get returns the paths of a named collection, or nil when absent.
	Get(name string) []string

	// Put replaces the entire named collection. It never merges.
	Put(name string, paths []string) error

	// SetRun tags the store with the current build-run identifier.
	SetRun(runID string) error
}
