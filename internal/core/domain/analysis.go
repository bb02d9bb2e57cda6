package domain

// AnalysedSource is one source unit as reported by the external dependency
// analyzer: its content hash and the names of its direct dependencies.
// The analyzer is a collaborator; hashes and names are opaque here.
type AnalysedSource struct {
	Path        string   `json:"path"`
	ContentHash uint64   `json:"content_hash"`
	Deps        []string `json:"deps,omitempty"`
}

// Analysis is the full analyzer output for a build: every analysed source
// plus the hash of every named dependency.
type Analysis struct {
	Sources   []AnalysedSource  `json:"sources"`
	DepHashes map[string]uint64 `json:"dep_hashes"`
}
