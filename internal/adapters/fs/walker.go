// Package fs provides file system adapters for walking and hashing source trees.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files under root whose name ends in one of the given
// suffixes (case-sensitive; empty suffix list matches everything), in
// filesystem walk order. Version-control directories are skipped.
func (w *Walker) WalkFiles(root string, suffixes []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if d.Name() == ".git" || d.Name() == ".svn" {
					return filepath.SkipDir
				}
				return nil
			}

			if !matchesSuffix(d.Name(), suffixes) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func matchesSuffix(name string, suffixes []string) bool {
	if len(suffixes) == 0 {
		return true
	}
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
