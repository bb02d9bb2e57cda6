// Package fingerprint computes the combined hash deciding whether a build
// step's output can be reused.
package fingerprint

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Source is one input file with its analysed dependencies.
type Source struct {
	// Path identifies the file.
	Path string
	// ContentHash is the hash of the file's bytes.
	ContentHash uint64
	// Deps are the paths of direct dependencies, modules used and files
	// included.
	Deps []string
}

// Key combines a source's content hash, its dependencies' content hashes,
// the hash of an optional transformation script and a checksum over extra
// command-line arguments into one value.
//
// The combination is a wrapping sum, so it is independent of dependency
// order: two analyses that list the same dependencies in a different order
// produce the same key.
func Key(src Source, depHashes map[string]uint64, scriptHash uint64, args []string) (uint64, error) {
	sum := src.ContentHash
	for _, dep := range src.Deps {
		h, ok := depHashes[dep]
		if !ok {
			missing := zerr.With(domain.ErrMissingDependencyHash, "dependency", dep)
			return 0, zerr.With(missing, "source", src.Path)
		}
		sum += h
	}
	sum += scriptHash
	sum += ArgsChecksum(args)
	return sum, nil
}

// ArgsChecksum hashes a flat argument list. NUL separators keep adjacent
// arguments from colliding with their concatenation.
func ArgsChecksum(args []string) uint64 {
	if len(args) == 0 {
		return 0
	}
	return xxhash.Sum64String(strings.Join(args, "\x00"))
}
