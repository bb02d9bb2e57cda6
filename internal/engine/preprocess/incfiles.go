package preprocess

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// CollectionIncFiles names the published include-file collection.
const CollectionIncFiles = "inc_files"

// IncFiles copies every .inc file in the source tree to the build root, so
// legacy code relying on a flat include path keeps building. Two files with
// the same base name in different folders would silently shadow each other,
// so that is an error.
type IncFiles struct {
	walker *fs.Walker
	deps   Deps

	sourceRoot string
	buildRoot  string
}

// NewIncFiles creates the include-file staging step.
func NewIncFiles(walker *fs.Walker, profile *domain.Profile, deps Deps) *IncFiles {
	return &IncFiles{
		walker:     walker,
		deps:       deps,
		sourceRoot: profile.SourceRoot,
		buildRoot:  profile.BuildRoot,
	}
}

// Run stages the include files and publishes their staged paths.
func (s *IncFiles) Run(ctx context.Context) error {
	if err := os.MkdirAll(s.buildRoot, 0o755); err != nil {
		return zerr.Wrap(err, "cannot create build root")
	}

	seen := map[string]string{}
	var staged []string
	for input := range s.walker.WalkFiles(s.sourceRoot, []string{".inc"}) {
		base := filepath.Base(input)
		if prev, dup := seen[base]; dup {
			clash := zerr.With(zerr.New("duplicate include file name"), "file", input)
			return zerr.With(clash, "previous", prev)
		}
		seen[base] = input

		output := filepath.Join(s.buildRoot, base)
		if err := copyFile(input, output); err != nil {
			return zerr.With(err, "file", input)
		}
		s.deps.Logger.Debug("staged include file " + output)
		staged = append(staged, output)
	}

	if len(staged) == 0 {
		return nil
	}
	return s.deps.Store.Put(CollectionIncFiles, staged)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return zerr.Wrap(err, "cannot open include file")
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return zerr.Wrap(err, "cannot create staged include file")
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return zerr.Wrap(err, "cannot copy include file")
	}
	return out.Close()
}
