package preprocess

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/tools"
	"go.trai.ch/zerr"
)

// Artefact collection names used by the preprocessing steps.
const (
	CollectionFortranSource = "source_fortran"
	CollectionCSource       = "source_c"
	CollectionFortranOutput = "preprocessed_fortran"
	CollectionCOutput       = "preprocessed_c"
)

// Deps bundles the collaborators of a preprocessing step.
type Deps struct {
	Store     ports.ArtefactStore
	Telemetry ports.Telemetry
	Logger    ports.Logger
}

// Step preprocesses one source collection into the build tree, one worker
// pool invocation per file.
type Step struct {
	tool       tools.Tool
	deps       Deps
	source     string
	output     string
	outSuffix  string
	flags      []string
	sourceRoot string
	buildRoot  string
	reuse      bool
	jobs       int
}

// NewFortran creates the Fortran preprocessing step, rewriting .F90 files to
// their lowercase .f90 counterparts under the build root.
func NewFortran(tool tools.Tool, profile *domain.Profile, deps Deps) *Step {
	return &Step{
		tool:       tool,
		deps:       deps,
		source:     CollectionFortranSource,
		output:     CollectionFortranOutput,
		outSuffix:  ".f90",
		flags:      profile.FortranPPFlags,
		sourceRoot: profile.SourceRoot,
		buildRoot:  profile.BuildRoot,
		reuse:      profile.Reuse,
		jobs:       profile.Jobs,
	}
}

// NewC creates the C preprocessing step.
func NewC(tool tools.Tool, profile *domain.Profile, deps Deps) *Step {
	return &Step{
		tool:       tool,
		deps:       deps,
		source:     CollectionCSource,
		output:     CollectionCOutput,
		outSuffix:  ".c",
		flags:      profile.CPPFlags,
		sourceRoot: profile.SourceRoot,
		buildRoot:  profile.BuildRoot,
		reuse:      profile.Reuse,
		jobs:       profile.Jobs,
	}
}

// Run preprocesses every file of the input collection. All files are
// attempted even when some fail; the output collection is only published
// when every file succeeded.
func (s *Step) Run(ctx context.Context) error {
	inputs := s.deps.Store.Get(s.source)
	if len(inputs) == 0 {
		s.deps.Logger.Debug("no files in collection " + s.source + ", skipping preprocessing")
		return nil
	}

	outputs, err := RunAll(ctx, inputs, s.jobs, s.processOne)
	if err != nil {
		return zerr.Wrap(err, "preprocessing "+s.source+" failed")
	}
	return s.deps.Store.Put(s.output, outputs)
}

func (s *Step) processOne(ctx context.Context, input string) (string, error) {
	output := s.outputPath(input)
	vtx := s.deps.Telemetry.Record(ctx, "preprocess "+filepath.Base(input))

	if s.reuse {
		if _, err := os.Stat(output); err == nil {
			s.deps.Logger.Debug("reusing " + output)
			vtx.Cached()
			vtx.Done(nil)
			return output, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		err = zerr.Wrap(err, "cannot create output folder")
		vtx.Done(err)
		return "", err
	}

	args := append(slices.Clone(s.flags), input, output)
	_, err := s.tool.Run(ctx, tools.RunRequest{
		Args:   args,
		Stdout: vtx.Stdout(),
		Stderr: vtx.Stderr(),
	})
	vtx.Done(err)
	if err != nil {
		return "", zerr.With(err, "input", input)
	}
	return output, nil
}

// outputPath mirrors the input's position under the source root into the
// build root, with the step's output suffix.
func (s *Step) outputPath(input string) string {
	rel, err := filepath.Rel(s.sourceRoot, input)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(input)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + s.outSuffix
	return filepath.Join(s.buildRoot, rel)
}
