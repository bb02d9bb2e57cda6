// Package codegen runs PSyclone over the x90 sources, reusing previously
// generated output keyed by fingerprint.
package codegen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/forge/internal/adapters/analysis"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/fingerprint"
	"go.trai.ch/forge/internal/engine/preprocess"
	"go.trai.ch/forge/internal/tools"
	"go.trai.ch/zerr"
)

// Artefact collection names used by the code-generation step.
const (
	CollectionX90       = "source_x90"
	CollectionGenerated = "psyclone_output"
)

// Deps bundles the collaborators of the code-generation step.
type Deps struct {
	Store     ports.ArtefactStore
	Telemetry ports.Telemetry
	Logger    ports.Logger
	Analysis  *analysis.Store
}

// Step transforms every x90 source through PSyclone. Output file names embed
// the input's fingerprint, so any change to the source, its dependencies,
// the transformation script or the extra arguments forces regeneration while
// untouched inputs hit the reuse fast path.
type Step struct {
	tool *tools.Psyclone
	deps Deps
	cfg  domain.PsycloneConfig

	sourceRoot string
	buildRoot  string
	reuse      bool
	jobs       int
}

// New creates the code-generation step. It returns nil when the profile does
// not configure PSyclone.
func New(tool *tools.Psyclone, profile *domain.Profile, deps Deps) *Step {
	if profile.Psyclone == nil {
		return nil
	}
	return &Step{
		tool:       tool,
		deps:       deps,
		cfg:        *profile.Psyclone,
		sourceRoot: profile.SourceRoot,
		buildRoot:  profile.BuildRoot,
		reuse:      profile.Reuse,
		jobs:       profile.Jobs,
	}
}

// Run transforms every file of the x90 collection and publishes the
// generated files. Like preprocessing, every file is attempted even when
// some fail.
func (s *Step) Run(ctx context.Context) error {
	inputs := s.deps.Store.Get(CollectionX90)
	if len(inputs) == 0 {
		s.deps.Logger.Debug("no files in collection " + CollectionX90 + ", skipping code generation")
		return nil
	}

	scriptHash, err := s.scriptHash()
	if err != nil {
		return err
	}

	outputs, err := preprocess.RunAll(ctx, inputs, s.jobs, func(ctx context.Context, input string) ([]string, error) {
		return s.processOne(ctx, input, scriptHash)
	})
	if err != nil {
		return zerr.Wrap(err, "code generation failed")
	}

	var flat []string
	for _, files := range outputs {
		flat = append(flat, files...)
	}
	return s.deps.Store.Put(CollectionGenerated, flat)
}

func (s *Step) scriptHash() (uint64, error) {
	if s.cfg.Script == "" {
		return 0, nil
	}
	h, err := s.deps.Analysis.HashOf(s.cfg.Script)
	if err != nil {
		return 0, zerr.Wrap(err, "cannot hash transformation script")
	}
	return h, nil
}

func (s *Step) processOne(ctx context.Context, input string, scriptHash uint64) ([]string, error) {
	key, err := s.fingerprintOf(input, scriptHash)
	if err != nil {
		return nil, err
	}

	outputs := s.outputPaths(input, key)
	vtx := s.deps.Telemetry.Record(ctx, "psyclone "+filepath.Base(input))

	if s.reuse && allExist(outputs) {
		s.deps.Logger.Debug("reusing generated output for " + input)
		vtx.Cached()
		vtx.Done(nil)
		return outputs, nil
	}

	if err := os.MkdirAll(filepath.Dir(outputs[0]), 0o755); err != nil {
		err = zerr.Wrap(err, "cannot create output folder")
		vtx.Done(err)
		return nil, err
	}

	req := tools.PsycloneRequest{
		API:                  s.cfg.API,
		InputFile:            input,
		TransformationScript: s.cfg.Script,
		KernelRoots:          s.cfg.KernelRoots,
		AdditionalArgs:       s.cfg.Args,
	}
	if s.cfg.API != "" {
		req.PsyFile, req.AlgFile = outputs[0], outputs[1]
	} else {
		req.TransformedFile = outputs[0]
	}

	err = s.tool.Process(ctx, req)
	vtx.Done(err)
	if err != nil {
		return nil, zerr.With(err, "input", input)
	}
	return outputs, nil
}

// fingerprintOf keys an input on its analysed content, the hashes of its
// dependencies, the transformation script and the extra arguments.
func (s *Step) fingerprintOf(input string, scriptHash uint64) (uint64, error) {
	src, err := s.deps.Analysis.SourceFor(input)
	if err != nil {
		return 0, err
	}
	return fingerprint.Key(
		fingerprint.Source{Path: src.Path, ContentHash: src.ContentHash, Deps: src.Deps},
		s.deps.Analysis.DepHashes(src.Deps),
		scriptHash,
		s.cfg.Args,
	)
}

// outputPaths mirrors the input under the build root with the fingerprint
// embedded in the file names. DSL mode produces a psy and an alg file,
// transformation mode a single rewritten source.
func (s *Step) outputPaths(input string, key uint64) []string {
	rel, err := filepath.Rel(s.sourceRoot, input)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(input)
	}
	stem := strings.TrimSuffix(rel, filepath.Ext(rel))
	stem = filepath.Join(s.buildRoot, fmt.Sprintf("%s.%016x", stem, key))

	if s.cfg.API != "" {
		return []string{stem + "_psy.f90", stem + "_alg.f90"}
	}
	return []string{stem + ".f90"}
}

func allExist(paths []string) bool {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}
