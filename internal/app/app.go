// Package app implements the application layer for forge.
package app

import (
	"context"

	"github.com/google/uuid"
	"go.trai.ch/forge/internal/adapters/analysis"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/codegen"
	"go.trai.ch/forge/internal/engine/preprocess"
	"go.trai.ch/forge/internal/tools"
	"go.trai.ch/zerr"
)

// App orchestrates one build run: profile loading, tool selection and the
// source pipeline from raw tree to preprocessed, generated sources.
type App struct {
	profiles  ports.ProfileLoader
	registry  *tools.Registry
	store     ports.ArtefactStore
	telemetry ports.Telemetry
	log       ports.Logger
	walker    *fs.Walker
	analysis  *analysis.Store
}

// Deps bundles everything the App needs.
type Deps struct {
	Profiles  ports.ProfileLoader
	Registry  *tools.Registry
	Store     ports.ArtefactStore
	Telemetry ports.Telemetry
	Logger    ports.Logger
	Walker    *fs.Walker
	Analysis  *analysis.Store
}

// New creates a new App instance.
func New(deps Deps) *App {
	return &App{
		profiles:  deps.Profiles,
		registry:  deps.Registry,
		store:     deps.Store,
		telemetry: deps.Telemetry,
		log:       deps.Logger,
		walker:    deps.Walker,
		analysis:  deps.Analysis,
	}
}

// RunOptions carry the command-line overrides for one run.
type RunOptions struct {
	// ConfigPath is the profile location.
	ConfigPath string
	// Jobs overrides the profile's worker count when positive.
	Jobs int
}

// Toolset is the resolved tool selection of one run.
type Toolset struct {
	FortranPP       tools.Tool
	CPP             tools.Tool
	FortranCompiler tools.Compiler
	CCompiler       tools.Compiler
	Linker          *tools.Linker
	Psyclone        *tools.Psyclone
}

// Run executes the source pipeline: select tools per the profile, seed the
// source collections, stage include files, generate code and preprocess.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	profile, err := a.profiles.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load build profile")
	}
	if opts.Jobs > 0 {
		profile.Jobs = opts.Jobs
	}

	runID := uuid.NewString()
	if err := a.store.SetRun(runID); err != nil {
		return err
	}
	a.log.Info("build run " + runID + " for project " + profile.Project)

	toolset, err := a.SelectTools(ctx, profile)
	if err != nil {
		return err
	}
	a.configure(toolset, profile)

	if err := a.seedCollections(profile); err != nil {
		return err
	}

	stepDeps := preprocess.Deps{Store: a.store, Telemetry: a.telemetry, Logger: a.log}
	steps := []interface {
		Run(ctx context.Context) error
	}{
		preprocess.NewIncFiles(a.walker, profile, stepDeps),
		preprocess.NewFortran(toolset.FortranPP, profile, stepDeps),
		preprocess.NewC(toolset.CPP, profile, stepDeps),
	}
	if toolset.Psyclone != nil {
		gen := codegen.New(toolset.Psyclone, profile, codegen.Deps{
			Store:     a.store,
			Telemetry: a.telemetry,
			Logger:    a.log,
			Analysis:  a.analysis,
		})
		steps = append(steps, gen)
	}

	for _, step := range steps {
		if err := step.Run(ctx); err != nil {
			return err
		}
	}

	return a.analysis.Save()
}

// SelectTools resolves the profile's tool selection from the registry.
// Suite preference is applied first, then each category yields its first
// available tool with the required MPI capability.
func (a *App) SelectTools(ctx context.Context, profile *domain.Profile) (*Toolset, error) {
	if profile.Suite != "" {
		if err := a.registry.SetDefaultCompilerSuite(profile.Suite); err != nil {
			return nil, err
		}
	}

	fpp, err := a.registry.GetDefault(ctx, domain.CategoryFortranPreprocessor)
	if err != nil {
		return nil, err
	}
	cpp, err := a.registry.GetDefault(ctx, domain.CategoryCPreprocessor)
	if err != nil {
		return nil, err
	}

	fc, err := a.registry.GetDefaultWithMPI(ctx, domain.CategoryFortranCompiler, profile.MPI)
	if err != nil {
		return nil, err
	}
	cc, err := a.registry.GetDefaultWithMPI(ctx, domain.CategoryCCompiler, profile.MPI)
	if err != nil {
		return nil, err
	}
	lk, err := a.registry.GetDefaultWithMPI(ctx, domain.CategoryLinker, profile.MPI)
	if err != nil {
		return nil, err
	}

	ts := &Toolset{
		FortranPP:       fpp,
		CPP:             cpp,
		FortranCompiler: fc.(tools.Compiler),
		CCompiler:       cc.(tools.Compiler),
		Linker:          lk.(*tools.Linker),
	}

	if profile.Psyclone != nil {
		t, err := a.registry.Lookup(domain.CategoryCodeGen, "psyclone")
		if err != nil {
			return nil, err
		}
		if !t.Available(ctx) {
			return nil, zerr.With(domain.ErrToolUnavailable, "tool", t.Name())
		}
		ts.Psyclone = t.(*tools.Psyclone)
	}

	return ts, nil
}

// configure applies the profile's linker library table and points the
// Fortran module output at the build root.
func (a *App) configure(ts *Toolset, profile *domain.Profile) {
	for _, lib := range profile.Libs {
		ts.Linker.AddLibFlags(lib.Name, lib.Flags, false)
	}
	ts.Linker.AddPreLibFlags(profile.PreLibFlags...)
	ts.Linker.AddPostLibFlags(profile.PostLibFlags...)

	if feats, ok := ts.FortranCompiler.FortranFeatures(); ok {
		feats.SetModuleOutputPath(profile.BuildRoot)
	}
}

// seedCollections publishes the raw source collections from a source tree
// walk. Empty collections are simply not published.
func (a *App) seedCollections(profile *domain.Profile) error {
	seed := func(name string, suffixes ...string) error {
		var files []string
		for f := range a.walker.WalkFiles(profile.SourceRoot, suffixes) {
			files = append(files, f)
		}
		if len(files) == 0 {
			return nil
		}
		a.log.Debug("collected " + name)
		return a.store.Put(name, files)
	}

	if err := seed(preprocess.CollectionFortranSource, ".F90"); err != nil {
		return err
	}
	if err := seed(preprocess.CollectionCSource, ".c"); err != nil {
		return err
	}
	return seed(codegen.CollectionX90, ".x90", ".X90")
}
