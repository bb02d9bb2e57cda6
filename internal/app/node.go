package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/adapters/analysis"
	"go.trai.ch/forge/internal/adapters/artefacts"
	"go.trai.ch/forge/internal/adapters/config"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/adapters/logger"
	"go.trai.ch/forge/internal/adapters/telemetry"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/tools"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			tools.NodeID,
			artefacts.NodeID,
			telemetry.NodeID,
			logger.NodeID,
			fs.WalkerNodeID,
			analysis.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{
				App:       a,
				Logger:    a.log,
				Registry:  a.registry,
				Telemetry: a.telemetry,
			}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	profiles, err := graft.Dep[ports.ProfileLoader](ctx)
	if err != nil {
		return nil, err
	}
	registry, err := graft.Dep[*tools.Registry](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.ArtefactStore](ctx)
	if err != nil {
		return nil, err
	}
	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	walker, err := graft.Dep[*fs.Walker](ctx)
	if err != nil {
		return nil, err
	}
	anl, err := graft.Dep[*analysis.Store](ctx)
	if err != nil {
		return nil, err
	}

	return New(Deps{
		Profiles:  profiles,
		Registry:  registry,
		Store:     store,
		Telemetry: tel,
		Logger:    log,
		Walker:    walker,
		Analysis:  anl,
	}), nil
}
