package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/graphcache/internal/adapters/cas"    //nolint:depguard // Wired in app layer
	"go.trai.ch/graphcache/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/graphcache/internal/adapters/export" //nolint:depguard // Wired in app layer
	"go.trai.ch/graphcache/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/graphcache/internal/core/ports"
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
			cas.NodeID,
			export.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ResolutionLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ResultStore](ctx)
	if err != nil {
		return nil, err
	}

	renderers, err := graft.Dep[[]ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, store, renderers, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{App: app, Logger: log}, nil
}
