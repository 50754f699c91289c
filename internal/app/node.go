package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sho/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/sho/internal/adapters/export"    //nolint:depguard // Wired in app layer
	"go.trai.ch/sho/internal/adapters/extractor" //nolint:depguard // Wired in app layer
	"go.trai.ch/sho/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/sho/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/sho/internal/adapters/notes"     //nolint:depguard // Wired in app layer
	"go.trai.ch/sho/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/sho/internal/adapters/store"     //nolint:depguard // Wired in app layer
	"go.trai.ch/sho/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/sho/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles what the CLI needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.ControlNodeID,
			fs.ListerNodeID,
			fs.StaterNodeID,
			extractor.NodeID,
			notes.NodeID,
			store.NodeID,
			shell.NodeID,
			watcher.NodeID,
			export.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}
	lister, err := graft.Dep[ports.ModelLister](ctx)
	if err != nil {
		return nil, err
	}
	stater, err := graft.Dep[ports.Stater](ctx)
	if err != nil {
		return nil, err
	}
	ext, err := graft.Dep[ports.MetricExtractor](ctx)
	if err != nil {
		return nil, err
	}
	notesStore, err := graft.Dep[ports.NotesStore](ctx)
	if err != nil {
		return nil, err
	}
	stores, err := graft.Dep[*store.Factory](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[*shell.Runner](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	exporter, err := graft.Dep[*export.Exporter](ctx)
	if err != nil {
		return nil, err
	}

	return New(Deps{
		ConfigLoader: loader,
		Logger:       log,
		Lister:       lister,
		Stater:       stater,
		Extractor:    ext,
		Notes:        notesStore,
		Stores:       stores,
		Runner:       runner,
		Watcher:      w,
		Exporter:     exporter,
	}), nil
}
