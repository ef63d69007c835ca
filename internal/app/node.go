package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wheelhouse/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelhouse/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelhouse/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelhouse/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelhouse/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelhouse/internal/core/ports"
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
			shell.NodeID,
			logger.NodeID,
			telemetry.NodeID,
			fs.WalkerNodeID,
			fs.HasherNodeID,
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
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	walker, err := graft.Dep[*fs.Walker](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[*fs.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, executor, log, tel, walker, hasher), nil
}
