package main

import (
	"context"
	"log/slog"

	"bucketsync/internal/config"
	"bucketsync/internal/provider/factory"
	"bucketsync/internal/service"
	"bucketsync/pkg/formatter"
	"bucketsync/pkg/storage"
	"bucketsync/pkg/storage/localfs"
)

// appContainer holds all the shared dependencies for the application
// This includes configuration, the backend factory, formatters, and the logger
type appContainer struct {
	Config         *config.Config
	ConfigManager  *config.Manager
	BackendFactory *factory.Factory
	SyncFormatter  *formatter.SyncFormatter
	Logger         *slog.Logger
	LogLevel       *slog.LevelVar
}

// Creates and initializes a new application container
func newApp(logger *slog.Logger, level *slog.LevelVar) (*appContainer, error) {
	cfgManager, err := config.NewManager()
	if err != nil {
		return nil, err
	}

	cfg, err := cfgManager.Load()
	if err != nil {
		return nil, err
	}

	backendFactory := factory.NewFactory(cfg, logger)
	syncFormatter := formatter.NewSyncFormatter()

	return &appContainer{
		Config:         cfg,
		ConfigManager:  cfgManager,
		BackendFactory: backendFactory,
		SyncFormatter:  syncFormatter,
		Logger:         logger,
		LogLevel:       level,
	}, nil
}

// newSyncService builds the per-invocation sync service: a local side
// rooted at workdir and a remote side produced by the factory. The
// returned backend is the remote; callers own closing it.
func (app *appContainer) newSyncService(ctx context.Context, backendName, workdir string) (*service.SyncService, storage.Backend, error) {
	remote, err := app.BackendFactory.GetBackend(ctx, backendName)
	if err != nil {
		return nil, nil, err
	}

	local, err := localfs.New(workdir, app.Logger.With("backend", "workdir"))
	if err != nil {
		remote.Close()
		return nil, nil, err
	}

	return service.NewSyncService(local, remote, app.Logger), remote, nil
}
