package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/admin/astro-insights/internal/pkg/logger"
	"github.com/google/uuid"
)

type App struct {
	Name string
	Cfg  *Config
	Log  *slog.Logger

	// InstanceID идентификатор реплики, им помечаются события инвалидации
	InstanceID uuid.UUID
}

func New(name string, cfg *Config) (*App, error) {
	log, err := logger.New(name, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	instanceID := uuid.New()
	return &App{
		Name:       name,
		Cfg:        cfg,
		Log:        log.With("instance_id", instanceID),
		InstanceID: instanceID,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.Log.Info("starting application")

	deps, err := a.initDependencies(ctx)
	if err != nil {
		return fmt.Errorf("init dependencies: %w", err)
	}

	return a.runServices(ctx, deps)
}
