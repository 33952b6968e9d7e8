// Package persistence selects and constructs the durable state store backend.
package persistence

import (
	"context"
	"log/slog"
	"path/filepath"

	"releaf/config"
	"releaf/internal/domain/repository"
	"releaf/internal/infra/persistence/filekv"
	"releaf/internal/infra/persistence/sqlitekv"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Driver names accepted by StorageConfig.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the state store selected by the storage config.
func New(params Params) (repository.StateStore, error) {
	cfg := params.Config.Storage
	if cfg == nil {
		return nil, errors.New("storage config is required")
	}

	switch cfg.Driver {
	case DriverFile:
		params.Logger.Info("Using file state store", slog.String("path", cfg.Path))

		return filekv.New(cfg.Path)

	case DriverSQLite:
		path := cfg.Path
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "releaf.db")
		}
		params.Logger.Info("Using sqlite state store", slog.String("path", path))

		store, closeFn, err := sqlitekv.New(path, params.Logger)
		if err != nil {
			return nil, err
		}

		params.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return closeFn()
			},
		})

		return store, nil

	default:
		return nil, errors.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}
