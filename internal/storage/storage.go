package storage

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/baseplate/cms/config"
	"github.com/baseplate/cms/internal/core/model"
	"github.com/baseplate/cms/internal/storage/file"
	"github.com/baseplate/cms/internal/storage/memory"
	"github.com/baseplate/cms/internal/storage/postgres"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the repository selected by cfg.Driver. The closer releases
// any connection the driver holds.
func Open(ctx context.Context, cfg *config.Config) (model.Repository, io.Closer, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.NewRepository(), nopCloser{}, nil

	case config.DriverFile:
		repo, err := file.NewRepository(cfg.Storage.JSONPath)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to open json store at %s", cfg.Storage.JSONPath)
		}
		return repo, nopCloser{}, nil

	case config.DriverPostgres:
		db, err := postgres.NewClient(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, errors.Wrap(err, "failed to migrate database")
		}
		return repo, db, nil
	}

	return nil, nil, errors.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
