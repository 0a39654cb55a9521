package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/todoledger/internal/config"
	"github.com/fastygo/todoledger/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/todoledger/internal/infrastructure/postgres"
	"github.com/fastygo/todoledger/internal/services/lifecycle"
	"github.com/fastygo/todoledger/repository"
	"github.com/fastygo/todoledger/repository/postgres"
	"github.com/fastygo/todoledger/repository/sqlite"
)

// stores bundles the participant, asset and journal stores of one driver.
type stores struct {
	tasks   repository.TaskRepository
	users   repository.UserRepository
	journal repository.JournalRepository
	db      monitor.Pinger
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger, manager *lifecycle.Manager) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		store, err := sqlite.NewStore(cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		manager.RegisterCloser("sqlite", store)
		if cfg.Migrations.Enabled {
			if err := store.ApplyMigrations(); err != nil {
				return nil, fmt.Errorf("sqlite migrations: %w", err)
			}
		}
		logger.Info("using sqlite store", zap.String("path", cfg.Store.SQLitePath))
		return &stores{
			tasks:   store.Tasks(),
			users:   store.Users(),
			journal: store.Journal(),
			db:      store,
		}, nil

	default:
		if err := pgInfra.Migrate(cfg.Database, cfg.Migrations, logger); err != nil {
			return nil, fmt.Errorf("postgres migrations: %w", err)
		}
		pool, err := pgInfra.Connect(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres connection: %w", err)
		}
		manager.Register("postgres", func(context.Context) error {
			pool.Close()
			return nil
		})
		return &stores{
			tasks:   postgres.NewTaskRepository(pool),
			users:   postgres.NewUserRepository(pool),
			journal: postgres.NewJournalRepository(pool),
			db:      pool,
		}, nil
	}
}
