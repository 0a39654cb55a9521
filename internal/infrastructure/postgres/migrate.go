package postgres

import (
	"database/sql"
	"errors"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/fastygo/todoledger/internal/config"
)

// Migrate brings the ledger schema up to the newest file under mc.Path.
// It is a no-op when migrations are disabled.
func Migrate(db config.DatabaseConfig, mc config.MigrationsConfig, logger *zap.Logger) error {
	if !mc.Enabled {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := sql.Open("postgres", db.URL)
	if err != nil {
		return err
	}
	defer conn.Close()

	driver, err := migratepg.WithInstance(conn, &migratepg.Config{MigrationsTable: "todoledger_schema_migrations"})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(mc.Path), db.Name, driver)
	if err != nil {
		return err
	}
	defer m.Close()

	before, _, _ := m.Version()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	after, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	logger.Info("ledger schema ready",
		zap.Uint("from_version", before),
		zap.Uint("version", after),
		zap.Bool("dirty", dirty),
	)
	return nil
}
