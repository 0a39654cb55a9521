package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/todoledger/internal/config"
)

func TestPoolConfig(t *testing.T) {
	cfg, err := poolConfig(config.DatabaseConfig{
		URL:             "postgres://ledger:pw@db.internal:5433/todoledger?sslmode=disable",
		MaxOpenConns:    8,
		MaxIdleConns:    20,
		MaxConnLifetime: 30 * time.Minute,
	})
	require.NoError(t, err)
	require.Equal(t, "db.internal", cfg.ConnConfig.Host)
	require.Equal(t, uint16(5433), cfg.ConnConfig.Port)
	require.Equal(t, int32(8), cfg.MaxConns)
	require.Equal(t, int32(8), cfg.MinConns, "idle connections never exceed the pool size")
	require.Equal(t, 30*time.Minute, cfg.MaxConnLifetime)

	_, err = poolConfig(config.DatabaseConfig{URL: "://bad"})
	require.Error(t, err)
}
