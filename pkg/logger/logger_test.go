package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRequestIDAttachesIDs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithTransactionID(ctx, "tx-1")
	WithRequestID(ctx, base).Info("applied")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "req-1", fields["request_id"])
	require.Equal(t, "tx-1", fields["transaction_id"])
	require.Equal(t, "tx-1", TransactionID(ctx))
}

func TestWithRequestIDWithoutIDs(t *testing.T) {
	base := zap.NewNop()
	require.Same(t, base, WithRequestID(context.Background(), base))
	require.Empty(t, TransactionID(context.Background()))
}

func TestNewFallsBackToInfo(t *testing.T) {
	log, err := New(Config{Level: "loud", Encoding: "console"})
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zap.InfoLevel))
	require.False(t, log.Core().Enabled(zap.DebugLevel))
}
