package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/internal/infrastructure/buffer"
	"github.com/fastygo/todoledger/repository"
)

type fakeMonitor struct{ online bool }

func (m *fakeMonitor) IsOnline() bool { return m.online }

type fakeJournal struct {
	events []domain.Event
	err    error
}

func (f *fakeJournal) Append(_ context.Context, event domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeJournal) List(context.Context, repository.JournalFilter) ([]domain.Event, error) {
	return f.events, nil
}

func newProcessor(t *testing.T, online bool, cfg ProcessorConfig) (*JournalProcessor, *fakeMonitor, *fakeJournal, *buffer.Store) {
	t.Helper()
	store, err := buffer.Open(filepath.Join(t.TempDir(), "journal.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	mon := &fakeMonitor{online: online}
	repo := &fakeJournal{}
	return NewJournalProcessor(store, mon, repo, nil, cfg), mon, repo, store
}

func event(id string, at time.Time) domain.Event {
	return domain.Event{ID: id, Kind: domain.KindCreateTask, Executor: "bobby@x.com", TargetID: "Task-1", CreatedAt: at}
}

func TestRecordWritesDirectlyWhenOnline(t *testing.T) {
	jp, _, repo, _ := newProcessor(t, true, ProcessorConfig{})

	require.NoError(t, jp.Record(context.Background(), event("tx-1", time.Now())))
	require.Len(t, repo.events, 1)
	require.Equal(t, 0, jp.Size())
}

func TestRecordBuffersAndDrains(t *testing.T) {
	jp, mon, repo, _ := newProcessor(t, false, ProcessorConfig{})
	ctx := context.Background()

	require.NoError(t, jp.Record(ctx, event("tx-1", time.Now())))
	require.NoError(t, jp.Record(ctx, event("tx-2", time.Now().Add(time.Millisecond))))
	require.Equal(t, 2, jp.Size())

	require.NoError(t, jp.Drain(ctx))
	require.Empty(t, repo.events)

	mon.online = true
	require.NoError(t, jp.Drain(ctx))
	require.Equal(t, 0, jp.Size())
	require.Len(t, repo.events, 2)
	require.Equal(t, "tx-1", repo.events[0].ID)
	require.Equal(t, "bobby@x.com", repo.events[1].Executor)
}

func TestRecordBuffersWhenAppendFails(t *testing.T) {
	jp, _, repo, _ := newProcessor(t, true, ProcessorConfig{})
	repo.err = errors.New("connection reset")

	require.NoError(t, jp.Record(context.Background(), event("tx-1", time.Now())))
	require.Equal(t, 1, jp.Size())
}

func TestDrainDropsAfterMaxRetries(t *testing.T) {
	jp, _, repo, _ := newProcessor(t, true, ProcessorConfig{MaxRetries: 2})
	repo.err = errors.New("constraint violated")
	ctx := context.Background()

	require.NoError(t, jp.Record(ctx, event("tx-1", time.Now())))
	require.Equal(t, 1, jp.Size())

	require.NoError(t, jp.Drain(ctx))
	require.Equal(t, 1, jp.Size())

	require.NoError(t, jp.Drain(ctx))
	require.Equal(t, 0, jp.Size())
}

func TestCleanupHonoursRetention(t *testing.T) {
	jp, _, _, _ := newProcessor(t, false, ProcessorConfig{Retention: time.Hour})
	now := time.Now()

	require.NoError(t, jp.Record(context.Background(), event("old", now.Add(-2*time.Hour))))
	require.NoError(t, jp.Record(context.Background(), event("new", now)))

	dropped, err := jp.Cleanup(now)
	require.NoError(t, err)
	require.Equal(t, 1, dropped)
	require.Equal(t, 1, jp.Size())
}

func TestStartStop(t *testing.T) {
	jp, _, _, _ := newProcessor(t, true, ProcessorConfig{Interval: time.Second})
	jp.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, jp.Stop(ctx))
}
