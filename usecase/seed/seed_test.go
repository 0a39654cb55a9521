package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/todoledger/domain"
)

type batchUsers struct {
	count   int
	batches [][]domain.User
	err     error
}

func (b *batchUsers) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (b *batchUsers) Count(context.Context) (int, error) { return b.count, nil }
func (b *batchUsers) Add(context.Context, *domain.User) error { return errors.New("unexpected add") }
func (b *batchUsers) Update(context.Context, *domain.User) error { return errors.New("unexpected update") }
func (b *batchUsers) Remove(context.Context, *domain.User) error { return errors.New("unexpected remove") }
func (b *batchUsers) AddAll(_ context.Context, users []domain.User) error {
	b.batches = append(b.batches, users)
	return b.err
}

type batchTasks struct {
	batches [][]domain.Task
	err     error
}

func (b *batchTasks) GetByID(context.Context, string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}
func (b *batchTasks) Add(context.Context, *domain.Task) error { return errors.New("unexpected add") }
func (b *batchTasks) Update(context.Context, *domain.Task) error { return errors.New("unexpected update") }
func (b *batchTasks) Remove(context.Context, *domain.Task) error { return errors.New("unexpected remove") }
func (b *batchTasks) AddAll(_ context.Context, tasks []domain.Task) error {
	b.batches = append(b.batches, tasks)
	return b.err
}

func TestBootstrapBatchInsertsDataset(t *testing.T) {
	users := &batchUsers{}
	tasks := &batchTasks{}
	stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	data, err := New(users, tasks, nil).Bootstrap(context.Background(), domain.Bootstrap{
		Transaction: domain.Transaction{ID: "tx-boot", Timestamp: stamp},
	})
	require.NoError(t, err)

	require.Len(t, users.batches, 1)
	require.Len(t, tasks.batches, 1)
	require.Len(t, users.batches[0], 5)
	require.Len(t, tasks.batches[0], 5)
	require.Equal(t, data.Users, users.batches[0])

	for _, task := range data.Tasks {
		require.Equal(t, domain.UserRef(BossEmail), task.CreatedBy)
		require.Equal(t, stamp, task.CreatedAt)
		require.Nil(t, task.Assignee)
		require.Nil(t, task.LastUpdatedAt)
	}
	require.Equal(t, "Task-1", data.Tasks[0].ID)
	require.Equal(t, "Task-5", data.Tasks[4].ID)
	require.Equal(t, domain.TaskActive, data.Tasks[4].State)
	require.Equal(t, domain.TaskInactive, data.Tasks[0].State)
	require.Equal(t, "catwoman@example.com", data.Users[1].Email)
	require.Equal(t, stamp, data.Users[1].CreatedAt)
}

func TestBootstrapStopsOnUserFailure(t *testing.T) {
	storeErr := errors.New("duplicate participant")
	users := &batchUsers{err: storeErr}
	tasks := &batchTasks{}

	_, err := New(users, tasks, nil).Bootstrap(context.Background(), domain.Bootstrap{})
	require.ErrorIs(t, err, storeErr)
	require.Empty(t, tasks.batches)
}

func TestSeedIfEmpty(t *testing.T) {
	users := &batchUsers{count: 2}
	tasks := &batchTasks{}
	seeder := New(users, tasks, nil)

	seeded, err := seeder.SeedIfEmpty(context.Background(), domain.Bootstrap{})
	require.NoError(t, err)
	require.False(t, seeded)
	require.Empty(t, users.batches)

	users.count = 0
	seeded, err = seeder.SeedIfEmpty(context.Background(), domain.Bootstrap{})
	require.NoError(t, err)
	require.True(t, seeded)
	require.Len(t, tasks.batches, 1)
}
