package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/todoledger/domain"
)

func TestDispatcherRoutesByKind(t *testing.T) {
	d := NewDispatcher()
	d.RegisterCommand(domain.KindDeleteTask, Handle(func(_ context.Context, txn domain.DeleteTask) (string, error) {
		return txn.Task.ID, nil
	}))

	require.True(t, d.Registered(domain.KindDeleteTask))
	require.False(t, d.Registered(domain.KindCreateTask))

	out, err := d.ExecuteCommand(context.Background(), domain.KindDeleteTask, domain.DeleteTask{Task: &domain.Task{ID: "Task-9"}})
	require.NoError(t, err)
	require.Equal(t, "Task-9", out)
}

func TestDispatcherRejectsUnknownKindAndPayload(t *testing.T) {
	d := NewDispatcher()
	d.RegisterCommand(domain.KindDeleteTask, Handle(func(_ context.Context, txn domain.DeleteTask) (string, error) {
		return "", nil
	}))

	_, err := d.ExecuteCommand(context.Background(), domain.KindCreateTask, nil)
	require.ErrorIs(t, err, domain.ErrUnknownTransaction)

	_, err = d.ExecuteCommand(context.Background(), domain.KindDeleteTask, domain.CreateTask{})
	require.ErrorIs(t, err, domain.ErrInvalidPayload)

	var domainErr *domain.Error
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, domain.ErrCodeInvalidArgument, domainErr.Code)
}

func TestRequireExecutor(t *testing.T) {
	require.ErrorIs(t, RequireExecutor(domain.Transaction{}), domain.ErrExecutorRequired)
	require.ErrorIs(t, RequireExecutor(domain.Transaction{Executor: &domain.User{}}), domain.ErrExecutorEmailRequired)
	require.NoError(t, RequireExecutor(domain.Transaction{Executor: &domain.User{Email: "bobby@x.com"}}))
}
