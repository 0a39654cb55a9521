package repository

import (
	"context"

	"github.com/fastygo/todoledger/domain"
)

// TaskRepository is the asset store for tasks. Identity is the task ID.
// Every write call is atomic.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Add(ctx context.Context, task *domain.Task) error
	AddAll(ctx context.Context, tasks []domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Remove(ctx context.Context, task *domain.Task) error
}
