package repository

import (
	"context"

	"github.com/fastygo/todoledger/domain"
)

type JournalFilter struct {
	Kind   string
	Limit  int
	Offset int
}

// JournalRepository stores the history of applied transactions.
type JournalRepository interface {
	Append(ctx context.Context, event domain.Event) error
	List(ctx context.Context, filter JournalFilter) ([]domain.Event, error)
}
