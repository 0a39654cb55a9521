package usecase

import (
	"context"

	"github.com/fastygo/todoledger/domain"
)

// Journal records applied transactions. Implementations may defer the write.
type Journal interface {
	Record(ctx context.Context, event domain.Event) error
}
