package repository

import (
	"context"

	"github.com/fastygo/todoledger/domain"
)

// SessionRepository keeps login sessions until their ExpiresAt.
// Save overwrites; Delete reports ErrSessionNotFound for unknown ids.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}
