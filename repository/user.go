package repository

import (
	"context"

	"github.com/fastygo/todoledger/domain"
)

// UserRepository is the participant store for users. Identity is the email.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int, error)
	Add(ctx context.Context, user *domain.User) error
	AddAll(ctx context.Context, users []domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Remove(ctx context.Context, user *domain.User) error
}
