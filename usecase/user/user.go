package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/repository"
	"github.com/fastygo/todoledger/usecase"
)

// UseCase is the user management engine.
type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

func (uc *UseCase) GetUser(ctx context.Context, email string) (*domain.User, error) {
	return uc.users.GetByEmail(ctx, email)
}

// CreateUser copies the optional fields as given; absent fields stay empty.
func (uc *UseCase) CreateUser(ctx context.Context, txn domain.CreateUser) (*domain.User, error) {
	if txn.UserEmail == "" {
		return nil, domain.ErrUserEmailRequired
	}

	user := &domain.User{
		Email:     txn.UserEmail,
		FirstName: deref(txn.UserFirstName),
		LastName:  deref(txn.UserLastName),
		Password:  deref(txn.UserPassword),
		CreatedAt: txn.Timestamp,
	}
	if err := uc.users.Add(ctx, user); err != nil {
		uc.logger.Debug("user add failed", zap.String("email", user.Email), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// UpdateUser overwrites only the supplied fields.
func (uc *UseCase) UpdateUser(ctx context.Context, txn domain.UpdateUser) (*domain.User, error) {
	if txn.User == nil {
		return nil, domain.ErrUserRequired
	}

	user := txn.User.Clone()
	if txn.UserFirstName != nil {
		user.FirstName = *txn.UserFirstName
	}
	if txn.UserLastName != nil {
		user.LastName = *txn.UserLastName
	}
	if txn.UserPassword != nil {
		user.Password = *txn.UserPassword
	}
	updatedAt := txn.Timestamp
	user.LastUpdatedAt = &updatedAt

	if err := uc.users.Update(ctx, user); err != nil {
		uc.logger.Debug("user update failed", zap.String("email", user.Email), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user unless the executor is that same user.
func (uc *UseCase) DeleteUser(ctx context.Context, txn domain.DeleteUser) (*domain.User, error) {
	if txn.User == nil {
		return nil, domain.ErrUserRequired
	}
	if txn.Executor != nil && txn.Executor.Email == txn.User.Email {
		return nil, domain.ErrCannotDeleteSelf
	}
	if err := uc.users.Remove(ctx, txn.User); err != nil {
		uc.logger.Debug("user remove failed", zap.String("email", txn.User.Email), zap.Error(err))
		return nil, err
	}
	return txn.User, nil
}

func (uc *UseCase) Register(d *usecase.Dispatcher) {
	d.RegisterCommand(domain.KindCreateUser, usecase.Handle(uc.CreateUser))
	d.RegisterCommand(domain.KindUpdateUser, usecase.Handle(uc.UpdateUser))
	d.RegisterCommand(domain.KindDeleteUser, usecase.Handle(uc.DeleteUser))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
