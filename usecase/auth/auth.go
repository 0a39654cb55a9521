package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/repository"
)

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	signer   *Signer
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, signer *Signer, ttl time.Duration, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		signer:   signer,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Login checks the stored password and opens a session for the user.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*Token, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		uc.logger.Info("login rejected", zap.String("email", email))
		return nil, domain.ErrBadCredentials
	}

	now := uc.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Email:     user.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(uc.ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return uc.signer.Sign(session)
}

// Refresh extends a live session and issues a new token for it.
func (uc *UseCase) Refresh(ctx context.Context, sessionID string) (*Token, error) {
	session, err := uc.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Renew(uc.now(), uc.ttl)
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	uc.logger.Debug("session renewed", zap.String("session_id", session.ID), zap.Int("renewals", session.Renewals))
	return uc.signer.Sign(session)
}

func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(uc.now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Verify resolves a bearer token to its claims. Tokens of revoked or expired
// sessions are rejected even while their signature is still valid.
func (uc *UseCase) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := uc.signer.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	session, err := uc.GetSession(ctx, claims.SessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, "session revoked", err)
	}
	if err != nil {
		return nil, err
	}
	if session.Email != claims.Email {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
