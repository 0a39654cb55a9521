// Package redis stores login sessions as JSON values that expire with the session.
package redis

import (
	"context"
	"encoding/json"
	"errors"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/repository"
)

const sessionPrefix = "todoledger:session:"

type sessionRepository struct {
	client *redislib.Client
}

func NewSessionRepository(client *redislib.Client) repository.SessionRepository {
	return &sessionRepository{client: client}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, sessionPrefix+id).Bytes()
	if errors.Is(err, redislib.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Save writes the session with a key expiry matching session.ExpiresAt.
func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" || session.Email == "" || session.ExpiresAt.IsZero() {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.SetArgs(ctx, sessionPrefix+session.ID, payload, redislib.SetArgs{
		ExpireAt: session.ExpiresAt,
	}).Err()
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.client.Del(ctx, sessionPrefix+id).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
