package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/repository"
)

const insertUser = `
	INSERT INTO users (email, first_name, last_name, password, created_at, last_updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed participant store.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
		SELECT email, first_name, last_name, password, created_at, last_updated_at
		FROM users
		WHERE email = $1
	`
	row := r.pool.QueryRow(ctx, query, email)

	var user domain.User
	if err := row.Scan(&user.Email, &user.FirstName, &user.LastName, &user.Password, &user.CreatedAt, &user.LastUpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) Add(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	if _, err := r.pool.Exec(ctx, insertUser, userArgs(user)...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return err
	}
	return nil
}

func (r *userRepository) AddAll(ctx context.Context, users []domain.User) error {
	if len(users) == 0 {
		return nil
	}
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for i := range users {
			batch.Queue(insertUser, userArgs(&users[i])...)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if isUniqueViolation(err) {
		return domain.ErrUserExists
	}
	return err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE users
	SET first_name = $2,
		last_name = $3,
		password = $4,
		last_updated_at = $5
	WHERE email = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Password,
		nullTime(user.LastUpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Remove(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE email = $1`, user.Email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func userArgs(user *domain.User) []interface{} {
	return []interface{}{
		user.Email,
		user.FirstName,
		user.LastName,
		user.Password,
		user.CreatedAt,
		nullTime(user.LastUpdatedAt),
	}
}
