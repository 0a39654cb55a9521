package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fastygo/todoledger/domain"
)

type userRepository struct {
	db *sql.DB
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
	SELECT email, first_name, last_name, password, created_at, last_updated_at
	FROM users
	WHERE email = ?
	`
	var (
		user          domain.User
		lastUpdatedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Password,
		&user.CreatedAt,
		&lastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user.LastUpdatedAt = mapNullTimePtr(lastUpdatedAt)
	return &user, nil
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) Add(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	return insertOneUser(ctx, r.db, user)
}

func (r *userRepository) AddAll(ctx context.Context, users []domain.User) error {
	if len(users) == 0 {
		return nil
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for i := range users {
			if err := insertOneUser(ctx, tx, &users[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	const query = `
	UPDATE users
	SET first_name = ?,
		last_name = ?,
		password = ?,
		last_updated_at = ?
	WHERE email = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.Password,
		nullTime(user.LastUpdatedAt),
		user.Email,
	)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrUserNotFound)
}

func (r *userRepository) Remove(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE email = ?`, user.Email)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrUserNotFound)
}

func insertOneUser(ctx context.Context, db execer, user *domain.User) error {
	const query = `
	INSERT INTO users (email, first_name, last_name, password, created_at, last_updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(ctx, query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Password,
		user.CreatedAt.UTC(),
		nullTime(user.LastUpdatedAt),
	)
	if isUniqueViolation(err) {
		return domain.ErrUserExists
	}
	return err
}
