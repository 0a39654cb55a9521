package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastygo/todoledger/domain"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nullTime(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}

// refColumn stores a reference by its key; the record type is implied by the column.
func refColumn(ref *domain.Ref) interface{} {
	if ref == nil || ref.IsZero() {
		return nil
	}
	return ref.ID
}

func scanUserRef(email *string) *domain.Ref {
	if email == nil || *email == "" {
		return nil
	}
	ref := domain.UserRef(*email)
	return &ref
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
