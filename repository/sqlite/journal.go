package sqlite

import (
	"context"
	"database/sql"

	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/repository"
)

type journalRepository struct {
	db *sql.DB
}

func (r *journalRepository) Append(ctx context.Context, event domain.Event) error {
	const query = `
	INSERT INTO journal (id, kind, executor, target_id, payload, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO NOTHING
	`
	var payload sql.NullString
	if len(event.Payload) > 0 {
		payload = sql.NullString{String: string(event.Payload), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		string(event.Kind),
		event.Executor,
		event.TargetID,
		payload,
		event.CreatedAt.UTC(),
	)
	return err
}

func (r *journalRepository) List(ctx context.Context, filter repository.JournalFilter) ([]domain.Event, error) {
	const query = `
	SELECT id, kind, executor, target_id, payload, created_at
	FROM journal
	WHERE (? = '' OR kind = ?)
	ORDER BY created_at DESC, id
	LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, filter.Kind, filter.Kind, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var (
			event   domain.Event
			kind    string
			payload sql.NullString
		)
		if err := rows.Scan(&event.ID, &kind, &event.Executor, &event.TargetID, &payload, &event.CreatedAt); err != nil {
			return nil, err
		}
		event.Kind = domain.TransactionKind(kind)
		if payload.Valid {
			event.Payload = []byte(payload.String)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
