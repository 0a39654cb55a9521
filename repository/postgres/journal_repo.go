package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/repository"
)

type journalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a Postgres-backed transaction journal.
func NewJournalRepository(pool *pgxpool.Pool) repository.JournalRepository {
	return &journalRepository{pool: pool}
}

// Append is idempotent on the event ID so a replayed buffer item is harmless.
func (r *journalRepository) Append(ctx context.Context, event domain.Event) error {
	const query = `
	INSERT INTO journal (id, kind, executor, target_id, payload, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO NOTHING
	`

	var payload interface{}
	if len(event.Payload) > 0 {
		payload = []byte(event.Payload)
	}

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		string(event.Kind),
		event.Executor,
		event.TargetID,
		payload,
		event.CreatedAt,
	)
	return err
}

func (r *journalRepository) List(ctx context.Context, filter repository.JournalFilter) ([]domain.Event, error) {
	const query = `
	SELECT id, kind, executor, target_id, payload, created_at
	FROM journal
	WHERE ($1 = '' OR kind = $1)
	ORDER BY created_at DESC, id
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.Kind, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var event domain.Event
	var (
		kind    string
		payload []byte
	)
	if err := row.Scan(&event.ID, &kind, &event.Executor, &event.TargetID, &payload, &event.CreatedAt); err != nil {
		return nil, err
	}
	event.Kind = domain.TransactionKind(kind)
	if len(payload) > 0 {
		event.Payload = append([]byte(nil), payload...)
	}
	return &event, nil
}
