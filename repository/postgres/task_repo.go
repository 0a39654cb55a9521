package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/repository"
)

const insertTask = `
	INSERT INTO tasks (id, name, state, duration, energy, location, tags, notes, due,
		assignee, created_by, created_at, last_updated_by, last_updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed asset store for tasks.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT id, name, state, duration, energy, location, tags, notes, due,
		assignee, created_by, created_at, last_updated_by, last_updated_at
	FROM tasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) Add(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	if _, err := r.pool.Exec(ctx, insertTask, taskArgs(task)...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTaskExists
		}
		return err
	}
	return nil
}

func (r *taskRepository) AddAll(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for i := range tasks {
			batch.Queue(insertTask, taskArgs(&tasks[i])...)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if isUniqueViolation(err) {
		return domain.ErrTaskExists
	}
	return err
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET name = $2,
		state = $3,
		duration = $4,
		energy = $5,
		location = $6,
		tags = $7,
		notes = $8,
		due = $9,
		assignee = $10,
		last_updated_by = $11,
		last_updated_at = $12
	WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Name,
		string(task.State),
		string(task.Duration),
		string(task.Energy),
		task.Location,
		task.Tags,
		task.Notes,
		nullTime(task.Due),
		refColumn(task.Assignee),
		refColumn(task.LastUpdatedBy),
		nullTime(task.LastUpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Remove(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, task.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func taskArgs(task *domain.Task) []interface{} {
	return []interface{}{
		task.ID,
		task.Name,
		string(task.State),
		string(task.Duration),
		string(task.Energy),
		task.Location,
		task.Tags,
		task.Notes,
		nullTime(task.Due),
		refColumn(task.Assignee),
		task.CreatedBy.ID,
		task.CreatedAt,
		refColumn(task.LastUpdatedBy),
		nullTime(task.LastUpdatedAt),
	}
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	var (
		state, duration, energy string
		createdBy               string
		assignee, lastUpdatedBy *string
		due, lastUpdatedAt      *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.Name,
		&state,
		&duration,
		&energy,
		&task.Location,
		&task.Tags,
		&task.Notes,
		&due,
		&assignee,
		&createdBy,
		&task.CreatedAt,
		&lastUpdatedBy,
		&lastUpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.State = domain.TaskState(state)
	task.Duration = domain.Duration(duration)
	task.Energy = domain.Energy(energy)
	task.Due = due
	task.Assignee = scanUserRef(assignee)
	task.CreatedBy = domain.UserRef(createdBy)
	task.LastUpdatedBy = scanUserRef(lastUpdatedBy)
	task.LastUpdatedAt = lastUpdatedAt

	return &task, nil
}
