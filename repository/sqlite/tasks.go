package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fastygo/todoledger/domain"
)

const insertTask = `
	INSERT INTO tasks (id, name, state, duration, energy, location, tags, notes, due,
		assignee, created_by, created_at, last_updated_by, last_updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type taskRepository struct {
	db *sql.DB
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT id, name, state, duration, energy, location, tags, notes, due,
		assignee, created_by, created_at, last_updated_by, last_updated_at
	FROM tasks
	WHERE id = ?
	`
	var (
		task                    domain.Task
		state, duration, energy string
		createdBy               string
		tags                    sql.NullString
		assignee, lastUpdatedBy sql.NullString
		due, lastUpdatedAt      sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Name,
		&state,
		&duration,
		&energy,
		&task.Location,
		&tags,
		&task.Notes,
		&due,
		&assignee,
		&createdBy,
		&task.CreatedAt,
		&lastUpdatedBy,
		&lastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.State = domain.TaskState(state)
	task.Duration = domain.Duration(duration)
	task.Energy = domain.Energy(energy)
	task.Tags = decodeTags(tags)
	task.Due = mapNullTimePtr(due)
	task.Assignee = mapUserRef(assignee)
	task.CreatedBy = domain.UserRef(createdBy)
	task.LastUpdatedBy = mapUserRef(lastUpdatedBy)
	task.LastUpdatedAt = mapNullTimePtr(lastUpdatedAt)
	return &task, nil
}

func (r *taskRepository) Add(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	return insertOneTask(ctx, r.db, task)
}

func (r *taskRepository) AddAll(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for i := range tasks {
			if err := insertOneTask(ctx, tx, &tasks[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET name = ?,
		state = ?,
		duration = ?,
		energy = ?,
		location = ?,
		tags = ?,
		notes = ?,
		due = ?,
		assignee = ?,
		last_updated_by = ?,
		last_updated_at = ?
	WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		task.Name,
		string(task.State),
		string(task.Duration),
		string(task.Energy),
		task.Location,
		encodeTags(task.Tags),
		task.Notes,
		nullTime(task.Due),
		refColumn(task.Assignee),
		refColumn(task.LastUpdatedBy),
		nullTime(task.LastUpdatedAt),
		task.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrTaskNotFound)
}

func (r *taskRepository) Remove(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, task.ID)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrTaskNotFound)
}

func insertOneTask(ctx context.Context, db execer, task *domain.Task) error {
	_, err := db.ExecContext(ctx, insertTask,
		task.ID,
		task.Name,
		string(task.State),
		string(task.Duration),
		string(task.Energy),
		task.Location,
		encodeTags(task.Tags),
		task.Notes,
		nullTime(task.Due),
		refColumn(task.Assignee),
		task.CreatedBy.ID,
		task.CreatedAt.UTC(),
		refColumn(task.LastUpdatedBy),
		nullTime(task.LastUpdatedAt),
	)
	if isUniqueViolation(err) {
		return domain.ErrTaskExists
	}
	return err
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
