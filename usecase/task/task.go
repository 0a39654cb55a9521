package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/repository"
	"github.com/fastygo/todoledger/usecase"
)

// UseCase is the task lifecycle engine. Each operation validates the
// transaction, mutates a copy of the task and issues exactly one store call.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, txn domain.CreateTask) (*domain.Task, error) {
	if txn.TaskID == "" {
		return nil, domain.ErrTaskIDRequired
	}
	if err := usecase.RequireExecutor(txn.Transaction); err != nil {
		return nil, err
	}
	if txn.TaskName == "" {
		return nil, domain.ErrTaskNameRequired
	}

	task := &domain.Task{
		ID:        txn.TaskID,
		Name:      txn.TaskName,
		State:     domain.TaskInactive,
		CreatedBy: txn.ExecutorRef(),
		CreatedAt: txn.Timestamp,
	}
	if txn.TaskDuration != nil {
		if !txn.TaskDuration.Valid() {
			return nil, domain.ErrInvalidDuration
		}
		task.Duration = *txn.TaskDuration
	}
	if txn.TaskEnergy != nil {
		if !txn.TaskEnergy.Valid() {
			return nil, domain.ErrInvalidEnergy
		}
		task.Energy = *txn.TaskEnergy
	}
	if txn.TaskLocation != nil {
		task.Location = *txn.TaskLocation
	}
	if txn.TaskTags != nil {
		task.Tags = domain.TagSet(txn.TaskTags)
	}
	if txn.TaskNotes != nil {
		task.Notes = *txn.TaskNotes
	}
	if txn.TaskDue != nil {
		due := *txn.TaskDue
		task.Due = &due
	}
	if txn.TaskAssignee != nil && !txn.TaskAssignee.IsZero() {
		assignee := *txn.TaskAssignee
		task.Assignee = &assignee
	}

	if err := uc.tasks.Add(ctx, task); err != nil {
		uc.logger.Debug("task add failed", zap.String("task_id", task.ID), zap.Error(err))
		return nil, err
	}
	return task, nil
}

// AssignTask activates the task for the given assignee. It does not require an executor.
func (uc *UseCase) AssignTask(ctx context.Context, txn domain.AssignTask) (*domain.Task, error) {
	if txn.Task == nil {
		return nil, domain.ErrTaskRequired
	}
	if txn.Task.IsCompleted() {
		return nil, domain.ErrTaskAlreadyCompleted
	}

	task := txn.Task.Clone()
	task.Assignee = nil
	if txn.TaskAssignee != nil && !txn.TaskAssignee.IsZero() {
		assignee := *txn.TaskAssignee
		task.Assignee = &assignee
	}
	task.State = domain.TaskActive
	task.Touch(txn.ExecutorRef(), txn.Timestamp)

	if err := uc.tasks.Update(ctx, task); err != nil {
		uc.logger.Debug("task update failed", zap.String("task_id", task.ID), zap.Error(err))
		return nil, err
	}
	return task, nil
}

func (uc *UseCase) CompleteTask(ctx context.Context, txn domain.CompleteTask) (*domain.Task, error) {
	if txn.Task == nil {
		return nil, domain.ErrTaskRequired
	}
	if err := usecase.RequireExecutor(txn.Transaction); err != nil {
		return nil, err
	}
	if !txn.Task.IsActive() {
		return nil, domain.ErrTaskNotActive
	}
	if !txn.Task.IsAssigned() {
		return nil, domain.ErrTaskNotAssigned
	}

	task := txn.Task.Clone()
	task.State = domain.TaskCompleted
	task.Touch(txn.ExecutorRef(), txn.Timestamp)

	if err := uc.tasks.Update(ctx, task); err != nil {
		uc.logger.Debug("task update failed", zap.String("task_id", task.ID), zap.Error(err))
		return nil, err
	}
	return task, nil
}

// UpdateTask overwrites the supplied fields regardless of the current state.
// A supplied state only has to be a known state; any transition is allowed.
func (uc *UseCase) UpdateTask(ctx context.Context, txn domain.UpdateTask) (*domain.Task, error) {
	if txn.Task == nil {
		return nil, domain.ErrTaskRequired
	}
	if err := usecase.RequireExecutor(txn.Transaction); err != nil {
		return nil, err
	}

	task := txn.Task.Clone()
	// Name is required, so an empty one cannot clear it and counts as not supplied.
	if txn.TaskName != nil && *txn.TaskName != "" {
		task.Name = *txn.TaskName
	}
	if txn.TaskLocation != nil {
		task.Location = *txn.TaskLocation
	}
	if txn.TaskDue != nil {
		if txn.TaskDue.IsZero() {
			task.Due = nil
		} else {
			due := *txn.TaskDue
			task.Due = &due
		}
	}
	if txn.TaskDuration != nil {
		if *txn.TaskDuration != "" && !txn.TaskDuration.Valid() {
			return nil, domain.ErrInvalidDuration
		}
		task.Duration = *txn.TaskDuration
	}
	if txn.TaskEnergy != nil {
		if *txn.TaskEnergy != "" && !txn.TaskEnergy.Valid() {
			return nil, domain.ErrInvalidEnergy
		}
		task.Energy = *txn.TaskEnergy
	}
	if txn.TaskState != nil {
		if !txn.TaskState.Valid() {
			return nil, domain.ErrInvalidTaskState
		}
		task.State = *txn.TaskState
	}
	if txn.TaskTags != nil {
		task.Tags = domain.TagSet(txn.TaskTags)
	}
	if txn.TaskNotes != nil {
		task.Notes = *txn.TaskNotes
	}
	if txn.TaskAssignee != nil {
		if txn.TaskAssignee.IsZero() {
			task.Assignee = nil
		} else {
			assignee := *txn.TaskAssignee
			task.Assignee = &assignee
		}
	}
	task.Touch(txn.ExecutorRef(), txn.Timestamp)

	if err := uc.tasks.Update(ctx, task); err != nil {
		uc.logger.Debug("task update failed", zap.String("task_id", task.ID), zap.Error(err))
		return nil, err
	}
	return task, nil
}

// DeleteTask removes the task unconditionally.
func (uc *UseCase) DeleteTask(ctx context.Context, txn domain.DeleteTask) (*domain.Task, error) {
	if txn.Task == nil {
		return nil, domain.ErrTaskRequired
	}
	if err := uc.tasks.Remove(ctx, txn.Task); err != nil {
		return nil, err
	}
	return txn.Task, nil
}

// Register binds every task operation to its transaction kind.
func (uc *UseCase) Register(d *usecase.Dispatcher) {
	d.RegisterCommand(domain.KindCreateTask, usecase.Handle(uc.CreateTask))
	d.RegisterCommand(domain.KindAssignTask, usecase.Handle(uc.AssignTask))
	d.RegisterCommand(domain.KindCompleteTask, usecase.Handle(uc.CompleteTask))
	d.RegisterCommand(domain.KindUpdateTask, usecase.Handle(uc.UpdateTask))
	d.RegisterCommand(domain.KindDeleteTask, usecase.Handle(uc.DeleteTask))
}
