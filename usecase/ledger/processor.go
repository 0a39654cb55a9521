package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/internal/metrics"
	appLogger "github.com/fastygo/todoledger/pkg/logger"
	"github.com/fastygo/todoledger/repository"
	"github.com/fastygo/todoledger/usecase"
)

// Receipt describes an applied transaction.
type Receipt struct {
	TransactionID string                 `json:"transaction_id"`
	Kind          domain.TransactionKind `json:"kind"`
	Timestamp     time.Time              `json:"timestamp"`
	Executor      string                 `json:"executor,omitempty"`
	Record        interface{}            `json:"record,omitempty"`
}

// Processor hosts the engines: it decodes a transaction body, resolves the
// records it references, stamps the envelope and dispatches it.
type Processor struct {
	dispatcher *usecase.Dispatcher
	tasks      repository.TaskRepository
	users      repository.UserRepository
	journal    usecase.Journal
	validate   *validator.Validate
	now        func() time.Time
	logger     *zap.Logger
}

type Option func(*Processor)

// WithClock overrides the transaction timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		if now != nil {
			p.now = now
		}
	}
}

func New(dispatcher *usecase.Dispatcher, tasks repository.TaskRepository, users repository.UserRepository, journal usecase.Journal, logger *zap.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Processor{
		dispatcher: dispatcher,
		tasks:      tasks,
		users:      users,
		journal:    journal,
		validate:   validator.New(),
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit applies one transaction. executorEmail is empty for anonymous requests.
func (p *Processor) Submit(ctx context.Context, kind domain.TransactionKind, payload json.RawMessage, executorEmail string) (receipt *Receipt, err error) {
	started := time.Now()
	defer func() { metrics.RecordTransaction(kind, started, err) }()

	if !kind.Valid() || !p.dispatcher.Registered(kind) {
		return nil, domain.ErrUnknownTransaction
	}

	base := domain.Transaction{
		ID:        uuid.NewString(),
		Timestamp: p.now().UTC(),
	}
	if executorEmail != "" {
		base.Executor = &domain.User{Email: executorEmail}
	}

	ctx = appLogger.ContextWithTransactionID(ctx, base.ID)
	log := appLogger.WithRequestID(ctx, p.logger).With(zap.String("kind", string(kind)))

	record, target, err := p.build(ctx, kind, payload, base)
	if err != nil {
		log.Debug("transaction rejected", zap.Error(err))
		return nil, err
	}

	result, err := p.dispatcher.ExecuteCommand(ctx, kind, record)
	if err != nil {
		log.Info("transaction failed", zap.String("target", target), zap.Error(err))
		return nil, err
	}

	p.recordJournal(ctx, log, kind, base, target, result)
	log.Info("transaction applied", zap.String("target", target), zap.String("executor", executorEmail))

	return &Receipt{
		TransactionID: base.ID,
		Kind:          kind,
		Timestamp:     base.Timestamp,
		Executor:      executorEmail,
		Record:        result,
	}, nil
}

func (p *Processor) build(ctx context.Context, kind domain.TransactionKind, payload json.RawMessage, base domain.Transaction) (interface{}, string, error) {
	switch kind {
	case domain.KindBootstrap:
		return domain.Bootstrap{Transaction: base}, "", nil

	case domain.KindCreateTask:
		var req createTaskRequest
		if err := p.decode(payload, &req); err != nil {
			return nil, "", err
		}
		due, err := parseDue(req.TaskDue)
		if err != nil {
			return nil, "", err
		}
		if due != nil && due.IsZero() {
			due = nil
		}
		return domain.CreateTask{
			Transaction:  base,
			TaskID:       req.TaskID,
			TaskName:     req.TaskName,
			TaskDuration: req.TaskDuration,
			TaskEnergy:   req.TaskEnergy,
			TaskLocation: req.TaskLocation,
			TaskTags:     req.TaskTags,
			TaskNotes:    req.TaskNotes,
			TaskDue:      due,
			TaskAssignee: req.TaskAssignee,
		}, req.TaskID, nil

	case domain.KindAssignTask:
		var req assignTaskRequest
		if err := p.decode(payload, &req); err != nil {
			return nil, "", err
		}
		task, err := p.resolveTask(ctx, req.Task)
		if err != nil {
			return nil, "", err
		}
		return domain.AssignTask{Transaction: base, Task: task, TaskAssignee: req.TaskAssignee}, taskID(task), nil

	case domain.KindCompleteTask, domain.KindDeleteTask:
		var req taskRequest
		if err := p.decode(payload, &req); err != nil {
			return nil, "", err
		}
		task, err := p.resolveTask(ctx, req.Task)
		if err != nil {
			return nil, "", err
		}
		if kind == domain.KindCompleteTask {
			return domain.CompleteTask{Transaction: base, Task: task}, taskID(task), nil
		}
		return domain.DeleteTask{Transaction: base, Task: task}, taskID(task), nil

	case domain.KindUpdateTask:
		var req updateTaskRequest
		if err := p.decode(payload, &req); err != nil {
			return nil, "", err
		}
		due, err := parseDue(req.TaskDue)
		if err != nil {
			return nil, "", err
		}
		task, err := p.resolveTask(ctx, req.Task)
		if err != nil {
			return nil, "", err
		}
		return domain.UpdateTask{
			Transaction:  base,
			Task:         task,
			TaskName:     req.TaskName,
			TaskLocation: req.TaskLocation,
			TaskDue:      due,
			TaskDuration: req.TaskDuration,
			TaskEnergy:   req.TaskEnergy,
			TaskState:    req.TaskState,
			TaskTags:     req.TaskTags,
			TaskNotes:    req.TaskNotes,
			TaskAssignee: req.TaskAssignee,
		}, taskID(task), nil

	case domain.KindCreateUser:
		var req createUserRequest
		if err := p.decode(payload, &req); err != nil {
			return nil, "", err
		}
		return domain.CreateUser{
			Transaction:   base,
			UserEmail:     req.UserEmail,
			UserFirstName: req.UserFirstName,
			UserLastName:  req.UserLastName,
			UserPassword:  req.UserPassword,
		}, req.UserEmail, nil

	case domain.KindUpdateUser:
		var req updateUserRequest
		if err := p.decode(payload, &req); err != nil {
			return nil, "", err
		}
		user, err := p.resolveUser(ctx, req.User)
		if err != nil {
			return nil, "", err
		}
		return domain.UpdateUser{
			Transaction:   base,
			User:          user,
			UserFirstName: req.UserFirstName,
			UserLastName:  req.UserLastName,
			UserPassword:  req.UserPassword,
		}, userEmail(user), nil

	case domain.KindDeleteUser:
		var req userRequest
		if err := p.decode(payload, &req); err != nil {
			return nil, "", err
		}
		user, err := p.resolveUser(ctx, req.User)
		if err != nil {
			return nil, "", err
		}
		return domain.DeleteUser{Transaction: base, User: user}, userEmail(user), nil
	}
	return nil, "", domain.ErrUnknownTransaction
}

func (p *Processor) decode(payload json.RawMessage, dst interface{}) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		payload = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.WrapError(domain.ErrCodeInvalidArgument, "invalid payload", err)
	}
	if err := p.validate.Struct(dst); err != nil {
		return domain.WrapError(domain.ErrCodeInvalidArgument, "invalid payload", err)
	}
	return nil
}

// resolveTask loads the referenced task. An empty reference resolves to nil
// so the engine reports the missing task itself.
func (p *Processor) resolveTask(ctx context.Context, ref string) (*domain.Task, error) {
	id, err := refID(ref, domain.TypeTask)
	if err != nil || id == "" {
		return nil, err
	}
	return p.tasks.GetByID(ctx, id)
}

func (p *Processor) resolveUser(ctx context.Context, ref string) (*domain.User, error) {
	email, err := refID(ref, domain.TypeUser)
	if err != nil || email == "" {
		return nil, err
	}
	return p.users.GetByEmail(ctx, email)
}

func (p *Processor) recordJournal(ctx context.Context, log *zap.Logger, kind domain.TransactionKind, txn domain.Transaction, target string, result interface{}) {
	if p.journal == nil {
		return
	}
	body, err := json.Marshal(result)
	if err != nil {
		log.Warn("journal payload encoding failed", zap.Error(err))
		body = nil
	}
	event := domain.Event{
		ID:        txn.ID,
		Kind:      kind,
		TargetID:  target,
		Payload:   body,
		CreatedAt: txn.Timestamp,
	}
	if txn.Executor != nil {
		event.Executor = txn.Executor.Email
	}
	if err := p.journal.Record(ctx, event); err != nil {
		log.Error("journal record failed", zap.Error(err))
	}
}

// refID returns the key of a reference that must point at a recordType record.
func refID(raw, recordType string) (string, error) {
	ref, err := domain.ParseRef(raw, recordType)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func taskID(task *domain.Task) string {
	if task == nil {
		return ""
	}
	return task.ID
}

func userEmail(user *domain.User) string {
	if user == nil {
		return ""
	}
	return user.Email
}
