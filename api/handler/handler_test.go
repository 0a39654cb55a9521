package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/internal/infrastructure/monitor"
	"github.com/fastygo/todoledger/pkg/httpcontext"
	"github.com/fastygo/todoledger/repository"
	"github.com/fastygo/todoledger/usecase"
	"github.com/fastygo/todoledger/usecase/ledger"
	taskUC "github.com/fastygo/todoledger/usecase/task"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrTaskNameRequired, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{domain.ErrTaskAlreadyCompleted, http.StatusConflict, "INVALID_STATE"},
		{domain.ErrCannotDeleteSelf, http.StatusConflict, "INVALID_STATE"},
		{domain.ErrTaskExists, http.StatusConflict, "CONFLICT"},
		{fmt.Errorf("lookup: %w", domain.ErrUserNotFound), http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrBadCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.NewError(domain.ErrCodeForbidden, "no"), http.StatusForbidden, "FORBIDDEN"},
		{errors.New("disk full"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		status, code := mapError(tt.err)
		require.Equal(t, tt.status, status, tt.err.Error())
		require.Equal(t, tt.code, code, tt.err.Error())
	}
}

type memTasks struct {
	tasks map[string]domain.Task
}

func (m *memTasks) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task.Clone(), nil
}

func (m *memTasks) Add(_ context.Context, task *domain.Task) error {
	if _, ok := m.tasks[task.ID]; ok {
		return domain.ErrTaskExists
	}
	m.tasks[task.ID] = *task.Clone()
	return nil
}

func (m *memTasks) AddAll(ctx context.Context, tasks []domain.Task) error {
	for i := range tasks {
		if err := m.Add(ctx, &tasks[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *memTasks) Update(_ context.Context, task *domain.Task) error {
	m.tasks[task.ID] = *task.Clone()
	return nil
}

func (m *memTasks) Remove(_ context.Context, task *domain.Task) error {
	delete(m.tasks, task.ID)
	return nil
}

type envelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
	Error  struct {
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

func decode(t *testing.T, ctx *fasthttp.RequestCtx) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &env))
	return env
}

func newTransactionHandler(tasks *memTasks) *TransactionHandler {
	d := usecase.NewDispatcher()
	taskUC.New(tasks, nil).Register(d)
	processor := ledger.New(d, tasks, nil, nil, nil)
	return NewTransactionHandler(processor, httpcontext.NewAdapter(time.Second), nil)
}

func submit(h *TransactionHandler, kind, body, executor string) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetBodyString(body)
	if executor != "" {
		ctx.Request.Header.Set(httpcontext.ExecutorHeader, executor)
	}
	ctx.SetUserValue("kind", kind)
	h.Submit(&ctx)
	return &ctx
}

func TestTransactionHandlerSubmit(t *testing.T) {
	tasks := &memTasks{tasks: map[string]domain.Task{}}
	h := newTransactionHandler(tasks)

	ctx := submit(h, "CreateTask", `{"taskId":"Task-1","taskName":"Wash the Batmobile"}`, "bobby@x.com")
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	env := decode(t, ctx)
	require.Equal(t, "success", env.Status)

	var receipt struct {
		TransactionID string      `json:"transaction_id"`
		Kind          string      `json:"kind"`
		Record        domain.Task `json:"record"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &receipt))
	require.Equal(t, "CreateTask", receipt.Kind)
	require.Equal(t, "Task-1", receipt.Record.ID)
	require.Equal(t, domain.TaskInactive, receipt.Record.State)
	require.Equal(t, domain.UserRef("bobby@x.com"), receipt.Record.CreatedBy)

	ctx = submit(h, "CompleteTask", `{"task":"Task-1"}`, "robin@x.com")
	require.Equal(t, http.StatusConflict, ctx.Response.StatusCode())
	env = decode(t, ctx)
	require.Equal(t, "INVALID_STATE", env.Code)
	require.Equal(t, "Task is not active", env.Error.Message)
	require.NotEmpty(t, env.Error.RequestID)

	ctx = submit(h, "CreateTask", `{"taskId":"Task-2","taskName":"x"}`, "")
	require.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())

	ctx = submit(h, "DeleteUser", `{}`, "")
	require.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	require.Equal(t, "INVALID_ARGUMENT", decode(t, ctx).Code)
}

func TestTaskHandlerGetTask(t *testing.T) {
	tasks := &memTasks{tasks: map[string]domain.Task{"Task-1": {ID: "Task-1", Name: "x", State: domain.TaskActive}}}
	h := NewTaskHandler(taskUC.New(tasks, nil), nil, nil)

	var ctx fasthttp.RequestCtx
	ctx.SetUserValue("id", "Task-1")
	h.GetTask(&ctx)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	var missing fasthttp.RequestCtx
	missing.SetUserValue("id", "Task-9")
	h.GetTask(&missing)
	require.Equal(t, http.StatusNotFound, missing.Response.StatusCode())
}

type fakeJournal struct {
	filter repository.JournalFilter
	events []domain.Event
}

func (f *fakeJournal) List(_ context.Context, filter repository.JournalFilter) ([]domain.Event, error) {
	f.filter = filter
	return f.events, nil
}

func TestJournalHandlerList(t *testing.T) {
	journal := &fakeJournal{}
	h := NewJournalHandler(journal, nil, nil)

	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/api/v1/journal?kind=AssignTask&limit=10&offset=5")
	h.List(&ctx)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	require.Equal(t, repository.JournalFilter{Kind: "AssignTask", Limit: 10, Offset: 5}, journal.filter)
	require.JSONEq(t, `[]`, string(decode(t, &ctx).Data))

	var bad fasthttp.RequestCtx
	bad.Request.SetRequestURI("/api/v1/journal?kind=Nope")
	h.List(&bad)
	require.Equal(t, http.StatusBadRequest, bad.Response.StatusCode())
}

type fakeStatus struct{ status monitor.Status }

func (f fakeStatus) GetStatus() monitor.Status { return f.status }

func TestHealthHandler(t *testing.T) {
	var ok fasthttp.RequestCtx
	NewHealthHandler(fakeStatus{monitor.Status{Database: true, Redis: true, Buffer: true}}, "sqlite", nil, nil).Check(&ok)
	require.Equal(t, http.StatusOK, ok.Response.StatusCode())

	var degraded fasthttp.RequestCtx
	NewHealthHandler(fakeStatus{monitor.Status{Database: true}}, "postgres", nil, nil).Check(&degraded)
	require.Equal(t, http.StatusServiceUnavailable, degraded.Response.StatusCode())
	require.Equal(t, "DEGRADED", decode(t, &degraded).Code)
}
