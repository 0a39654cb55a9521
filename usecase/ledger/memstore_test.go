package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/fastygo/todoledger/domain"
)

type memTasks struct {
	mu    sync.Mutex
	tasks map[string]domain.Task
}

func newMemTasks() *memTasks { return &memTasks{tasks: map[string]domain.Task{}} }

func (m *memTasks) GetByID(_ context.Context, id string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return t.Clone(), nil
}

func (m *memTasks) Add(_ context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
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
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	m.tasks[task.ID] = *task.Clone()
	return nil
}

func (m *memTasks) Remove(_ context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(m.tasks, task.ID)
	return nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]domain.User{}} }

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (m *memUsers) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func (m *memUsers) Add(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return domain.ErrUserExists
	}
	m.users[user.Email] = *user.Clone()
	return nil
}

func (m *memUsers) AddAll(ctx context.Context, users []domain.User) error {
	for i := range users {
		if err := m.Add(ctx, &users[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *memUsers) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; !ok {
		return domain.ErrUserNotFound
	}
	m.users[user.Email] = *user.Clone()
	return nil
}

func (m *memUsers) Remove(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.users, user.Email)
	return nil
}

type recordingJournal struct {
	events []domain.Event
	fail   bool
}

func (r *recordingJournal) Record(_ context.Context, event domain.Event) error {
	if r.fail {
		return errors.New("journal offline")
	}
	r.events = append(r.events, event)
	return nil
}
