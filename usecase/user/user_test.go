package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/todoledger/domain"
)

type recordingUsers struct {
	ops   []string
	users []domain.User
	err   error
}

func (r *recordingUsers) record(op string, user *domain.User) error {
	r.ops = append(r.ops, op)
	r.users = append(r.users, *user.Clone())
	return r.err
}

func (r *recordingUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for i := len(r.users) - 1; i >= 0; i-- {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *recordingUsers) Count(context.Context) (int, error) { return len(r.users), nil }

func (r *recordingUsers) Add(_ context.Context, user *domain.User) error {
	return r.record("add", user)
}

func (r *recordingUsers) AddAll(_ context.Context, users []domain.User) error {
	for i := range users {
		if err := r.record("addAll", &users[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *recordingUsers) Update(_ context.Context, user *domain.User) error {
	return r.record("update", user)
}

func (r *recordingUsers) Remove(_ context.Context, user *domain.User) error {
	return r.record("remove", user)
}

func txn(email string, sec int64) domain.Transaction {
	tx := domain.Transaction{ID: "tx", Timestamp: time.Unix(sec, 0).UTC()}
	if email != "" {
		tx.Executor = &domain.User{Email: email}
	}
	return tx
}

func ptr(s string) *string { return &s }

func TestCreateUser(t *testing.T) {
	t.Parallel()

	t.Run("requires email", func(t *testing.T) {
		store := &recordingUsers{}
		_, err := New(store, nil).CreateUser(context.Background(), domain.CreateUser{Transaction: txn("", 1), UserFirstName: ptr("Bruce")})
		require.ErrorIs(t, err, domain.ErrUserEmailRequired)
		require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidArgument))
		require.Empty(t, store.ops)
	})

	t.Run("absent fields stay empty", func(t *testing.T) {
		store := &recordingUsers{}
		user, err := New(store, nil).CreateUser(context.Background(), domain.CreateUser{
			Transaction:   txn("", 100),
			UserEmail:     "batman@x.com",
			UserFirstName: ptr("Bruce"),
		})
		require.NoError(t, err)
		require.Equal(t, "batman@x.com", user.Email)
		require.Equal(t, "Bruce", user.FirstName)
		require.Empty(t, user.LastName)
		require.Empty(t, user.Password)
		require.Equal(t, time.Unix(100, 0).UTC(), user.CreatedAt)
		require.Nil(t, user.LastUpdatedAt)
		require.Equal(t, []string{"add"}, store.ops)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()
	original := &domain.User{Email: "superman@x.com", FirstName: "Clark", LastName: "Kent", Password: "up, up"}

	t.Run("requires user", func(t *testing.T) {
		store := &recordingUsers{}
		_, err := New(store, nil).UpdateUser(context.Background(), domain.UpdateUser{Transaction: txn("bobby@x.com", 1)})
		require.ErrorIs(t, err, domain.ErrUserRequired)
		require.Empty(t, store.ops)
	})

	t.Run("overwrites supplied fields only", func(t *testing.T) {
		store := &recordingUsers{}
		out, err := New(store, nil).UpdateUser(context.Background(), domain.UpdateUser{
			Transaction:  txn("", 200),
			User:         original,
			UserLastName: ptr("El"),
		})
		require.NoError(t, err)
		require.Equal(t, "Clark", out.FirstName)
		require.Equal(t, "El", out.LastName)
		require.Equal(t, "up, up", out.Password)
		require.Equal(t, time.Unix(200, 0).UTC(), *out.LastUpdatedAt)
		require.Equal(t, "Kent", original.LastName)
		require.Equal(t, []string{"update"}, store.ops)
	})

	t.Run("no fields only stamps", func(t *testing.T) {
		store := &recordingUsers{}
		out, err := New(store, nil).UpdateUser(context.Background(), domain.UpdateUser{Transaction: txn("", 300), User: original})
		require.NoError(t, err)

		expected := original.Clone()
		stamp := time.Unix(300, 0).UTC()
		expected.LastUpdatedAt = &stamp
		require.Equal(t, expected, out)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()
	target := &domain.User{Email: "catwoman@x.com"}

	tests := []struct {
		name     string
		executor string
		user     *domain.User
		want     error
		wantOps  []string
	}{
		{name: "missing user", executor: "bobby@x.com", want: domain.ErrUserRequired},
		{name: "self delete", executor: "catwoman@x.com", user: target, want: domain.ErrCannotDeleteSelf},
		{name: "other user", executor: "bobby@x.com", user: target, wantOps: []string{"remove"}},
		{name: "anonymous", executor: "", user: target, wantOps: []string{"remove"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := &recordingUsers{}
			_, err := New(store, nil).DeleteUser(context.Background(), domain.DeleteUser{Transaction: txn(tt.executor, 1), User: tt.user})
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
				require.Empty(t, store.ops)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantOps, store.ops)
		})
	}
}

func TestSelfDeleteIsInvalidState(t *testing.T) {
	_, err := New(&recordingUsers{}, nil).DeleteUser(context.Background(), domain.DeleteUser{
		Transaction: txn("batman@x.com", 1),
		User:        &domain.User{Email: "batman@x.com"},
	})
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidState))
	require.Equal(t, "Cannot delete self", err.Error())
}

func TestUserStoreFailurePropagates(t *testing.T) {
	storeErr := errors.New("registry rejected")
	_, err := New(&recordingUsers{err: storeErr}, nil).CreateUser(context.Background(), domain.CreateUser{Transaction: txn("", 1), UserEmail: "a@x.com"})
	require.ErrorIs(t, err, storeErr)
}
