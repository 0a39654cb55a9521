package usecase

import "github.com/fastygo/todoledger/domain"

// RequireExecutor checks that the envelope names an executing user with an email.
func RequireExecutor(txn domain.Transaction) error {
	if txn.Executor == nil {
		return domain.ErrExecutorRequired
	}
	if txn.Executor.Email == "" {
		return domain.ErrExecutorEmailRequired
	}
	return nil
}
