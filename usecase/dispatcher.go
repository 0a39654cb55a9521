package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/fastygo/todoledger/domain"
)

type CommandHandler func(ctx context.Context, payload interface{}) (interface{}, error)

// Dispatcher routes a transaction record to the engine registered for its kind.
type Dispatcher struct {
	cmdHandlers map[domain.TransactionKind]CommandHandler
	mu          sync.RWMutex
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		cmdHandlers: make(map[domain.TransactionKind]CommandHandler),
	}
}

func (d *Dispatcher) RegisterCommand(kind domain.TransactionKind, handler CommandHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cmdHandlers[kind] = handler
}

func (d *Dispatcher) Registered(kind domain.TransactionKind) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.cmdHandlers[kind]
	return ok
}

func (d *Dispatcher) ExecuteCommand(ctx context.Context, kind domain.TransactionKind, payload interface{}) (interface{}, error) {
	d.mu.RLock()
	handler, ok := d.cmdHandlers[kind]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTransaction, kind)
	}
	return handler(ctx, payload)
}

// Handle adapts a typed engine operation to a CommandHandler.
func Handle[T any, R any](fn func(context.Context, T) (R, error)) CommandHandler {
	return func(ctx context.Context, payload interface{}) (interface{}, error) {
		txn, ok := payload.(T)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected %T", domain.ErrInvalidPayload, payload)
		}
		return fn(ctx, txn)
	}
}
