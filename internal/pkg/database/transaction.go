package database

import "context"

// TxManager runs a function inside a single storage transaction. Multi-row
// bulk operations (pay runs, bulk clock-out) go through this so a partial
// failure cannot leave inconsistent state.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopTxManager runs the function without any transaction. Used by tests
// that exercise services against in-memory repositories.
type NoopTxManager struct{}

func (NoopTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}
