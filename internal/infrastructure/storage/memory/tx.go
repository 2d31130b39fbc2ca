package memory

import "context"

// TxManager satisfies tx.Manager for in-memory backends. Map mutations
// are already atomic under the store locks, so it just runs fn.
type TxManager struct{}

// NewTxManager creates a pass-through transaction manager.
func NewTxManager() *TxManager {
	return &TxManager{}
}

// RunInTransaction runs fn directly.
func (*TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
