// Package tx defines the transaction boundary abstraction so domain
// services stay independent of the storage backend.
package tx

import "context"

// Manager runs a function within a transaction. Implementations must
// roll back on error and on panic.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
