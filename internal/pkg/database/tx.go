package database

import "context"

// TxManager runs a unit of work inside one database transaction. The
// returned context carries the transaction; repositories resolve it through
// GetQuerier so the same code runs inside or outside a transaction.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
