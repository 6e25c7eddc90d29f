package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
//
// Escrow deposits and settlement touch an order and a wallet in the same
// transaction: either both the ledger entry and the order flag commit, or
// neither does.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	OrderRepository() OrderRepository

	// BidRepository returns a BidRepository instance bound to the current transaction.
	BidRepository() BidRepository

	// WalletRepository returns a WalletRepository instance bound to the current transaction.
	WalletRepository() WalletRepository

	// ReviewRepository returns a ReviewRepository instance bound to the current transaction.
	ReviewRepository() ReviewRepository
}
