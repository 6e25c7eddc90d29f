// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BidRepoFactory provides access to the bid repository within a transaction.
	BidRepoFactory interface {
		BidRepository() ports.BidRepository
	}

	// WalletRepoFactory provides access to the wallet repository within a transaction.
	WalletRepoFactory interface {
		WalletRepository() ports.WalletRepository
	}

	// ReviewRepoFactory provides access to the review repository within a transaction.
	ReviewRepoFactory interface {
		ReviewRepository() ports.ReviewRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BidUoW manages transactions spanning orders and bids.
	// Bid submission and selection read the order's lifecycle state in the
	// same transaction that writes the bid.
	BidUoW interface {
		TxManager
		OrderRepoFactory
		BidRepoFactory
	}

	// BidUoWFactory creates new bid unit of work instances.
	BidUoWFactory interface {
		Create() BidUoW
	}

	// EscrowUoW manages transactions spanning orders, bids, and wallets.
	// Escrow deposits and settlement commit the ledger entry and the order
	// state change atomically, or not at all.
	EscrowUoW interface {
		TxManager
		OrderRepoFactory
		BidRepoFactory
		WalletRepoFactory
	}

	// EscrowUoWFactory creates new escrow unit of work instances.
	EscrowUoWFactory interface {
		Create() EscrowUoW
	}

	// ReviewUoW manages transactions spanning orders and reviews.
	// The order's reviewed flag and the stored review commit together.
	ReviewUoW interface {
		TxManager
		OrderRepoFactory
		ReviewRepoFactory
	}

	// ReviewUoWFactory creates new review unit of work instances.
	ReviewUoWFactory interface {
		Create() ReviewUoW
	}
)
