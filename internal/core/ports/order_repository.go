// Package ports defines repository and outbound interfaces for the marketplace
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their lifecycle status.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its current status and escrow state.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInAwaitingEscrowStatus retrieves all orders waiting for escrow
	// deposits. The reconciliation sweep scans these for orders whose both
	// deposits are in but whose status was never advanced.
	GetAllInAwaitingEscrowStatus(ctx context.Context) ([]*order.Order, error)
}
