package ports

import (
	"context"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
)

// BidRepository defines the persistence contract for bid aggregates.
// A courier holds at most one bid per order; a repeat submission is an
// update of that bid, which the handler expresses as Update on the
// existing aggregate.
type BidRepository interface {
	// Add persists a new bid aggregate to storage.
	Add(ctx context.Context, aggregate *bid.Bid) error

	// Update persists changes to an existing bid aggregate.
	Update(ctx context.Context, aggregate *bid.Bid) error

	// Get retrieves a bid aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error)

	// GetByOrderAndCourier retrieves the courier's bid on the given order,
	// if any. Used to decide between inserting a fresh bid and updating the
	// courier's existing one.
	GetByOrderAndCourier(ctx context.Context, orderID kernel.UUID, courierID kernel.UUID) (*bid.Bid, error)

	// GetAllByOrder retrieves every bid placed on the given order.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error)
}
