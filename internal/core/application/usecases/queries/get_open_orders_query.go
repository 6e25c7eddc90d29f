// Package queries contains read-side operations of the CQRS architecture.
// Query handlers bypass the domain aggregates and read the database directly,
// returning flat response models shaped for the API.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
		"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
	)
)

// GetOpenOrdersQuery retrieves all orders currently open for bidding.
// This is the courier-facing marketplace listing.
//
// Example:
//
//	query := NewGetOpenOrdersQuery()
//	handler := NewGetOpenOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list open orders: %w", err)
//	}
//	fmt.Printf("%d orders open for bidding\n", len(orders))
type GetOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a query to retrieve orders open for bidding.
// This is a parameterless query that fetches all orders in Bidding status.
func NewGetOpenOrdersQuery() GetOpenOrdersQuery {
	return GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOpenOrdersQueryIsNotConstructed if validation fails.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// GetOpenOrdersQueryResponse represents one order in the marketplace listing.
// Carries what a courier needs to decide on a bid; the client contact is
// deliberately not exposed before a bid is selected.
type GetOpenOrdersQueryResponse struct {
	ID           kernel.UUID
	StoreID      kernel.UUID
	Description  string
	Price        int64
	SuggestedFee int64
	Address      string
	CreatedAt    time.Time
}
