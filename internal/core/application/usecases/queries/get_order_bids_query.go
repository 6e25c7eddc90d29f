package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetOrderBidsQueryIsNotConstructed = errors.New(
		"GetOrderBidsQuery must be created via NewGetOrderBidsQuery constructor",
	)
)

// GetOrderBidsQuery retrieves all bids placed on one order.
// This is the store-facing view used to pick a winner.
type GetOrderBidsQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderBidsQuery creates a query to retrieve the bids on the given order.
func NewGetOrderBidsQuery(orderID kernel.UUID) (GetOrderBidsQuery, error) {
	bidsQuery := GetOrderBidsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := bidsQuery.setOrderID(orderID); err != nil {
		return GetOrderBidsQuery{}, err
	}

	return bidsQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderBidsQueryIsNotConstructed if validation fails.
func (q GetOrderBidsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderBidsQueryIsNotConstructed)
}

// OrderID returns the order whose bids are listed.
func (q GetOrderBidsQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderBidsQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetOrderBidsQueryResponse represents one bid in the store's comparison view.
type GetOrderBidsQueryResponse struct {
	ID          kernel.UUID
	CourierID   kernel.UUID
	CourierName string
	Amount      int64
	UpdatedAt   time.Time
}
