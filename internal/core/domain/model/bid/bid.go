// Package bid implements the Bid aggregate: a courier's offer to deliver an
// order for a proposed fee. At most one bid exists per (order, courier) pair;
// a repeat submission updates the existing bid instead of creating a new one.
package bid

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrBidIsNotConstructed is returned when a Bid instance was not created through
	// the NewBid factory method.
	ErrBidIsNotConstructed = errors.New("Bid must be created via NewBid constructor")
)

// Bid represents a courier's offer on an order.
//
// Invariants:
//   - Order and courier references must be valid
//   - The proposed fee must be positive; no upper or lower bound beyond that
//     is enforced (a deliberate simplification)
//   - Bids are only mutable while the order is in its bidding phase; the
//     registry enforces that rule since the order status lives outside this
//     aggregate
type Bid struct {
	// id is the unique identifier for the bid
	id kernel.UUID

	// orderID references the order the bid was placed on
	orderID kernel.UUID

	// courierID and courierName identify the bidding courier
	courierID   kernel.UUID
	courierName string

	// amount is the proposed delivery fee
	amount kernel.Money

	// updatedAt is the submission or latest update timestamp
	updatedAt time.Time

	// isConstructed ensures the bid was created via NewBid or RestoreBid
	isConstructed bool
}

// NewBid creates a new Bid with validation.
//
// Parameters:
//   - id: Unique identifier for the bid
//   - orderID: The order being bid on
//   - courierID: The bidding courier
//   - courierName: Courier display name (required)
//   - amount: Proposed delivery fee (must be positive)
func NewBid(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	courierName string,
	amount kernel.Money,
) (*Bid, error) {
	bid := &Bid{
		updatedAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		bid.setID(id),
		bid.setOrderID(orderID),
		bid.setCourier(courierID, courierName),
		bid.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return bid, nil
}

// RestoreBid reconstructs a Bid from persistence, keeping its stored timestamp.
func RestoreBid(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	courierName string,
	amount kernel.Money,
	updatedAt time.Time,
) (*Bid, error) {
	bid, err := NewBid(id, orderID, courierID, courierName, amount)
	if err != nil {
		return nil, err
	}

	bid.updatedAt = updatedAt
	return bid, nil
}

// Validate ensures the Bid instance was properly constructed.
func (b *Bid) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBidIsNotConstructed
	}

	return nil
}

// IsEqual compares two bids by their unique identifiers.
func (b *Bid) IsEqual(other *Bid) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the bid's unique identifier.
func (b *Bid) ID() kernel.UUID {
	return b.id
}

// OrderID returns the order the bid was placed on.
func (b *Bid) OrderID() kernel.UUID {
	return b.orderID
}

// CourierID returns the bidding courier's identifier.
func (b *Bid) CourierID() kernel.UUID {
	return b.courierID
}

// CourierName returns the bidding courier's display name.
func (b *Bid) CourierName() string {
	return b.courierName
}

// Amount returns the proposed delivery fee.
func (b *Bid) Amount() kernel.Money {
	return b.amount
}

// UpdatedAt returns the submission or latest update timestamp.
func (b *Bid) UpdatedAt() time.Time {
	return b.updatedAt
}

// UpdateAmount overwrites the proposed fee and refreshes the timestamp.
// This is the update half of the submit-or-update contract: a courier's
// second submission on the same order lands here, never as a second row.
func (b *Bid) UpdateAmount(amount kernel.Money) error {
	if err := b.setAmount(amount); err != nil {
		return err
	}

	b.updatedAt = time.Now().UTC()
	return nil
}

func (b *Bid) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Bid) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	b.orderID = orderID
	return nil
}

func (b *Bid) setCourier(courierID kernel.UUID, courierName string) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if courierName == "" {
		return errs.NewValueIsRequiredError("courierName")
	}
	b.courierID = courierID
	b.courierName = courierName
	return nil
}

func (b *Bid) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount")
	}
	b.amount = amount
	return nil
}
