package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrSubmitBidCommandIsNotConstructed = errors.New(
		"SubmitBidCommand must be created via NewSubmitBidCommand constructor",
	)
	ErrCourierNameIsRequired = errors.New("courierName is required")
	ErrBidAmountIsInvalid    = errors.New("amount must be greater than 0")
)

// SubmitBidCommand represents a courier's offer to deliver an order for a
// given fee. A courier holds at most one bid per order; submitting again
// replaces the previous amount.
type SubmitBidCommand struct { //nolint:recvcheck //using for validation
	bidID       kernel.UUID
	orderID     kernel.UUID
	courierID   kernel.UUID
	courierName string
	amount      kernel.Money

	guard guard.ConstructorGuard
}

// NewSubmitBidCommand creates a command to place or replace a courier's bid.
// The bidID is used only when the submission creates a fresh bid; a repeat
// submission keeps the existing bid's identity.
func NewSubmitBidCommand(
	bidID kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	courierName string,
	amount kernel.Money,
) (SubmitBidCommand, error) {
	bidCommand := SubmitBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		bidCommand.setBidID(bidID),
		bidCommand.setOrderID(orderID),
		bidCommand.setCourierID(courierID),
		bidCommand.setCourierName(courierName),
		bidCommand.setAmount(amount),
	); err != nil {
		return SubmitBidCommand{}, err
	}

	return bidCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitBidCommandIsNotConstructed if validation fails.
func (c SubmitBidCommand) Validate() error {
	return c.guard.Validate(ErrSubmitBidCommandIsNotConstructed)
}

// BidID returns the identifier to assign when a fresh bid is created.
func (c SubmitBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// OrderID returns the order being bid on.
func (c SubmitBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the bidding courier's identifier.
func (c SubmitBidCommand) CourierID() kernel.UUID {
	return c.courierID
}

// CourierName returns the courier's display name.
func (c SubmitBidCommand) CourierName() string {
	return c.courierName
}

// Amount returns the offered delivery fee.
func (c SubmitBidCommand) Amount() kernel.Money {
	return c.amount
}

func (c *SubmitBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *SubmitBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitBidCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *SubmitBidCommand) setCourierName(courierName string) error {
	if courierName == "" {
		return ErrCourierNameIsRequired
	}

	c.courierName = courierName
	return nil
}

func (c *SubmitBidCommand) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return ErrBidAmountIsInvalid
	}

	c.amount = amount
	return nil
}
