package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrSelectBidCommandIsNotConstructed = errors.New(
		"SelectBidCommand must be created via NewSelectBidCommand constructor",
	)
)

// SelectBidCommand represents the store's choice of a winning bid, which
// closes bidding and assigns the bidding courier to the order.
type SelectBidCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	bidID   kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSelectBidCommand creates a command to select a winning bid.
// The actor must be the store that owns the order; the handler enforces this.
func NewSelectBidCommand(orderID, bidID, actorID kernel.UUID) (SelectBidCommand, error) {
	selectCommand := SelectBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		selectCommand.setOrderID(orderID),
		selectCommand.setBidID(bidID),
		selectCommand.setActorID(actorID),
	); err != nil {
		return SelectBidCommand{}, err
	}

	return selectCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSelectBidCommandIsNotConstructed if validation fails.
func (c SelectBidCommand) Validate() error {
	return c.guard.Validate(ErrSelectBidCommandIsNotConstructed)
}

// OrderID returns the order whose bidding is being closed.
func (c SelectBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BidID returns the winning bid.
func (c SelectBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// ActorID returns the user performing the selection.
func (c SelectBidCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *SelectBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SelectBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *SelectBidCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
