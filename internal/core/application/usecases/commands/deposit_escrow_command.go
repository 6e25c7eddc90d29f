package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrDepositEscrowCommandIsNotConstructed = errors.New(
		"DepositEscrowCommand must be created via NewDepositEscrowCommand constructor",
	)
)

// DepositEscrowCommand represents a party's escrow deposit on an order
// awaiting escrow. Which side is depositing, and therefore the amount, is
// inferred from the actor: the owning store deposits the effective delivery
// fee, the assigned courier deposits the product price as collateral.
type DepositEscrowCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDepositEscrowCommand creates a command to deposit one side's escrow.
func NewDepositEscrowCommand(orderID, actorID kernel.UUID) (DepositEscrowCommand, error) {
	depositCommand := DepositEscrowCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		depositCommand.setOrderID(orderID),
		depositCommand.setActorID(actorID),
	); err != nil {
		return DepositEscrowCommand{}, err
	}

	return depositCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDepositEscrowCommandIsNotConstructed if validation fails.
func (c DepositEscrowCommand) Validate() error {
	return c.guard.Validate(ErrDepositEscrowCommandIsNotConstructed)
}

// OrderID returns the order being funded.
func (c DepositEscrowCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the depositing user.
func (c DepositEscrowCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *DepositEscrowCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DepositEscrowCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
