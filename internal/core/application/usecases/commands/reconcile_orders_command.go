package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

// ReconcileOrdersCommand triggers a sweep over orders awaiting escrow,
// repairing any whose both deposits are recorded but whose status never
// advanced. This heals the race where two concurrent deposits each saw a
// stale "other side not paid" fact.
//
// Example:
//
//	cmd := NewReconcileOrdersCommand()
//	handler := NewReconcileOrdersCommandHandler(uowFactory, publisher)
//
//	// Run periodically from a background job
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Reconciliation sweep failed: %v", err)
//	}
type ReconcileOrdersCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrReconcileOrdersCommandIsNotConstructed = errors.New(
		"ReconcileOrdersCommand must be created via NewReconcileOrdersCommand constructor",
	)
)

// NewReconcileOrdersCommand creates a command to run the reconciliation sweep.
// This is a parameterless command that scans all orders awaiting escrow.
func NewReconcileOrdersCommand() ReconcileOrdersCommand {
	command := ReconcileOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrReconcileOrdersCommandIsNotConstructed if validation fails.
func (c *ReconcileOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileOrdersCommandIsNotConstructed)
}
