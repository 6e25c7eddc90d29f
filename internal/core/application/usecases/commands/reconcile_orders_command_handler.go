package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ReconcileOrdersCommandHandler runs the escrow reconciliation sweep.
//
// The sweep only repairs the order's status field: wallets were already
// debited when the deposits were recorded, so no ledger mutation happens
// here and settlement is never triggered by a repair.
type ReconcileOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewReconcileOrdersCommandHandler creates a handler for reconciliation sweeps.
func NewReconcileOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ReconcileOrdersCommandHandler {
	return ReconcileOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "reconcile-orders"),
	}
}

// Handle processes the reconciliation command.
// Scans orders in AwaitingEscrow and advances the fully funded ones to
// ReadyForPickup. Untouched orders are left as they are; the sweep is safe
// to run at any frequency.
func (h *ReconcileOrdersCommandHandler) Handle(ctx context.Context, cmd ReconcileOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	waiting, err := orderRepo.GetAllInAwaitingEscrowStatus(ctx)
	if err != nil {
		return err
	}

	repaired := make([]*order.Order, 0)
	for _, aggregate := range waiting {
		if !aggregate.ReconcileEscrow() {
			continue
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		h.logger.Info("repaired stuck escrow status", "orderId", aggregate.ID().String())
		repaired = append(repaired, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.publisher != nil {
		for _, aggregate := range repaired {
			_ = h.publisher.PublishOrderChanged(ctx, aggregate)
		}
	}

	return nil
}
