package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler handles status advancement through the
// fulfillment phase and triggers settlement on completion.
//
// Settlement runs exactly once: the aggregate reports whether the status
// actually changed, and the payout is applied only on the transition into
// Completed. Re-sending Completed is an idempotent no-op. The status change
// and both wallet adjustments commit in one transaction.
type UpdateOrderStatusCommandHandler struct {
	uowFactory EscrowUoWFactory
	engine     services.SettlementEngine
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status update operations.
func NewUpdateOrderStatusCommandHandler(
	uowFactory EscrowUoWFactory,
	engine services.SettlementEngine,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		publisher:  publisher,
		logger:     logger.With("component", "update-order-status"),
	}
}

// Handle processes the status update command.
// Only the owning store or the assigned courier may advance the order.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !h.isParty(aggregate, cmd) {
		return errs.NewUnauthenticatedError(cmd.ActorID().String(), "update this order's status")
	}

	changed, err := aggregate.AdvanceStatus(cmd.Target())
	if err != nil {
		return err
	}

	if !changed {
		return uow.Commit(ctx)
	}

	if cmd.Target() == order.Completed {
		if err = h.settle(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.publisher != nil {
		_ = h.publisher.PublishOrderChanged(ctx, aggregate)
	}

	return nil
}

func (h *UpdateOrderStatusCommandHandler) isParty(aggregate *order.Order, cmd UpdateOrderStatusCommand) bool {
	if aggregate.StoreID().IsEqual(cmd.ActorID()) {
		return true
	}

	courierID := aggregate.Courier()
	return courierID != nil && courierID.IsEqual(cmd.ActorID())
}

// settle applies the completion payout to both wallets inside the current
// transaction. A missing wallet is logged and left for reconciliation; it
// never aborts the other half.
func (h *UpdateOrderStatusCommandHandler) settle(
	ctx context.Context,
	uow EscrowUoW,
	aggregate *order.Order,
) error {
	var selectedBid *bid.Bid
	if bidID := aggregate.SelectedBid(); bidID != nil {
		loaded, err := uow.BidRepository().Get(ctx, *bidID)
		if err != nil {
			return err
		}
		selectedBid = loaded
	}

	walletRepo := uow.WalletRepository()
	storeWallet, err := walletRepo.GetOrCreate(ctx, aggregate.StoreID())
	if err != nil {
		return err
	}

	courierWallet, err := walletRepo.GetOrCreate(ctx, *aggregate.Courier())
	if err != nil {
		return err
	}

	result, err := h.engine.Settle(aggregate, selectedBid, storeWallet, courierWallet)
	if err != nil {
		return err
	}

	if !result.StoreSettled || !result.CourierSettled {
		h.logger.Warn("settlement applied partially",
			"orderId", aggregate.ID().String(),
			"storeSettled", result.StoreSettled,
			"courierSettled", result.CourierSettled,
		)
	}

	if err = walletRepo.Update(ctx, storeWallet); err != nil {
		return err
	}

	if err = walletRepo.Update(ctx, courierWallet); err != nil {
		return err
	}

	return nil
}
