package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// SelectBidCommandHandler handles the store's selection of a winning bid.
// Closes bidding, pins the selected bid's amount as the effective delivery
// fee, and assigns the bidding courier, all in one transaction.
type SelectBidCommandHandler struct {
	uowFactory BidUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewSelectBidCommandHandler creates a handler for bid selection operations.
func NewSelectBidCommandHandler(
	uowFactory BidUoWFactory,
	publisher ports.OrderEventPublisher,
) SelectBidCommandHandler {
	return SelectBidCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the bid selection command.
//
// Only the order's owning store may select; the bid must belong to the order;
// the order must still be in Bidding. Concurrent bid submissions that lose
// the race against the selection fail on the order's status re-check inside
// their own transaction.
func (h *SelectBidCommandHandler) Handle(ctx context.Context, cmd SelectBidCommand) error {
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

	if !aggregate.StoreID().IsEqual(cmd.ActorID()) {
		return errs.NewUnauthenticatedError(cmd.ActorID().String(), "select a bid on this order")
	}

	winning, err := uow.BidRepository().Get(ctx, cmd.BidID())
	if err != nil {
		return err
	}

	if !winning.OrderID().IsEqual(aggregate.ID()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"bidID",
			fmt.Errorf("bid %s belongs to order %s, not %s", winning.ID(), winning.OrderID(), aggregate.ID()),
		)
	}

	if err = aggregate.SelectBid(winning.ID(), winning.CourierID()); err != nil {
		return err
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
