package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/pkg/errs"
)

// SubmitBidCommandHandler handles bid placement on orders open for bidding.
//
// The order's lifecycle state is read inside the same transaction that writes
// the bid, so a bid can never land on an order that already left Bidding.
// A courier's repeat submission updates its existing bid in place.
type SubmitBidCommandHandler struct {
	uowFactory BidUoWFactory
}

// NewSubmitBidCommandHandler creates a handler for bid submission operations.
func NewSubmitBidCommandHandler(uowFactory BidUoWFactory) SubmitBidCommandHandler {
	return SubmitBidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the bid submission command.
// Returns a StateConflictError when the order is no longer open for bidding.
func (h *SubmitBidCommandHandler) Handle(ctx context.Context, cmd SubmitBidCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !aggregate.Status().IsBiddingOpen() {
		return errs.NewStateConflictError("submit bid", aggregate.Status().String())
	}

	bidRepo := uow.BidRepository()
	existing, err := bidRepo.GetByOrderAndCourier(ctx, cmd.OrderID(), cmd.CourierID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		fresh, bidErr := bid.NewBid(cmd.BidID(), cmd.OrderID(), cmd.CourierID(), cmd.CourierName(), cmd.Amount())
		if bidErr != nil {
			return bidErr
		}
		if err = bidRepo.Add(ctx, fresh); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if err = existing.UpdateAmount(cmd.Amount()); err != nil {
			return err
		}
		if err = bidRepo.Update(ctx, existing); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
