package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/review"
	"marketplace/internal/pkg/errs"
)

// SubmitReviewCommandHandler handles review submission on completed orders.
// The order's reviewed flag and the stored review commit in one transaction,
// enforcing one review per side.
type SubmitReviewCommandHandler struct {
	uowFactory ReviewUoWFactory
}

// NewSubmitReviewCommandHandler creates a handler for review submission operations.
func NewSubmitReviewCommandHandler(uowFactory ReviewUoWFactory) SubmitReviewCommandHandler {
	return SubmitReviewCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the review submission command.
// The reviewer must be a party to the order, the order must be Completed,
// and each side may review only once; all three rules are enforced by the
// Order aggregate.
func (h *SubmitReviewCommandHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) error {
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

	if err = aggregate.MarkReviewed(cmd.ReviewerID()); err != nil {
		return err
	}

	targetID, err := reviewTarget(aggregate, cmd.ReviewerID())
	if err != nil {
		return err
	}

	accepted, err := review.NewReview(
		cmd.ReviewID(),
		cmd.OrderID(),
		cmd.ReviewerID(),
		targetID,
		cmd.Rating(),
		cmd.Comment(),
	)
	if err != nil {
		return err
	}

	if err = uow.ReviewRepository().Add(ctx, accepted); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// reviewTarget returns the counterparty the reviewer is rating.
func reviewTarget(aggregate *order.Order, reviewerID kernel.UUID) (kernel.UUID, error) {
	courierID := aggregate.Courier()
	if courierID == nil {
		return kernel.UUID{}, errs.NewValueIsRequiredError("order courier")
	}

	if aggregate.StoreID().IsEqual(reviewerID) {
		return *courierID, nil
	}

	return aggregate.StoreID(), nil
}
