package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/review"
	"marketplace/internal/pkg/guard"
)

var (
	ErrSubmitReviewCommandIsNotConstructed = errors.New(
		"SubmitReviewCommand must be created via NewSubmitReviewCommand constructor",
	)
	ErrRatingIsOutOfRange = errors.New("rating must be between 1 and 5")
)

// SubmitReviewCommand represents one party's rating of the other after an
// order completes. The review target is derived by the handler: the store
// reviews the courier and vice versa.
type SubmitReviewCommand struct { //nolint:recvcheck //using for validation
	reviewID   kernel.UUID
	orderID    kernel.UUID
	reviewerID kernel.UUID
	rating     int
	comment    string

	guard guard.ConstructorGuard
}

// NewSubmitReviewCommand creates a command to submit a review on a completed
// order. The rating must fall within the review scale; the comment may be empty.
func NewSubmitReviewCommand(
	reviewID kernel.UUID,
	orderID kernel.UUID,
	reviewerID kernel.UUID,
	rating int,
	comment string,
) (SubmitReviewCommand, error) {
	reviewCommand := SubmitReviewCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		reviewCommand.setReviewID(reviewID),
		reviewCommand.setOrderID(orderID),
		reviewCommand.setReviewerID(reviewerID),
		reviewCommand.setRating(rating),
	); err != nil {
		return SubmitReviewCommand{}, err
	}

	return reviewCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitReviewCommandIsNotConstructed if validation fails.
func (c SubmitReviewCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReviewCommandIsNotConstructed)
}

// ReviewID returns the identifier for the new review.
func (c SubmitReviewCommand) ReviewID() kernel.UUID {
	return c.reviewID
}

// OrderID returns the reviewed order.
func (c SubmitReviewCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ReviewerID returns the party submitting the review.
func (c SubmitReviewCommand) ReviewerID() kernel.UUID {
	return c.reviewerID
}

// Rating returns the rating value.
func (c SubmitReviewCommand) Rating() int {
	return c.rating
}

// Comment returns the free-text comment, possibly empty.
func (c SubmitReviewCommand) Comment() string {
	return c.comment
}

func (c *SubmitReviewCommand) setReviewID(reviewID kernel.UUID) error {
	if err := reviewID.Validate(); err != nil {
		return err
	}

	c.reviewID = reviewID
	return nil
}

func (c *SubmitReviewCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitReviewCommand) setReviewerID(reviewerID kernel.UUID) error {
	if err := reviewerID.Validate(); err != nil {
		return err
	}

	c.reviewerID = reviewerID
	return nil
}

func (c *SubmitReviewCommand) setRating(rating int) error {
	if rating < review.MinRating || rating > review.MaxRating {
		return ErrRatingIsOutOfRange
	}

	c.rating = rating
	return nil
}
