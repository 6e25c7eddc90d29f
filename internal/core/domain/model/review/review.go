// Package review implements the Review aggregate: a one-per-side rating left
// on a completed order. Uniqueness per (order, reviewer) is enforced by the
// order's reviewed flags; this package only validates the review itself.
package review

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

const (
	// MinRating and MaxRating bound the allowed rating scale.
	MinRating = 1
	MaxRating = 5
)

var (
	// ErrReviewIsNotConstructed is returned when a Review instance was not created
	// through the NewReview factory method.
	ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview constructor")
)

// Review is a rating with an optional comment, left by one order party about
// the other after completion.
type Review struct {
	id         kernel.UUID
	orderID    kernel.UUID
	reviewerID kernel.UUID
	targetID   kernel.UUID
	rating     int
	comment    string
	createdAt  time.Time

	isConstructed bool
}

// NewReview creates a new Review with validation.
// The rating must fall within [MinRating, MaxRating]; the comment may be empty.
func NewReview(
	id kernel.UUID,
	orderID kernel.UUID,
	reviewerID kernel.UUID,
	targetID kernel.UUID,
	rating int,
	comment string,
) (*Review, error) {
	review := &Review{
		comment:       comment,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		review.setID(id),
		review.setOrderID(orderID),
		review.setParties(reviewerID, targetID),
		review.setRating(rating),
	); err != nil {
		return nil, err
	}

	return review, nil
}

// RestoreReview reconstructs a Review from persistence, keeping its stored timestamp.
func RestoreReview(
	id kernel.UUID,
	orderID kernel.UUID,
	reviewerID kernel.UUID,
	targetID kernel.UUID,
	rating int,
	comment string,
	createdAt time.Time,
) (*Review, error) {
	review, err := NewReview(id, orderID, reviewerID, targetID, rating, comment)
	if err != nil {
		return nil, err
	}

	review.createdAt = createdAt
	return review, nil
}

// Validate ensures the Review instance was properly constructed.
func (r *Review) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReviewIsNotConstructed
	}

	return nil
}

// ID returns the review's unique identifier.
func (r *Review) ID() kernel.UUID {
	return r.id
}

// OrderID returns the reviewed order.
func (r *Review) OrderID() kernel.UUID {
	return r.orderID
}

// ReviewerID returns the party who wrote the review.
func (r *Review) ReviewerID() kernel.UUID {
	return r.reviewerID
}

// TargetID returns the party being reviewed.
func (r *Review) TargetID() kernel.UUID {
	return r.targetID
}

// Rating returns the rating within [MinRating, MaxRating].
func (r *Review) Rating() int {
	return r.rating
}

// Comment returns the free-text comment, possibly empty.
func (r *Review) Comment() string {
	return r.comment
}

// CreatedAt returns the submission timestamp.
func (r *Review) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Review) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Review) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *Review) setParties(reviewerID, targetID kernel.UUID) error {
	if err := errors.Join(reviewerID.Validate(), targetID.Validate()); err != nil {
		return err
	}
	if reviewerID.IsEqual(targetID) {
		return errs.NewValueIsInvalidError("reviewer and target must differ")
	}
	r.reviewerID = reviewerID
	r.targetID = targetID
	return nil
}

func (r *Review) setRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	r.rating = rating
	return nil
}
