package ports

import (
	"context"

	"marketplace/internal/core/domain/model/review"
)

// ReviewRepository defines the persistence contract for review aggregates.
// The one-review-per-side rule lives on the Order aggregate; this repository
// only stores what was accepted.
type ReviewRepository interface {
	// Add persists a new review aggregate to storage.
	Add(ctx context.Context, aggregate *review.Review) error
}
