// Package reviewrepo provides data transfer objects and mapping functions for review persistence.
package reviewrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/review"

	"github.com/google/uuid"
)

// ReviewDTO represents the database structure for persisting review aggregates.
type ReviewDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null"`
	TargetID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating     int       `gorm:"type:int;not null"`
	Comment    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the database table name for review entities.
// Overrides GORM's default naming convention to use "reviews".
func (ReviewDTO) TableName() string {
	return "reviews"
}

// fromDomain converts a review domain aggregate to its database representation.
func fromDomain(aggregate *review.Review) ReviewDTO {
	return ReviewDTO{
		ID:         aggregate.ID().Bytes(),
		OrderID:    aggregate.OrderID().Bytes(),
		ReviewerID: aggregate.ReviewerID().Bytes(),
		TargetID:   aggregate.TargetID().Bytes(),
		Rating:     aggregate.Rating(),
		Comment:    aggregate.Comment(),
		CreatedAt:  aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a review domain aggregate using RestoreReview.
func toDomain(dto ReviewDTO) (*review.Review, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	reviewerID, err := kernel.UUIDFromBytes(dto.ReviewerID[:])
	if err != nil {
		return nil, err
	}

	targetID, err := kernel.UUIDFromBytes(dto.TargetID[:])
	if err != nil {
		return nil, err
	}

	return review.RestoreReview(id, orderID, reviewerID, targetID, dto.Rating, dto.Comment, dto.CreatedAt)
}
