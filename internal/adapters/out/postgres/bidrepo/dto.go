// Package bidrepo provides data transfer objects and mapping functions for bid persistence.
// This package implements the repository pattern for the bid domain aggregate, handling
// the conversion between domain entities and database representations.
package bidrepo

import (
	"time"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BidDTO represents the database structure for persisting bid aggregates.
// The unique index on (order_id, courier_id) backs the one-bid-per-courier
// rule at the storage level.
type BidDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bids_order_courier"`
	CourierID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bids_order_courier"`
	CourierName string    `gorm:"type:varchar(255);not null"`
	Amount      int64     `gorm:"type:bigint;not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the database table name for bid entities.
// Overrides GORM's default naming convention to use "bids".
func (BidDTO) TableName() string {
	return "bids"
}

// fromDomain converts a bid domain aggregate to its database representation.
func fromDomain(aggregate *bid.Bid) BidDTO {
	return BidDTO{
		ID:          aggregate.ID().Bytes(),
		OrderID:     aggregate.OrderID().Bytes(),
		CourierID:   aggregate.CourierID().Bytes(),
		CourierName: aggregate.CourierName(),
		Amount:      aggregate.Amount().Amount(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a bid domain aggregate using RestoreBid.
func toDomain(dto BidDTO) (*bid.Bid, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return bid.RestoreBid(id, orderID, courierID, dto.CourierName, amount, dto.UpdatedAt)
}
