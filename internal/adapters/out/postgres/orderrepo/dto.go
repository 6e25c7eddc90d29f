// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and party.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StoreID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	Description       string     `gorm:"type:text;not null"`
	Price             int64      `gorm:"type:bigint;not null"`
	SuggestedFee      int64      `gorm:"type:bigint;not null"`
	Address           string     `gorm:"type:text;not null"`
	ClientContact     string     `gorm:"type:text;not null"`
	Status            int        `gorm:"type:int;not null;index"`
	SelectedBidID     *uuid.UUID `gorm:"type:uuid"`
	CourierID         *uuid.UUID `gorm:"type:uuid;index"`
	StoreEscrowPaid   bool       `gorm:"not null"`
	CourierEscrowPaid bool       `gorm:"not null"`
	StoreReviewed     bool       `gorm:"not null"`
	CourierReviewed   bool       `gorm:"not null"`
	CreatedAt         time.Time  `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the optional bid selection.
func fromDomain(aggregate *order.Order) OrderDTO {
	var selectedBidID *uuid.UUID
	if id := aggregate.SelectedBid(); id != nil {
		raw := id.Bytes()
		selectedBidID = &raw
	}

	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		StoreID:           aggregate.StoreID().Bytes(),
		Description:       aggregate.Description(),
		Price:             aggregate.Price().Amount(),
		SuggestedFee:      aggregate.SuggestedFee().Amount(),
		Address:           aggregate.Address(),
		ClientContact:     aggregate.ClientContact(),
		Status:            int(aggregate.Status()),
		SelectedBidID:     selectedBidID,
		CourierID:         courierID,
		StoreEscrowPaid:   aggregate.IsStoreEscrowPaid(),
		CourierEscrowPaid: aggregate.IsCourierEscrowPaid(),
		StoreReviewed:     aggregate.IsStoreReviewed(),
		CourierReviewed:   aggregate.IsCourierReviewed(),
		CreatedAt:         aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including escrow and review flags using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	var selectedBidID *kernel.UUID
	if dto.SelectedBidID != nil {
		bID, bidErr := kernel.UUIDFromBytes((*dto.SelectedBidID)[:])
		if bidErr != nil {
			return nil, bidErr
		}

		selectedBidID = &bID
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	suggestedFee, err := kernel.NewMoney(dto.SuggestedFee)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		storeID,
		dto.Description,
		price,
		suggestedFee,
		dto.Address,
		dto.ClientContact,
		order.Status(dto.Status),
		selectedBidID,
		courierID,
		dto.StoreEscrowPaid,
		dto.CourierEscrowPaid,
		dto.StoreReviewed,
		dto.CourierReviewed,
		dto.CreatedAt,
	)
}
