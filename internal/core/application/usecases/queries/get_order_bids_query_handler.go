package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderBidsQueryHandler retrieves the bids on an order from the database.
type GetOrderBidsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderBidsQueryHandler creates a handler for bid listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrderBidsQueryHandler(db *gorm.DB) GetOrderBidsQueryHandler {
	return GetOrderBidsQueryHandler{db: db}
}

// Handle executes the query to retrieve all bids on one order.
// Results are sorted cheapest first, ties broken by submission time.
func (h GetOrderBidsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderBidsQuery,
) ([]GetOrderBidsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	bids := make([]GetOrderBidsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			courier_id,
			courier_name,
			amount,
			updated_at
		FROM bids
		WHERE order_id = ?
		ORDER BY amount, updated_at
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var bidResp GetOrderBidsQueryResponse
		var id, courierID uuid.UUID

		err = rows.Scan(
			&id,
			&courierID,
			&bidResp.CourierName,
			&bidResp.Amount,
			&bidResp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		bidID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		bidResp.ID = bidID

		bidderID, idErr := kernel.UUIDFromBytes(courierID[:])
		if idErr != nil {
			return nil, idErr
		}
		bidResp.CourierID = bidderID

		bids = append(bids, bidResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bids, nil
}
