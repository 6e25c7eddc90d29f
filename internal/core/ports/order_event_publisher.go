package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// OrderEventPublisher notifies external consumers about order lifecycle
// changes. Publishing happens after the owning transaction commits and is
// best effort: a broker failure is logged, never surfaced to the caller.
type OrderEventPublisher interface {
	// PublishOrderChanged emits an event describing the order's current state.
	PublishOrderChanged(ctx context.Context, aggregate *order.Order) error
}
