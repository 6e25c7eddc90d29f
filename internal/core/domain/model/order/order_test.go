package order_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	price, err := kernel.NewMoney(50)
	require.NoError(t, err)
	fee, err := kernel.NewMoney(10)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"ceramic vase",
		price,
		fee,
		"12 Baker Street",
		"+1 555 0100",
	)
	require.NoError(t, err)
	return o
}

// selectTestBid moves a fresh order into AwaitingEscrow and returns the
// courier it was assigned to.
func selectTestBid(t *testing.T, o *order.Order) kernel.UUID {
	t.Helper()

	courierID := kernel.NewUUID()
	require.NoError(t, o.SelectBid(kernel.NewUUID(), courierID))
	return courierID
}

func TestNewOrder(t *testing.T) {
	t.Run("creates order in bidding status", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.Bidding, o.Status())
		assert.Nil(t, o.SelectedBid())
		assert.Nil(t, o.Courier())
		assert.False(t, o.IsStoreEscrowPaid())
		assert.False(t, o.IsCourierEscrowPaid())
		assert.False(t, o.IsStoreReviewed())
		assert.False(t, o.IsCourierReviewed())
		assert.WithinDuration(t, time.Now().UTC(), o.CreatedAt(), time.Minute)
		require.NoError(t, o.Validate())
	})

	t.Run("rejects invalid parameters", func(t *testing.T) {
		price, _ := kernel.NewMoney(50)
		fee, _ := kernel.NewMoney(10)
		zero, _ := kernel.NewMoney(0)

		cases := []struct {
			name string
			make func() (*order.Order, error)
		}{
			{"empty description", func() (*order.Order, error) {
				return order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "", price, fee, "a", "c")
			}},
			{"zero price", func() (*order.Order, error) {
				return order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "d", zero, fee, "a", "c")
			}},
			{"zero suggested fee", func() (*order.Order, error) {
				return order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "d", price, zero, "a", "c")
			}},
			{"empty address", func() (*order.Order, error) {
				return order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "d", price, fee, "", "c")
			}},
			{"empty contact", func() (*order.Order, error) {
				return order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "d", price, fee, "a", "")
			}},
			{"zero order id", func() (*order.Order, error) {
				return order.NewOrder(kernel.UUID{}, kernel.NewUUID(), "d", price, fee, "a", "c")
			}},
			{"zero store id", func() (*order.Order, error) {
				return order.NewOrder(kernel.NewUUID(), kernel.UUID{}, "d", price, fee, "a", "c")
			}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := tc.make()
				require.Error(t, err)
			})
		}
	})

	t.Run("zero value order fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	price, _ := kernel.NewMoney(50)
	fee, _ := kernel.NewMoney(10)

	t.Run("restores a post-bidding order", func(t *testing.T) {
		bidID := kernel.NewUUID()
		courierID := kernel.NewUUID()
		createdAt := time.Now().UTC().Add(-time.Hour)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), "vase", price, fee, "addr", "contact",
			order.ReadyForPickup, &bidID, &courierID, true, true, false, false, createdAt,
		)

		require.NoError(t, err)
		assert.Equal(t, order.ReadyForPickup, o.Status())
		assert.True(t, o.IsStoreEscrowPaid())
		assert.True(t, o.IsCourierEscrowPaid())
		assert.Equal(t, createdAt, o.CreatedAt())
		require.NotNil(t, o.SelectedBid())
		assert.True(t, o.SelectedBid().IsEqual(bidID))
	})

	t.Run("post-bidding order without courier is rejected", func(t *testing.T) {
		bidID := kernel.NewUUID()

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), "vase", price, fee, "addr", "contact",
			order.AwaitingEscrow, &bidID, nil, false, false, false, false, time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), "vase", price, fee, "addr", "contact",
			order.Unknown, nil, nil, false, false, false, false, time.Now(),
		)

		require.Error(t, err)
	})
}

func TestOrder_SelectBid(t *testing.T) {
	t.Run("sets bid and courier atomically", func(t *testing.T) {
		o := newTestOrder(t)
		bidID := kernel.NewUUID()
		courierID := kernel.NewUUID()

		require.NoError(t, o.SelectBid(bidID, courierID))

		assert.Equal(t, order.AwaitingEscrow, o.Status())
		require.NotNil(t, o.SelectedBid())
		require.NotNil(t, o.Courier())
		assert.True(t, o.SelectedBid().IsEqual(bidID))
		assert.True(t, o.Courier().IsEqual(courierID))
	})

	t.Run("second selection is a state conflict", func(t *testing.T) {
		o := newTestOrder(t)
		selectTestBid(t, o)

		err := o.SelectBid(kernel.NewUUID(), kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("invalid ids are rejected before any transition", func(t *testing.T) {
		o := newTestOrder(t)

		require.Error(t, o.SelectBid(kernel.UUID{}, kernel.NewUUID()))
		assert.Equal(t, order.Bidding, o.Status())
	})
}

func TestOrder_EscrowDeposits(t *testing.T) {
	t.Run("store first then courier", func(t *testing.T) {
		o := newTestOrder(t)
		selectTestBid(t, o)

		require.NoError(t, o.MarkStoreEscrowPaid())
		assert.Equal(t, order.AwaitingEscrow, o.Status())
		assert.True(t, o.IsStoreEscrowPaid())

		require.NoError(t, o.MarkCourierEscrowPaid())
		assert.Equal(t, order.ReadyForPickup, o.Status())
	})

	t.Run("courier first then store", func(t *testing.T) {
		o := newTestOrder(t)
		selectTestBid(t, o)

		require.NoError(t, o.MarkCourierEscrowPaid())
		assert.Equal(t, order.AwaitingEscrow, o.Status())

		require.NoError(t, o.MarkStoreEscrowPaid())
		assert.Equal(t, order.ReadyForPickup, o.Status())
	})

	t.Run("deposit before selection is a state conflict", func(t *testing.T) {
		o := newTestOrder(t)

		require.ErrorIs(t, o.MarkStoreEscrowPaid(), errs.ErrStateConflict)
		require.ErrorIs(t, o.MarkCourierEscrowPaid(), errs.ErrStateConflict)
	})

	t.Run("double deposit from the same party is rejected", func(t *testing.T) {
		o := newTestOrder(t)
		selectTestBid(t, o)

		require.NoError(t, o.MarkStoreEscrowPaid())
		require.ErrorIs(t, o.MarkStoreEscrowPaid(), errs.ErrStateConflict)
	})
}

func TestOrder_ReconcileEscrow(t *testing.T) {
	price, _ := kernel.NewMoney(50)
	fee, _ := kernel.NewMoney(10)
	bidID := kernel.NewUUID()
	courierID := kernel.NewUUID()

	t.Run("repairs stuck order", func(t *testing.T) {
		// Simulate the stale write: both flags set, status lagging behind.
		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), "vase", price, fee, "addr", "contact",
			order.AwaitingEscrow, &bidID, &courierID, true, true, false, false, time.Now(),
		)
		require.NoError(t, err)

		assert.True(t, o.ReconcileEscrow())
		assert.Equal(t, order.ReadyForPickup, o.Status())

		// Idempotent: a second sweep leaves the order untouched.
		assert.False(t, o.ReconcileEscrow())
		assert.Equal(t, order.ReadyForPickup, o.Status())
	})

	t.Run("leaves half-paid order alone", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), "vase", price, fee, "addr", "contact",
			order.AwaitingEscrow, &bidID, &courierID, true, false, false, false, time.Now(),
		)
		require.NoError(t, err)

		assert.False(t, o.ReconcileEscrow())
		assert.Equal(t, order.AwaitingEscrow, o.Status())
	})
}

func TestOrder_AdvanceStatus(t *testing.T) {
	readyOrder := func(t *testing.T) *order.Order {
		o := newTestOrder(t)
		selectTestBid(t, o)
		require.NoError(t, o.MarkStoreEscrowPaid())
		require.NoError(t, o.MarkCourierEscrowPaid())
		return o
	}

	t.Run("walks the fulfillment phase", func(t *testing.T) {
		o := readyOrder(t)

		changed, err := o.AdvanceStatus(order.PickedUp)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = o.AdvanceStatus(order.InTransit)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = o.AdvanceStatus(order.Completed)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("same target is an idempotent no-op", func(t *testing.T) {
		o := readyOrder(t)

		changed, err := o.AdvanceStatus(order.Completed)
		require.NoError(t, err)
		assert.True(t, changed)

		// Forcing Completed again reports no change, so the caller must not
		// re-run settlement.
		changed, err = o.AdvanceStatus(order.Completed)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("backward move is rejected", func(t *testing.T) {
		o := readyOrder(t)

		_, err := o.AdvanceStatus(order.InTransit)
		require.NoError(t, err)

		_, err = o.AdvanceStatus(order.PickedUp)
		require.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestOrder_MarkReviewed(t *testing.T) {
	completedOrder := func(t *testing.T) (*order.Order, kernel.UUID, kernel.UUID) {
		o := newTestOrder(t)
		storeID := o.StoreID()
		courierID := selectTestBid(t, o)
		require.NoError(t, o.MarkStoreEscrowPaid())
		require.NoError(t, o.MarkCourierEscrowPaid())
		_, err := o.AdvanceStatus(order.Completed)
		require.NoError(t, err)
		return o, storeID, courierID
	}

	t.Run("both sides may review once", func(t *testing.T) {
		o, storeID, courierID := completedOrder(t)

		require.NoError(t, o.MarkReviewed(storeID))
		assert.True(t, o.IsStoreReviewed())

		require.NoError(t, o.MarkReviewed(courierID))
		assert.True(t, o.IsCourierReviewed())
	})

	t.Run("second review from the same side is rejected", func(t *testing.T) {
		o, storeID, _ := completedOrder(t)

		require.NoError(t, o.MarkReviewed(storeID))
		require.ErrorIs(t, o.MarkReviewed(storeID), errs.ErrStateConflict)
	})

	t.Run("strangers may not review", func(t *testing.T) {
		o, _, _ := completedOrder(t)

		require.ErrorIs(t, o.MarkReviewed(kernel.NewUUID()), errs.ErrObjectNotFound)
	})

	t.Run("review before completion is rejected", func(t *testing.T) {
		o := newTestOrder(t)

		require.ErrorIs(t, o.MarkReviewed(o.StoreID()), errs.ErrStateConflict)
	})
}
