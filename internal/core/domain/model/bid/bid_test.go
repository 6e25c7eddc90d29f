package bid_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBid(t *testing.T) {
	t.Run("creates bid with timestamp", func(t *testing.T) {
		amount, _ := kernel.NewMoney(8)

		b, err := bid.NewBid(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Courier A", amount)

		require.NoError(t, err)
		require.NoError(t, b.Validate())
		assert.Equal(t, "Courier A", b.CourierName())
		assert.Equal(t, int64(8), b.Amount().Amount())
		assert.WithinDuration(t, time.Now().UTC(), b.UpdatedAt(), time.Minute)
	})

	t.Run("rejects invalid parameters", func(t *testing.T) {
		amount, _ := kernel.NewMoney(8)
		zero, _ := kernel.NewMoney(0)

		_, err := bid.NewBid(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), "A", amount)
		require.Error(t, err)

		_, err = bid.NewBid(kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(), "A", amount)
		require.Error(t, err)

		_, err = bid.NewBid(kernel.NewUUID(), kernel.NewUUID(), kernel.UUID{}, "A", amount)
		require.Error(t, err)

		_, err = bid.NewBid(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", amount)
		require.Error(t, err)

		_, err = bid.NewBid(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "A", zero)
		require.Error(t, err)
	})

	t.Run("zero value bid fails validation", func(t *testing.T) {
		var b bid.Bid
		require.ErrorIs(t, b.Validate(), bid.ErrBidIsNotConstructed)
	})
}

func TestRestoreBid(t *testing.T) {
	amount, _ := kernel.NewMoney(8)
	updatedAt := time.Now().UTC().Add(-time.Hour)

	b, err := bid.RestoreBid(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Courier A", amount, updatedAt)

	require.NoError(t, err)
	assert.Equal(t, updatedAt, b.UpdatedAt())
}

func TestBid_UpdateAmount(t *testing.T) {
	t.Run("overwrites amount and refreshes timestamp", func(t *testing.T) {
		amount, _ := kernel.NewMoney(8)
		updated, _ := kernel.NewMoney(7)
		b, err := bid.RestoreBid(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Courier A", amount,
			time.Now().UTC().Add(-time.Hour),
		)
		require.NoError(t, err)
		before := b.UpdatedAt()

		require.NoError(t, b.UpdateAmount(updated))

		assert.Equal(t, int64(7), b.Amount().Amount())
		assert.True(t, b.UpdatedAt().After(before))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		amount, _ := kernel.NewMoney(8)
		zero, _ := kernel.NewMoney(0)
		b, err := bid.NewBid(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Courier A", amount)
		require.NoError(t, err)

		require.Error(t, b.UpdateAmount(zero))
		assert.Equal(t, int64(8), b.Amount().Amount())
	})
}
