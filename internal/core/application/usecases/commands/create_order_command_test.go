package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	storeID := kernel.NewUUID()
	price := money(t, 50)
	fee := money(t, 10)

	t.Run("creates command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			orderID, storeID, "ceramic vase", price, fee, "12 Baker Street", "+1 555 0100",
		)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, storeID, cmd.StoreID())
		assert.Equal(t, "ceramic vase", cmd.Description())
		assert.Equal(t, int64(50), cmd.Price().Amount())
		assert.Equal(t, int64(10), cmd.SuggestedFee().Amount())
	})

	t.Run("empty description is rejected", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			orderID, storeID, "", price, fee, "12 Baker Street", "+1 555 0100",
		)
		require.ErrorIs(t, err, commands.ErrDescriptionIsRequired)
	})

	t.Run("zero price is rejected", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			orderID, storeID, "ceramic vase", money(t, 0), fee, "12 Baker Street", "+1 555 0100",
		)
		require.ErrorIs(t, err, commands.ErrPriceIsInvalid)
	})

	t.Run("zero suggested fee is rejected", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			orderID, storeID, "ceramic vase", price, money(t, 0), "12 Baker Street", "+1 555 0100",
		)
		require.ErrorIs(t, err, commands.ErrSuggestedFeeIsInvalid)
	})

	t.Run("empty address is rejected", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			orderID, storeID, "ceramic vase", price, fee, "", "+1 555 0100",
		)
		require.ErrorIs(t, err, commands.ErrAddressIsRequired)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
