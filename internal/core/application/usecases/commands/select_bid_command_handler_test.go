package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSelectBidCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	o := biddingOrder(t, storeID)
	winning := courierBid(t, o.ID(), courierID, 7)

	cmd, err := commands.NewSelectBidCommand(o.ID(), winning.ID(), storeID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockBidUoW)
	publisher := new(MockOrderEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("Get", mock.Anything, winning.ID()).Return(winning, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("PublishOrderChanged", ctx, o).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBidUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSelectBidCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.AwaitingEscrow, o.Status())
	require.NotNil(t, o.SelectedBid())
	assert.True(t, o.SelectedBid().IsEqual(winning.ID()))
	require.NotNil(t, o.Courier())
	assert.True(t, o.Courier().IsEqual(courierID))
	orderRepo.AssertExpectations(t)
	bidRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSelectBidCommandHandler_Handle_NotTheOwner(t *testing.T) {
	ctx := t.Context()
	o := biddingOrder(t, kernel.NewUUID())
	winning := courierBid(t, o.ID(), kernel.NewUUID(), 7)

	cmd, err := commands.NewSelectBidCommand(o.ID(), winning.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockBidUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBidUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSelectBidCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
	assert.Equal(t, order.Bidding, o.Status())
}

func TestSelectBidCommandHandler_Handle_BidFromAnotherOrder(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	o := biddingOrder(t, storeID)
	stray := courierBid(t, kernel.NewUUID(), kernel.NewUUID(), 7)

	cmd, err := commands.NewSelectBidCommand(o.ID(), stray.ID(), storeID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockBidUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("Get", mock.Anything, stray.ID()).Return(stray, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBidUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSelectBidCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, order.Bidding, o.Status())
}
