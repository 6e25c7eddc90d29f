package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// DepositEscrowCommandHandler handles escrow deposits on orders that have a
// selected bid and are awaiting funding.
//
// The wallet debit and the order's escrow flag are committed in the same
// transaction: either the ledger entry and the flag both land, or neither
// does. An insufficient balance rejects the deposit before anything is
// recorded. When the second deposit arrives the order advances to
// ReadyForPickup inside the same commit.
type DepositEscrowCommandHandler struct {
	uowFactory EscrowUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewDepositEscrowCommandHandler creates a handler for escrow deposit operations.
func NewDepositEscrowCommandHandler(
	uowFactory EscrowUoWFactory,
	publisher ports.OrderEventPublisher,
) DepositEscrowCommandHandler {
	return DepositEscrowCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the escrow deposit command.
//
// The depositing side is inferred from the actor: the owning store funds the
// effective delivery fee, the assigned courier funds the product price. Any
// other actor gets an UnauthenticatedError. A repeat deposit from the same
// side is rejected with a StateConflictError before the wallet is touched.
func (h *DepositEscrowCommandHandler) Handle(ctx context.Context, cmd DepositEscrowCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	amount, markPaid, err := h.resolveParty(ctx, uow, aggregate, cmd.ActorID())
	if err != nil {
		return err
	}

	walletRepo := uow.WalletRepository()
	partyWallet, err := walletRepo.GetOrCreate(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	// The order-side check runs first so a full wallet is never debited for
	// a deposit the order would reject.
	if err = markPaid(); err != nil {
		return err
	}

	description := fmt.Sprintf("escrow deposit for order %s", aggregate.ID())
	if _, err = partyWallet.Debit(amount, description); err != nil {
		return err
	}

	if err = walletRepo.Update(ctx, partyWallet); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.publisher != nil {
		_ = h.publisher.PublishOrderChanged(ctx, aggregate)
	}

	return nil
}

// resolveParty maps the actor to its side of the escrow: the deposit amount
// and the order mutation that records the deposit.
func (h *DepositEscrowCommandHandler) resolveParty(
	ctx context.Context,
	uow EscrowUoW,
	aggregate *order.Order,
	actorID kernel.UUID,
) (kernel.Money, func() error, error) {
	if aggregate.StoreID().IsEqual(actorID) {
		fee, err := h.effectiveFee(ctx, uow, aggregate)
		if err != nil {
			return kernel.Money{}, nil, err
		}
		return fee, aggregate.MarkStoreEscrowPaid, nil
	}

	if courierID := aggregate.Courier(); courierID != nil && courierID.IsEqual(actorID) {
		return aggregate.Price(), aggregate.MarkCourierEscrowPaid, nil
	}

	return kernel.Money{}, nil, errs.NewUnauthenticatedError(actorID.String(), "deposit escrow on this order")
}

// effectiveFee loads the selected bid, if any, and derives the fee the store
// must lock up. The same rule prices the settlement payout later.
func (h *DepositEscrowCommandHandler) effectiveFee(
	ctx context.Context,
	uow EscrowUoW,
	aggregate *order.Order,
) (kernel.Money, error) {
	var selectedBid *bid.Bid
	if bidID := aggregate.SelectedBid(); bidID != nil {
		loaded, err := uow.BidRepository().Get(ctx, *bidID)
		if err != nil {
			return kernel.Money{}, err
		}
		selectedBid = loaded
	}

	return services.DeliveryFee(aggregate, selectedBid)
}
