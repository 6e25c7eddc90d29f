package services

import (
	"fmt"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
)

// CollateralPolicy names what happens to the courier's product-price
// collateral at settlement. The business sources disagree on this point, so
// both observed variants are implemented and the choice is explicit
// configuration rather than an implementation accident.
type CollateralPolicy int

const (
	// CollateralPolicyUnknown represents an invalid or undefined policy.
	CollateralPolicyUnknown CollateralPolicy = iota

	// CollateralReturned refunds the courier's collateral on top of the fee:
	// the collateral backs the delivery obligation, it is not a payment.
	// This is the default.
	CollateralReturned

	// CollateralForfeited pays the courier only the fee; the collateral value
	// is effectively transferred to the store as its payment. This mirrors the
	// legacy settlement variant.
	CollateralForfeited
)

// Validate checks if the CollateralPolicy value is valid.
func (p CollateralPolicy) Validate() error {
	if p != CollateralReturned && p != CollateralForfeited {
		return errs.NewValueIsInvalidError("collateral policy")
	}
	return nil
}

// String returns the configuration name of the policy.
func (p CollateralPolicy) String() string {
	switch p {
	case CollateralReturned:
		return "returned"
	case CollateralForfeited:
		return "forfeited"
	default:
		return "unknown"
	}
}

// CollateralPolicyFromString parses a policy from its configuration name.
// An empty name selects the default (CollateralReturned).
func CollateralPolicyFromString(name string) (CollateralPolicy, error) {
	switch name {
	case "", "returned":
		return CollateralReturned, nil
	case "forfeited":
		return CollateralForfeited, nil
	default:
		return CollateralPolicyUnknown, errs.NewValueIsInvalidError("collateral policy name: " + name)
	}
}

// DeliveryFee returns the effective delivery fee for an order: the selected
// bid's amount when a bid was selected, otherwise the store's suggested fee.
//
// Escrow deposit and settlement both call this function, so the amount the
// store locks up is by construction the amount the courier is later paid.
//
// When the order references a selected bid, the caller must pass that bid;
// a nil or mismatched bid is an error rather than a silent fallback.
func DeliveryFee(o *order.Order, selectedBid *bid.Bid) (kernel.Money, error) {
	if err := o.Validate(); err != nil {
		return kernel.Money{}, err
	}

	bidID := o.SelectedBid()
	if bidID == nil {
		return o.SuggestedFee(), nil
	}

	if err := selectedBid.Validate(); err != nil {
		return kernel.Money{}, errs.NewObjectNotFoundErrorWithCause("selectedBid", bidID.String(), err)
	}

	if !selectedBid.ID().IsEqual(*bidID) {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(
			"selectedBid",
			fmt.Errorf("bid %s does not match order's selected bid %s", selectedBid.ID(), bidID),
		)
	}

	return selectedBid.Amount(), nil
}

// SettlementResult reports which halves of a settlement were applied and the
// fee that was paid out. Settlement is deliberately not atomic across the two
// wallets: a missing wallet skips that half, and the caller logs the
// inconsistency for reconciliation instead of aborting the other half.
type SettlementResult struct {
	Fee            kernel.Money
	StoreSettled   bool
	CourierSettled bool
}

// SettlementEngine performs the one-time ledger adjustment triggered by order
// completion.
//
// For an order with product price P and effective fee F:
//   - Store wallet: escrow hold decreases by F (its fee deposit is consumed),
//     balance increases by P (the value of the courier's collateral moves to
//     the store as payment for the goods).
//   - Courier wallet: escrow hold decreases by P (its collateral is released),
//     balance increases by F (it is paid for the delivery), plus P when the
//     collateral policy returns the collateral to the courier.
//
// Each applied half appends exactly one Transaction to the affected wallet.
// The caller is responsible for running settlement exactly once per order,
// which the Order aggregate guarantees via its idempotent status update.
type SettlementEngine struct {
	policy CollateralPolicy
}

// NewSettlementEngine creates a SettlementEngine with the given collateral policy.
func NewSettlementEngine(policy CollateralPolicy) (SettlementEngine, error) {
	if err := policy.Validate(); err != nil {
		return SettlementEngine{}, err
	}

	return SettlementEngine{policy: policy}, nil
}

// Policy returns the configured collateral policy.
func (e SettlementEngine) Policy() CollateralPolicy {
	return e.policy
}

// Settle applies the completion payout to the two wallets.
//
// The order must be Completed with an assigned courier. selectedBid must be
// the order's selected bid when one exists (the fee rule of DeliveryFee).
// Either wallet may be nil: that half is skipped and reported as unsettled in
// the result so the caller can log and later repair the inconsistency. A
// missing counterparty wallet never aborts the other half.
func (e SettlementEngine) Settle(
	o *order.Order,
	selectedBid *bid.Bid,
	storeWallet *wallet.Wallet,
	courierWallet *wallet.Wallet,
) (SettlementResult, error) {
	if err := o.Validate(); err != nil {
		return SettlementResult{}, err
	}

	if o.Status() != order.Completed {
		return SettlementResult{}, errs.NewStateConflictError("settle", o.Status().String())
	}

	if o.Courier() == nil {
		return SettlementResult{}, errs.NewValueIsRequiredError("order courier")
	}

	fee, err := DeliveryFee(o, selectedBid)
	if err != nil {
		return SettlementResult{}, err
	}

	result := SettlementResult{Fee: fee}
	price := o.Price()

	if storeWallet != nil {
		description := fmt.Sprintf("settlement for order %s: product price received", o.ID())
		if _, err = storeWallet.Release(fee, price, description); err != nil {
			return result, err
		}
		result.StoreSettled = true
	}

	if courierWallet != nil {
		payout := fee
		if e.policy == CollateralReturned {
			payout = payout.Add(price)
		}

		description := fmt.Sprintf("settlement for order %s: delivery fee paid", o.ID())
		if e.policy == CollateralReturned {
			description = fmt.Sprintf("settlement for order %s: delivery fee and collateral", o.ID())
		}

		if _, err = courierWallet.Release(price, payout, description); err != nil {
			return result, err
		}
		result.CourierSettled = true
	}

	return result, nil
}
