package order

import (
	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Bidding ──> AwaitingEscrow ──> ReadyForPickup ──> PickedUp ──> InTransit ──> Completed
//
// Bidding is the initial state and Completed is terminal. Transitions are
// strictly monotonic: there is no reversal and no cancellation path.
// Fulfillment states (PickedUp, InTransit) may be skipped on the way to
// Completed, but never revisited.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Bidding is the initial status when an order is first created.
	// Couriers may submit and update bids while the order is in this status.
	Bidding

	// AwaitingEscrow indicates the store has selected a bid. The order waits
	// for both parties to deposit their escrow before fulfillment can start.
	AwaitingEscrow

	// ReadyForPickup indicates both escrow deposits are in and the courier
	// may collect the goods from the store.
	ReadyForPickup

	// PickedUp indicates the courier has collected the goods.
	PickedUp

	// InTransit indicates the courier is on the way to the destination.
	InTransit

	// Completed indicates the order has been delivered and settled.
	// This is a final state with no further transitions allowed.
	Completed
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Bidding:        "Bidding",
		AwaitingEscrow: "AwaitingEscrow",
		ReadyForPickup: "ReadyForPickup",
		PickedUp:       "PickedUp",
		InTransit:      "InTransit",
		Completed:      "Completed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Bidding:        "Bidding",
		AwaitingEscrow: "AwaitingEscrow",
		ReadyForPickup: "ReadyForPickup",
		PickedUp:       "PickedUp",
		InTransit:      "InTransit",
		Completed:      "Completed",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Bidding, AwaitingEscrow, ReadyForPickup, PickedUp,
// InTransit, Completed. Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			errs.NewValueIsOutOfRangeError("status", int(s), int(Bidding), int(Completed)))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status from its string representation.
// Returns an error for unknown names, including "Unknown" itself.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("status name is invalid: " + name)
}

// IsBiddingOpen reports whether couriers may still submit or update bids.
// Bids become immutable the moment the order leaves the Bidding status.
func (s Status) IsBiddingOpen() bool {
	return s == Bidding
}

// IsFulfillment reports whether the status is part of the fulfillment phase,
// i.e. both escrow deposits are in and the delivery is underway.
func (s Status) IsFulfillment() bool {
	return s == ReadyForPickup || s == PickedUp || s == InTransit
}

// SelectBid transitions the status to AwaitingEscrow.
//
// Valid transitions:
//   - Bidding -> AwaitingEscrow (store selected a courier's bid)
//
// Any other source status yields a StateConflictError: a bid cannot be
// selected twice, and fulfillment cannot restart bidding.
func (s Status) SelectBid() (Status, error) {
	if s != Bidding {
		return 0, errs.NewStateConflictError("select bid", s.String())
	}

	return AwaitingEscrow, nil
}

// EscrowReady transitions the status to ReadyForPickup.
//
// Valid transitions:
//   - AwaitingEscrow -> ReadyForPickup (both escrow deposits are in)
//
// The caller (Order aggregate) is responsible for checking that both escrow
// flags are actually set; the status machine only guards the source state.
func (s Status) EscrowReady() (Status, error) {
	if s != AwaitingEscrow {
		return 0, errs.NewStateConflictError("advance to ready for pickup", s.String())
	}

	return ReadyForPickup, nil
}

// Advance transitions the status forward through the fulfillment phase.
//
// Valid transitions (monotonic, skipping intermediate states is allowed):
//   - ReadyForPickup -> PickedUp | InTransit | Completed
//   - PickedUp       -> InTransit | Completed
//   - InTransit      -> Completed
//
// Invalid transitions:
//   - any backward move (no reversal is defined)
//   - advancing before both escrow deposits are in (source not in fulfillment)
//   - advancing out of Completed (terminal state)
//
// Callers treat target == current as an idempotent no-op before invoking
// Advance; the method itself rejects it as a non-forward move.
func (s Status) Advance(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !s.IsFulfillment() {
		return 0, errs.NewStateConflictError("advance status", s.String())
	}

	if !target.IsFulfillment() && target != Completed {
		return 0, errs.NewStateConflictError("advance to "+target.String(), s.String())
	}

	if target <= s {
		return 0, errs.NewStateConflictError("advance to "+target.String(), s.String())
	}

	return target, nil
}
