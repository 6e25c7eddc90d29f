// Package order implements the Order aggregate and its lifecycle state machine.
//
// An order moves through competitive bidding, bid selection, mutual escrow
// deposit, and fulfillment to completion:
//
//	Bidding -> AwaitingEscrow -> ReadyForPickup -> PickedUp -> InTransit -> Completed
//
// The aggregate owns the escrow flags, the selected bid / assigned courier
// pair, and the per-party review flags. Status transitions are monotonic;
// Completed is terminal and there is no cancellation path (an acknowledged
// gap in the business model rather than an omission of this package).
//
// The transition into Completed is the trigger for settlement; the aggregate
// reports whether a status update actually changed anything so that callers
// run settlement exactly once.
package order
