package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a delivery order in the marketplace. It is the aggregate root
// that manages the order lifecycle from creation through competitive bidding,
// mutual escrow deposit, and fulfillment to completion.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and owning store
//   - Product price and suggested delivery fee must be positive
//   - Status transitions are monotonic and follow the Status state machine
//   - Selected bid and assigned courier are set together, atomically
//   - Escrow flags only move from false to true; a second deposit from the
//     same party is rejected before any ledger mutation happens
//   - Can only be created through NewOrder constructor
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods. Orders are never deleted; history
// is append-only via status.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// storeID references the store that created and owns the order
	storeID kernel.UUID

	// description is the product description shown to bidding couriers
	description string

	// price is the product price; it sizes the courier's escrow collateral
	price kernel.Money

	// suggestedFee is the store's suggested delivery fee, used as the
	// effective fee when no bid was selected
	suggestedFee kernel.Money

	// address is the delivery destination
	address string

	// clientContact is how the courier reaches the recipient
	clientContact string

	// status represents the current state in the order lifecycle
	status Status

	// selectedBidID is the winning bid (nil while bidding)
	selectedBidID *kernel.UUID

	// courierID is the courier assigned via the selected bid (nil while bidding)
	courierID *kernel.UUID

	// storeEscrowPaid is set once the store has deposited the delivery fee
	storeEscrowPaid bool

	// courierEscrowPaid is set once the courier has deposited the product price
	courierEscrowPaid bool

	// storeReviewed / courierReviewed gate the one-review-per-side rule
	storeReviewed   bool
	courierReviewed bool

	// createdAt is the creation timestamp
	createdAt time.Time

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates a new Order in Bidding status with validation. This is the
// only way to create a fresh Order, ensuring all business invariants hold.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - storeID: The store creating the order (must be valid UUID)
//   - description: Product description (required)
//   - price: Product price (must be positive)
//   - suggestedFee: Store's suggested delivery fee (must be positive)
//   - address: Delivery destination (required)
//   - clientContact: Recipient contact (required)
//
// Returns the created order, or a validation error if any parameter is invalid.
func NewOrder(
	id kernel.UUID,
	storeID kernel.UUID,
	description string,
	price kernel.Money,
	suggestedFee kernel.Money,
	address string,
	clientContact string,
) (*Order, error) {
	order := &Order{
		status:        Bidding,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setStoreID(storeID),
		order.setDescription(description),
		order.setPrice(price),
		order.setSuggestedFee(suggestedFee),
		order.setAddress(address),
		order.setClientContact(clientContact),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence without running the
// creation-time defaults. All fields are validated; the status must be a
// valid lifecycle status, and an order that has left Bidding must carry both
// a selected bid and an assigned courier.
func RestoreOrder(
	id kernel.UUID,
	storeID kernel.UUID,
	description string,
	price kernel.Money,
	suggestedFee kernel.Money,
	address string,
	clientContact string,
	status Status,
	selectedBidID *kernel.UUID,
	courierID *kernel.UUID,
	storeEscrowPaid bool,
	courierEscrowPaid bool,
	storeReviewed bool,
	courierReviewed bool,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setStoreID(storeID),
		order.setDescription(description),
		order.setPrice(price),
		order.setSuggestedFee(suggestedFee),
		order.setAddress(address),
		order.setClientContact(clientContact),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if status != Bidding && (selectedBidID == nil || courierID == nil) {
		return nil, errs.NewValueIsRequiredError("selected bid and courier for status " + status.String())
	}

	order.status = status
	order.selectedBidID = selectedBidID
	order.courierID = courierID
	order.storeEscrowPaid = storeEscrowPaid
	order.courierEscrowPaid = courierEscrowPaid
	order.storeReviewed = storeReviewed
	order.courierReviewed = courierReviewed

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// StoreID returns the owning store's identifier.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// Description returns the product description.
func (o *Order) Description() string {
	return o.description
}

// Price returns the product price.
// The courier's escrow collateral is sized to this amount.
func (o *Order) Price() kernel.Money {
	return o.price
}

// SuggestedFee returns the store's suggested delivery fee.
func (o *Order) SuggestedFee() kernel.Money {
	return o.suggestedFee
}

// Address returns the delivery destination address.
func (o *Order) Address() string {
	return o.address
}

// ClientContact returns the recipient contact information.
func (o *Order) ClientContact() string {
	return o.clientContact
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// SelectedBid returns the winning bid's ID, or nil while the order is in Bidding.
func (o *Order) SelectedBid() *kernel.UUID {
	return o.selectedBidID
}

// Courier returns the assigned courier's ID, or nil while the order is in Bidding.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// IsStoreEscrowPaid reports whether the store has deposited the delivery fee.
func (o *Order) IsStoreEscrowPaid() bool {
	return o.storeEscrowPaid
}

// IsCourierEscrowPaid reports whether the courier has deposited the product price.
func (o *Order) IsCourierEscrowPaid() bool {
	return o.courierEscrowPaid
}

// IsStoreReviewed reports whether the store has submitted its review.
func (o *Order) IsStoreReviewed() bool {
	return o.storeReviewed
}

// IsCourierReviewed reports whether the courier has submitted its review.
func (o *Order) IsCourierReviewed() bool {
	return o.courierReviewed
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// SelectBid records the store's choice of a winning bid and assigns the
// bidding courier, moving the order from Bidding to AwaitingEscrow.
//
// The selected bid and assigned courier are set together so that no observer
// can see an order with one but not the other.
//
// Returns a StateConflictError if the order is not in Bidding, or a
// validation error if either ID is invalid.
func (o *Order) SelectBid(bidID kernel.UUID, courierID kernel.UUID) error {
	if err := errors.Join(bidID.Validate(), courierID.Validate()); err != nil {
		return err
	}

	newStatus, err := o.status.SelectBid()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.selectedBidID = &bidID
	o.courierID = &courierID
	return nil
}

// MarkStoreEscrowPaid records the store's escrow deposit.
//
// The order must be in AwaitingEscrow and the store must not have deposited
// already; the caller records the fact here before debiting the wallet, so a
// repeat deposit is rejected before any ledger mutation.
//
// When the courier's deposit is already in, the status advances to
// ReadyForPickup; otherwise it stays in AwaitingEscrow. The two deposits
// commute: the order reaches ReadyForPickup regardless of arrival order.
func (o *Order) MarkStoreEscrowPaid() error {
	if o.status != AwaitingEscrow {
		return errs.NewStateConflictError("deposit store escrow", o.status.String())
	}

	if o.storeEscrowPaid {
		return errs.NewStateConflictError("deposit store escrow twice", o.status.String())
	}

	o.storeEscrowPaid = true
	return o.advanceWhenBothEscrowsIn()
}

// MarkCourierEscrowPaid records the courier's escrow deposit.
// Mirror image of MarkStoreEscrowPaid for the courier's collateral.
func (o *Order) MarkCourierEscrowPaid() error {
	if o.status != AwaitingEscrow {
		return errs.NewStateConflictError("deposit courier escrow", o.status.String())
	}

	if o.courierEscrowPaid {
		return errs.NewStateConflictError("deposit courier escrow twice", o.status.String())
	}

	o.courierEscrowPaid = true
	return o.advanceWhenBothEscrowsIn()
}

// ReconcileEscrow forces the status to ReadyForPickup when both escrow flags
// are set but the status still says AwaitingEscrow. This repairs the race
// where both deposits read a stale "other side not paid" fact and neither
// transition advanced the status.
//
// Returns true when a correction was applied. Safe to call repeatedly:
// an already-consistent order is left untouched. Never touches wallets and
// never triggers settlement.
func (o *Order) ReconcileEscrow() bool {
	if o.status != AwaitingEscrow || !o.storeEscrowPaid || !o.courierEscrowPaid {
		return false
	}

	o.status = ReadyForPickup
	return true
}

// AdvanceStatus moves the order forward through the fulfillment phase.
//
// A target equal to the current status is an idempotent no-op: changed is
// false, no error is returned, and no side effects may be run by the caller.
// In particular, forcing Completed on an already completed order must not
// re-run settlement.
//
// Returns changed == true when the status actually moved; the caller uses
// this together with target == Completed to trigger settlement exactly once.
func (o *Order) AdvanceStatus(target Status) (changed bool, err error) {
	if target == o.status {
		return false, nil
	}

	newStatus, err := o.status.Advance(target)
	if err != nil {
		return false, err
	}

	o.status = newStatus
	return true, nil
}

// MarkReviewed records that the given party submitted its review.
//
// Only the owning store and the assigned courier may review, only on a
// Completed order, and only once each.
func (o *Order) MarkReviewed(reviewerID kernel.UUID) error {
	if o.status != Completed {
		return errs.NewStateConflictError("submit review", o.status.String())
	}

	switch {
	case reviewerID.IsEqual(o.storeID):
		if o.storeReviewed {
			return errs.NewStateConflictError("submit store review twice", o.status.String())
		}
		o.storeReviewed = true
	case o.courierID != nil && reviewerID.IsEqual(*o.courierID):
		if o.courierReviewed {
			return errs.NewStateConflictError("submit courier review twice", o.status.String())
		}
		o.courierReviewed = true
	default:
		return errs.NewObjectNotFoundError("reviewer", reviewerID.String())
	}

	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setStoreID validates and sets the owning store.
func (o *Order) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	o.storeID = storeID
	return nil
}

func (o *Order) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	o.description = description
	return nil
}

func (o *Order) setPrice(price kernel.Money) error {
	if !price.IsPositive() {
		return errs.NewValueIsInvalidError("price")
	}
	o.price = price
	return nil
}

func (o *Order) setSuggestedFee(suggestedFee kernel.Money) error {
	if !suggestedFee.IsPositive() {
		return errs.NewValueIsInvalidError("suggestedFee")
	}
	o.suggestedFee = suggestedFee
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setClientContact(clientContact string) error {
	if clientContact == "" {
		return errs.NewValueIsRequiredError("clientContact")
	}
	o.clientContact = clientContact
	return nil
}

// advanceWhenBothEscrowsIn moves AwaitingEscrow to ReadyForPickup once both
// parties have deposited. Called from the escrow mark methods only.
func (o *Order) advanceWhenBothEscrowsIn() error {
	if !o.storeEscrowPaid || !o.courierEscrowPaid {
		return nil
	}

	newStatus, err := o.status.EscrowReady()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}
