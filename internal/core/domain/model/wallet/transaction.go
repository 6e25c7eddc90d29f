package wallet

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrTransactionIsNotConstructed is returned when a Transaction was not created
	// through its factory method.
	ErrTransactionIsNotConstructed = errors.New("Transaction must be created via NewTransaction constructor")
)

// Direction indicates which way money moved relative to the wallet's balance.
type Direction int

const (
	// DirectionUnknown represents an invalid or undefined direction.
	DirectionUnknown Direction = iota

	// In indicates money entering the balance (settlement payout or escrow release).
	In

	// Out indicates money leaving the balance (escrow deposit).
	Out
)

// Validate checks if the Direction value is valid.
func (d Direction) Validate() error {
	if d != In && d != Out {
		return errs.NewValueIsInvalidError("direction")
	}
	return nil
}

// String returns the wire representation of the direction.
func (d Direction) String() string {
	switch d {
	case In:
		return "IN"
	case Out:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Transaction is an immutable ledger record: the sole audit trail for wallet
// changes. Each wallet mutation appends exactly one Transaction.
//
// Amount is the magnitude of the balance change in the recorded direction.
// EscrowDelta is the signed change to the escrow hold caused by the same
// mutation. Carrying both makes the log replayable: applying all transactions
// in timestamp order from a (0, 0) wallet reproduces the current
// (balance, escrow) pair even for settlement releases, where the balance
// credit and the escrow release differ in size.
type Transaction struct {
	id          kernel.UUID
	userID      kernel.UUID
	direction   Direction
	amount      kernel.Money
	escrowDelta int64
	description string
	createdAt   time.Time

	isConstructed bool
}

// NewTransaction creates an immutable ledger record stamped with the current time.
func NewTransaction(
	id kernel.UUID,
	userID kernel.UUID,
	direction Direction,
	amount kernel.Money,
	escrowDelta int64,
	description string,
) (*Transaction, error) {
	tx := &Transaction{
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		tx.setID(id),
		tx.setUserID(userID),
		tx.setDirection(direction),
		tx.setDescription(description),
	); err != nil {
		return nil, err
	}

	tx.amount = amount
	tx.escrowDelta = escrowDelta
	return tx, nil
}

// RestoreTransaction reconstructs a Transaction from persistence, keeping its
// stored timestamp.
func RestoreTransaction(
	id kernel.UUID,
	userID kernel.UUID,
	direction Direction,
	amount kernel.Money,
	escrowDelta int64,
	description string,
	createdAt time.Time,
) (*Transaction, error) {
	tx, err := NewTransaction(id, userID, direction, amount, escrowDelta, description)
	if err != nil {
		return nil, err
	}

	tx.createdAt = createdAt
	return tx, nil
}

// Validate ensures the Transaction instance was properly constructed.
func (t *Transaction) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransactionIsNotConstructed
	}

	return nil
}

// ID returns the transaction's unique identifier.
func (t *Transaction) ID() kernel.UUID {
	return t.id
}

// UserID returns the owning user's identifier.
func (t *Transaction) UserID() kernel.UUID {
	return t.userID
}

// Direction returns whether money entered or left the balance.
func (t *Transaction) Direction() Direction {
	return t.direction
}

// Amount returns the magnitude of the balance change.
func (t *Transaction) Amount() kernel.Money {
	return t.amount
}

// EscrowDelta returns the signed change to the escrow hold.
func (t *Transaction) EscrowDelta() int64 {
	return t.escrowDelta
}

// Description returns the free-text description of the ledger event.
func (t *Transaction) Description() string {
	return t.description
}

// CreatedAt returns the timestamp of the ledger event.
func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Transaction) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Transaction) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	t.userID = userID
	return nil
}

func (t *Transaction) setDirection(direction Direction) error {
	if err := direction.Validate(); err != nil {
		return err
	}
	t.direction = direction
	return nil
}

func (t *Transaction) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	t.description = description
	return nil
}
