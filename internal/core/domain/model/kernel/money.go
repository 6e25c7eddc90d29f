package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Money is a value object representing a non-negative amount in minor
// currency units (e.g., cents). It is used for product prices, delivery
// fees, and wallet balances throughout the domain model.
//
// Money is immutable: arithmetic methods return a new value instead of
// mutating the receiver. Subtraction that would produce a negative amount
// fails, which is how the ledger enforces that balances and escrow holds
// never go below zero.
//
// The zero value of Money is a valid amount of 0.
//
// Example usage:
//
//	price, _ := kernel.NewMoney(5000)
//	fee, _ := kernel.NewMoney(700)
//
//	total := price.Add(fee)
//	remainder, err := price.Sub(fee)
//	if err != nil {
//	    // subtraction would go negative
//	}
type Money struct {
	amount int64
}

// NewMoney creates a Money value from an amount in minor units.
// Returns an error if the amount is negative.
//
// Example:
//
//	fee, err := kernel.NewMoney(700)
//	if err != nil {
//	    return fmt.Errorf("invalid fee: %w", err)
//	}
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%d is negative", amount),
		)
	}
	return Money{amount: amount}, nil
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of two Money values.
// The sum of two non-negative amounts is always valid.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Sub returns the difference of two Money values.
// Returns an error if the result would be negative, keeping every derived
// balance within the non-negative invariant.
func (m Money) Sub(other Money) (Money, error) {
	if other.amount > m.amount {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", m.amount-other.amount, 0, m.amount)
	}
	return Money{amount: m.amount - other.amount}, nil
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsLess reports whether this amount is strictly smaller than the other.
// Used by the wallet to detect debits that exceed the available balance.
func (m Money) IsLess(other Money) bool {
	return m.amount < other.amount
}

// IsEqual compares two Money values for equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String returns the amount formatted in minor units.
// Implements fmt.Stringer for logging and error messages.
func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}
