package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetWalletStatementQueryIsNotConstructed = errors.New(
		"GetWalletStatementQuery must be created via NewGetWalletStatementQuery constructor",
	)
)

// GetWalletStatementQuery retrieves a user's wallet balances and full
// transaction history.
type GetWalletStatementQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWalletStatementQuery creates a query for the given user's statement.
func NewGetWalletStatementQuery(userID kernel.UUID) (GetWalletStatementQuery, error) {
	statementQuery := GetWalletStatementQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := statementQuery.setUserID(userID); err != nil {
		return GetWalletStatementQuery{}, err
	}

	return statementQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetWalletStatementQueryIsNotConstructed if validation fails.
func (q GetWalletStatementQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletStatementQueryIsNotConstructed)
}

// UserID returns the wallet owner.
func (q GetWalletStatementQuery) UserID() kernel.UUID {
	return q.userID
}

func (q *GetWalletStatementQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}

// GetWalletStatementQueryResponse represents a wallet's balances together
// with its ledger history, oldest entry first.
//
// A user that never transacted gets a zero statement rather than an error,
// matching the lazy wallet creation on the write side.
type GetWalletStatementQueryResponse struct {
	UserID       kernel.UUID
	Balance      int64
	Escrow       int64
	Transactions []WalletStatementEntry
}

// WalletStatementEntry represents one ledger record in a statement.
type WalletStatementEntry struct {
	ID          kernel.UUID
	Direction   string
	Amount      int64
	EscrowDelta int64
	Description string
	CreatedAt   time.Time
}
