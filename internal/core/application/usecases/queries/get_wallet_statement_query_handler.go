package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWalletStatementQueryHandler retrieves wallet balances and ledger history
// from the database.
type GetWalletStatementQueryHandler struct {
	db *gorm.DB
}

// NewGetWalletStatementQueryHandler creates a handler for wallet statement queries.
// Requires a GORM database connection for query execution.
func NewGetWalletStatementQueryHandler(db *gorm.DB) GetWalletStatementQueryHandler {
	return GetWalletStatementQueryHandler{db: db}
}

// Handle executes the query to retrieve the user's statement.
// A user without a wallet row gets an empty statement with zero balances.
func (h GetWalletStatementQueryHandler) Handle(
	ctx context.Context,
	query GetWalletStatementQuery,
) (GetWalletStatementQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWalletStatementQueryResponse{}, err
	}

	statement := GetWalletStatementQueryResponse{
		UserID:       query.UserID(),
		Transactions: make([]WalletStatementEntry, 0),
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			balance,
			escrow
		FROM wallets
		WHERE user_id = ?
	`, query.UserID().Bytes()).Row()

	if err := row.Scan(&statement.Balance, &statement.Escrow); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return statement, nil
		}
		return GetWalletStatementQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			direction,
			amount,
			escrow_delta,
			description,
			created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY created_at, id
	`, query.UserID().Bytes()).Rows()
	if err != nil {
		return GetWalletStatementQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry WalletStatementEntry
		var id uuid.UUID
		var direction int

		err = rows.Scan(
			&id,
			&direction,
			&entry.Amount,
			&entry.EscrowDelta,
			&entry.Description,
			&entry.CreatedAt,
		)
		if err != nil {
			return GetWalletStatementQueryResponse{}, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetWalletStatementQueryResponse{}, idErr
		}
		entry.ID = entryID
		entry.Direction = wallet.Direction(direction).String()

		statement.Transactions = append(statement.Transactions, entry)
	}

	if err = rows.Err(); err != nil {
		return GetWalletStatementQueryResponse{}, err
	}

	return statement, nil
}
