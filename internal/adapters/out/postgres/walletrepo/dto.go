// Package walletrepo provides data transfer objects and mapping functions for wallet persistence.
// A wallet maps to one balances row plus an append-only transactions table;
// updating a wallet inserts only the transactions recorded since it was loaded.
package walletrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"

	"github.com/google/uuid"
)

// WalletDTO represents the balances row of a wallet.
// The user's ID doubles as the primary key: one wallet per user.
type WalletDTO struct {
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Balance int64     `gorm:"type:bigint;not null"`
	Escrow  int64     `gorm:"type:bigint;not null"`
}

// TableName specifies the database table name for wallet entities.
// Overrides GORM's default naming convention to use "wallets".
func (WalletDTO) TableName() string {
	return "wallets"
}

// TransactionDTO represents one immutable ledger record.
// Rows are only ever inserted, never updated or deleted.
type TransactionDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Direction   int       `gorm:"type:int;not null"`
	Amount      int64     `gorm:"type:bigint;not null"`
	EscrowDelta int64     `gorm:"type:bigint;not null"`
	Description string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for ledger records.
// Overrides GORM's default naming convention to use "transactions".
func (TransactionDTO) TableName() string {
	return "transactions"
}

// fromDomain converts a wallet aggregate to its balances row.
func fromDomain(aggregate *wallet.Wallet) WalletDTO {
	return WalletDTO{
		UserID:  aggregate.UserID().Bytes(),
		Balance: aggregate.Balance().Amount(),
		Escrow:  aggregate.Escrow().Amount(),
	}
}

// transactionFromDomain converts a ledger record to its database representation.
func transactionFromDomain(tx *wallet.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          tx.ID().Bytes(),
		UserID:      tx.UserID().Bytes(),
		Direction:   int(tx.Direction()),
		Amount:      tx.Amount().Amount(),
		EscrowDelta: tx.EscrowDelta(),
		Description: tx.Description(),
		CreatedAt:   tx.CreatedAt(),
	}
}

// toDomain converts the balances row and ledger history to a wallet aggregate.
func toDomain(dto WalletDTO, txDTOs []TransactionDTO) (*wallet.Wallet, error) {
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	balance, err := kernel.NewMoney(dto.Balance)
	if err != nil {
		return nil, err
	}

	escrow, err := kernel.NewMoney(dto.Escrow)
	if err != nil {
		return nil, err
	}

	transactions := make([]*wallet.Transaction, 0, len(txDTOs))
	for _, txDTO := range txDTOs {
		tx, txErr := transactionToDomain(txDTO)
		if txErr != nil {
			return nil, txErr
		}
		transactions = append(transactions, tx)
	}

	return wallet.RestoreWallet(userID, balance, escrow, transactions)
}

// transactionToDomain converts a ledger row to its domain representation.
func transactionToDomain(dto TransactionDTO) (*wallet.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return wallet.RestoreTransaction(
		id,
		userID,
		wallet.Direction(dto.Direction),
		amount,
		dto.EscrowDelta,
		dto.Description,
		dto.CreatedAt,
	)
}
