package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
)

// WalletRepository defines the persistence contract for wallet aggregates.
//
// Wallets are created lazily: GetOrCreate is the only read path commands use,
// so a user's first deposit finds an empty wallet instead of a not-found
// error. Update persists the balances together with the transactions appended
// since the wallet was loaded, inside the surrounding unit of work.
type WalletRepository interface {
	// GetOrCreate retrieves the user's wallet, creating an empty one when the
	// user has no wallet yet. The returned wallet includes its transaction
	// history, oldest first.
	GetOrCreate(ctx context.Context, userID kernel.UUID) (*wallet.Wallet, error)

	// Get retrieves the user's wallet with its transaction history.
	// Returns ObjectNotFoundError when the user has no wallet.
	Get(ctx context.Context, userID kernel.UUID) (*wallet.Wallet, error)

	// Update persists the wallet's balances and appends its uncommitted
	// transactions to the ledger.
	Update(ctx context.Context, aggregate *wallet.Wallet) error
}
