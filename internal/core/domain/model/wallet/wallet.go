package wallet

import (
	"errors"
	"fmt"
	"sort"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrWalletIsNotConstructed is returned when a Wallet instance was not created
	// through the NewWallet factory method.
	ErrWalletIsNotConstructed = errors.New("Wallet must be created via NewWallet constructor")
)

// Wallet is the per-user ledger account: an available balance, an escrow
// hold, and the append-only transaction history. There is exactly one Wallet
// per user, identified by the user's ID, created lazily with zero balances
// on first access.
//
// Wallet follows these invariants:
//   - Balance and escrow are non-negative at all times
//   - A debit that would take the balance negative fails before anything
//     is recorded
//   - Every mutation appends exactly one Transaction, and replaying the
//     full log from (0, 0) in timestamp order reproduces the current
//     (balance, escrow) pair
type Wallet struct {
	// userID identifies both the owning user and the wallet itself
	userID kernel.UUID

	// balance is the freely available amount
	balance kernel.Money

	// escrow is the amount held against in-flight orders
	escrow kernel.Money

	// transactions is the full ledger history, oldest first
	transactions []*Transaction

	// uncommitted are transactions appended since the wallet was loaded;
	// the repository persists exactly these on update
	uncommitted []*Transaction

	// isConstructed ensures the wallet was created via NewWallet or RestoreWallet
	isConstructed bool
}

// NewWallet creates an empty wallet for the given user.
// Both balances start at zero; this is the lazy get-or-create path.
func NewWallet(userID kernel.UUID) (*Wallet, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	return &Wallet{
		userID:        userID,
		isConstructed: true,
	}, nil
}

// RestoreWallet reconstructs a Wallet from persistence, including its
// transaction history. The restored transactions are considered committed.
func RestoreWallet(
	userID kernel.UUID,
	balance kernel.Money,
	escrow kernel.Money,
	transactions []*Transaction,
) (*Wallet, error) {
	wallet, err := NewWallet(userID)
	if err != nil {
		return nil, err
	}

	for _, tx := range transactions {
		if err := tx.Validate(); err != nil {
			return nil, err
		}
	}

	wallet.balance = balance
	wallet.escrow = escrow
	wallet.transactions = transactions
	return wallet, nil
}

// Validate ensures the Wallet instance was properly constructed.
func (w *Wallet) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWalletIsNotConstructed
	}

	return nil
}

// UserID returns the owning user's identifier.
func (w *Wallet) UserID() kernel.UUID {
	return w.userID
}

// Balance returns the freely available amount.
func (w *Wallet) Balance() kernel.Money {
	return w.balance
}

// Escrow returns the amount held against in-flight orders.
func (w *Wallet) Escrow() kernel.Money {
	return w.escrow
}

// Transactions returns the ledger history, oldest first, including any
// transactions appended since the wallet was loaded.
func (w *Wallet) Transactions() []*Transaction {
	return w.transactions
}

// UncommittedTransactions returns the transactions appended since the wallet
// was loaded. The repository persists exactly these on update.
func (w *Wallet) UncommittedTransactions() []*Transaction {
	return w.uncommitted
}

// Debit moves amount from the available balance into escrow.
//
// Fails with an InsufficientFundsError when the balance does not cover the
// amount; nothing is recorded in that case. On success exactly one OUT
// Transaction is appended, carrying both the balance decrease and the equal
// escrow increase.
func (w *Wallet) Debit(amount kernel.Money, description string) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidError("amount")
	}

	if w.balance.IsLess(amount) {
		return nil, errs.NewInsufficientFundsError(w.userID.String(), w.balance.Amount(), amount.Amount())
	}

	newBalance, err := w.balance.Sub(amount)
	if err != nil {
		return nil, err
	}

	tx, err := NewTransaction(kernel.NewUUID(), w.userID, Out, amount, amount.Amount(), description)
	if err != nil {
		return nil, err
	}

	w.balance = newBalance
	w.escrow = w.escrow.Add(amount)
	w.append(tx)
	return tx, nil
}

// Release lowers the escrow hold by escrowAmount and credits balanceDelta to
// the available balance. The two amounts may differ: at settlement the store's
// fee deposit is consumed while the product price is credited, and the courier
// is paid the fee while its price-sized collateral is released.
//
// Fails before recording anything if the escrow hold does not cover
// escrowAmount. On success exactly one IN Transaction is appended, carrying
// the balance credit and the signed escrow decrease.
func (w *Wallet) Release(escrowAmount, balanceDelta kernel.Money, description string) (*Transaction, error) {
	newEscrow, err := w.escrow.Sub(escrowAmount)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"escrowAmount",
			fmt.Errorf("escrow hold %s does not cover release of %s", w.escrow, escrowAmount),
		)
	}

	tx, err := NewTransaction(kernel.NewUUID(), w.userID, In, balanceDelta, -escrowAmount.Amount(), description)
	if err != nil {
		return nil, err
	}

	w.escrow = newEscrow
	w.balance = w.balance.Add(balanceDelta)
	w.append(tx)
	return tx, nil
}

func (w *Wallet) append(tx *Transaction) {
	w.transactions = append(w.transactions, tx)
	w.uncommitted = append(w.uncommitted, tx)
}

// Replay folds a transaction log from a (0, 0) wallet in timestamp order and
// returns the resulting (balance, escrow) pair. Used by reconciliation and
// tests to check that the ledger history explains the stored balances.
//
// Fails if any intermediate state would go negative, which indicates a
// corrupted or incomplete log.
func Replay(transactions []*Transaction) (balance kernel.Money, escrow kernel.Money, err error) {
	ordered := make([]*Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt().Before(ordered[j].CreatedAt())
	})

	for _, tx := range ordered {
		if err = tx.Validate(); err != nil {
			return kernel.Money{}, kernel.Money{}, err
		}

		switch tx.Direction() {
		case In:
			balance = balance.Add(tx.Amount())
		case Out:
			balance, err = balance.Sub(tx.Amount())
			if err != nil {
				return kernel.Money{}, kernel.Money{}, err
			}
		}

		delta := tx.EscrowDelta()
		if delta >= 0 {
			add, deltaErr := kernel.NewMoney(delta)
			if deltaErr != nil {
				return kernel.Money{}, kernel.Money{}, deltaErr
			}
			escrow = escrow.Add(add)
			continue
		}

		sub, deltaErr := kernel.NewMoney(-delta)
		if deltaErr != nil {
			return kernel.Money{}, kernel.Money{}, deltaErr
		}
		escrow, err = escrow.Sub(sub)
		if err != nil {
			return kernel.Money{}, kernel.Money{}, err
		}
	}

	return balance, escrow, nil
}
