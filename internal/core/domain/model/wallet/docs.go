// Package wallet implements the per-user ledger: an available balance, an
// escrow hold, and the append-only Transaction history that is the sole
// audit trail for money movement.
//
// The two mutations are Debit (balance -> escrow, used for deposits) and
// Release (escrow -> balance, used by settlement, where the released hold
// and the credited amount may differ in size). Both reject any change that
// would take a balance negative before recording anything, and both append
// exactly one Transaction.
//
// Replay folds a transaction log from zero and must reproduce the stored
// balances; reconciliation and tests rely on this property.
package wallet
