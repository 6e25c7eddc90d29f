package walletrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWalletRepository implements WalletRepository using GORM.
type GormWalletRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWalletRepository creates a new GORM wallet repository.
func NewGormWalletRepository(db *gorm.DB, tracker aggregateTracker) *GormWalletRepository {
	return &GormWalletRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetOrCreate retrieves the user's wallet, inserting an empty balances row
// when the user has no wallet yet.
func (r *GormWalletRepository) GetOrCreate(ctx context.Context, userID kernel.UUID) (*wallet.Wallet, error) {
	aggregate, err := r.Get(ctx, userID)
	if err == nil {
		return aggregate, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	fresh, err := wallet.NewWallet(userID)
	if err != nil {
		return nil, err
	}

	dto := fromDomain(fresh)
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(fresh.UserID(), fresh)
	return fresh, nil
}

// Get retrieves the user's wallet with its full ledger history.
//
// The balances row is read with SELECT ... FOR UPDATE so that concurrent
// debits against the same wallet (one user funding two orders at once)
// serialize instead of overwriting each other's full-row balance write.
func (r *GormWalletRepository) Get(ctx context.Context, userID kernel.UUID) (*wallet.Wallet, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto WalletDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("wallet", userID.String())
		}
		return nil, err
	}

	var txDTOs []TransactionDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&txDTOs, "user_id = ?", userID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, txDTOs)
}

// Update persists the wallet's balances and inserts its uncommitted
// transactions. Committed ledger rows are never touched.
func (r *GormWalletRepository) Update(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&WalletDTO{}).
		Where("user_id = ?", dto.UserID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	for _, tx := range aggregate.UncommittedTransactions() {
		txDTO := transactionFromDomain(tx)
		if err := r.db.WithContext(ctx).Create(&txDTO).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.UserID(), aggregate)
	return nil
}
