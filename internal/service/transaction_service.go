package service

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/repository"
)

// TransactionService records transactions and applies their side effects to
// the owning asset.
type TransactionService struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
	assetRepo       *repository.AssetRepository
}

// NewTransactionService creates a TransactionService.
func NewTransactionService(db *sql.DB, transactionRepo *repository.TransactionRepository, assetRepo *repository.AssetRepository) *TransactionService {
	return &TransactionService{
		db:              db,
		transactionRepo: transactionRepo,
		assetRepo:       assetRepo,
	}
}

// ListByAsset returns all transactions for an asset, newest first.
// Returns apperrors.ErrAssetNotFound for an unknown asset.
func (s *TransactionService) ListByAsset(assetID string) ([]model.Transaction, error) {
	if _, err := s.assetRepo.GetByID(assetID); err != nil {
		return nil, err
	}
	return s.transactionRepo.ListByAsset(assetID)
}

// Create records a transaction and applies its side effect atomically:
// buy/sell adjust the asset's quantity (floored at zero), valuation_update
// rewrites its estimated value and currency. Deposits and withdrawals are
// record-only.
func (s *TransactionService) Create(t model.Transaction) (model.Transaction, error) {
	asset, err := s.assetRepo.GetByID(t.AssetID)
	if err != nil {
		return model.Transaction{}, err
	}

	t.ID = uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := s.transactionRepo.WithTx(tx).Create(t); err != nil {
		return model.Transaction{}, err
	}

	if updated, changed := applyTransactionSideEffect(asset, t); changed {
		if err := s.assetRepo.WithTx(tx).Update(updated); err != nil {
			return model.Transaction{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	txs, err := s.transactionRepo.ListByAsset(t.AssetID)
	if err != nil {
		return model.Transaction{}, err
	}
	for _, stored := range txs {
		if stored.ID == t.ID {
			return stored, nil
		}
	}
	return t, nil
}

// Delete removes a transaction record. Side effects already applied to the
// asset are not reverted; the record is history, not a ledger.
func (s *TransactionService) Delete(id string) error {
	return s.transactionRepo.Delete(id)
}

func applyTransactionSideEffect(asset model.Asset, t model.Transaction) (model.Asset, bool) {
	switch t.Type {
	case model.TransactionValuationUpdate:
		asset.EstimatedValue = &t.TotalValue
		currency := t.Currency
		asset.ValueCurrency = &currency
		return asset, true

	case model.TransactionBuy:
		if t.Quantity == nil {
			return asset, false
		}
		current := 0.0
		if asset.Quantity != nil {
			current = *asset.Quantity
		}
		updated := current + *t.Quantity
		asset.Quantity = &updated
		return asset, true

	case model.TransactionSell:
		if t.Quantity == nil {
			return asset, false
		}
		current := 0.0
		if asset.Quantity != nil {
			current = *asset.Quantity
		}
		updated := current - *t.Quantity
		if updated < 0 {
			updated = 0
		}
		asset.Quantity = &updated
		return asset, true
	}

	return asset, false
}
