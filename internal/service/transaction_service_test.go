package service_test

import (
	"errors"
	"testing"

	"github.com/YuriRomanenkou/portfolio-manager/internal/apperrors"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/repository"
	"github.com/YuriRomanenkou/portfolio-manager/internal/testutil"
)

// TestTransactionService_Create tests transaction recording and its side
// effects on the owning asset.
//
// WHY: Buy and sell transactions mutate the asset's quantity in the same
// database transaction as the record insert. The floor at zero and the
// valuation_update rewrite are contract behavior; deposits are record-only.
func TestTransactionService_Create(t *testing.T) {
	t.Run("buy increases the asset quantity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		asset := testutil.NewAsset().WithQuantity(10).Build(t, db)

		created, err := svc.Create(model.Transaction{
			AssetID:    asset.ID,
			Type:       model.TransactionBuy,
			Quantity:   testutil.Float64Ptr(5),
			TotalValue: 500,
			Currency:   "USD",
			Date:       "2025-08-20",
		})
		if err != nil {
			t.Fatalf("Create() returned unexpected error: %v", err)
		}
		if created.ID == "" {
			t.Error("Expected the stored transaction to carry an ID")
		}

		updated, err := repository.NewAssetRepository(db).GetByID(asset.ID)
		if err != nil {
			t.Fatalf("GetByID() returned unexpected error: %v", err)
		}
		if updated.Quantity == nil || *updated.Quantity != 15 {
			t.Errorf("Expected quantity 15 after buy, got %v", updated.Quantity)
		}
	})

	t.Run("sell floors the quantity at zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		asset := testutil.NewAsset().WithQuantity(3).Build(t, db)

		_, err := svc.Create(model.Transaction{
			AssetID:    asset.ID,
			Type:       model.TransactionSell,
			Quantity:   testutil.Float64Ptr(10),
			TotalValue: 1000,
			Currency:   "USD",
			Date:       "2025-08-20",
		})
		if err != nil {
			t.Fatalf("Create() returned unexpected error: %v", err)
		}

		updated, err := repository.NewAssetRepository(db).GetByID(asset.ID)
		if err != nil {
			t.Fatalf("GetByID() returned unexpected error: %v", err)
		}
		if updated.Quantity == nil || *updated.Quantity != 0 {
			t.Errorf("Expected quantity floored at 0, got %v", updated.Quantity)
		}
	})

	t.Run("valuation_update rewrites the estimated value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		asset := testutil.NewAsset().
			WithType(model.AssetTypeRealEstate).
			WithEstimatedValue(100000, "USD").
			Build(t, db)

		_, err := svc.Create(model.Transaction{
			AssetID:    asset.ID,
			Type:       model.TransactionValuationUpdate,
			TotalValue: 120000,
			Currency:   "USD",
			Date:       "2025-08-20",
		})
		if err != nil {
			t.Fatalf("Create() returned unexpected error: %v", err)
		}

		updated, err := repository.NewAssetRepository(db).GetByID(asset.ID)
		if err != nil {
			t.Fatalf("GetByID() returned unexpected error: %v", err)
		}
		if updated.EstimatedValue == nil || *updated.EstimatedValue != 120000 {
			t.Errorf("Expected estimated value 120000, got %v", updated.EstimatedValue)
		}
	})

	t.Run("deposit leaves the asset untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		asset := testutil.NewAsset().WithQuantity(1000).Build(t, db)

		_, err := svc.Create(model.Transaction{
			AssetID:    asset.ID,
			Type:       model.TransactionDeposit,
			TotalValue: 500,
			Currency:   "USD",
			Date:       "2025-08-20",
		})
		if err != nil {
			t.Fatalf("Create() returned unexpected error: %v", err)
		}

		updated, err := repository.NewAssetRepository(db).GetByID(asset.ID)
		if err != nil {
			t.Fatalf("GetByID() returned unexpected error: %v", err)
		}
		if updated.Quantity == nil || *updated.Quantity != 1000 {
			t.Errorf("Expected quantity unchanged at 1000, got %v", updated.Quantity)
		}
	})

	t.Run("unknown asset is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.Create(model.Transaction{
			AssetID:    testutil.MakeID(),
			Type:       model.TransactionDeposit,
			TotalValue: 500,
			Currency:   "USD",
			Date:       "2025-08-20",
		})
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})
}

// TestTransactionService_ListAndDelete tests retrieval and deletion.
//
// WHY: Listing validates the asset first so a typo'd ID reads as 404 rather
// than an empty history, and deleting is record-only: the asset's quantity
// keeps whatever the transaction already did to it.
func TestTransactionService_ListAndDelete(t *testing.T) {
	t.Run("list for unknown asset returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.ListByAsset(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})

	t.Run("delete does not revert side effects", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		asset := testutil.NewAsset().WithQuantity(10).Build(t, db)

		created, err := svc.Create(model.Transaction{
			AssetID:    asset.ID,
			Type:       model.TransactionBuy,
			Quantity:   testutil.Float64Ptr(5),
			TotalValue: 500,
			Currency:   "USD",
			Date:       "2025-08-20",
		})
		if err != nil {
			t.Fatalf("Create() returned unexpected error: %v", err)
		}

		if err := svc.Delete(created.ID); err != nil {
			t.Fatalf("Delete() returned unexpected error: %v", err)
		}

		transactions, err := svc.ListByAsset(asset.ID)
		if err != nil {
			t.Fatalf("ListByAsset() returned unexpected error: %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("Expected no transactions after delete, got %d", len(transactions))
		}

		updated, err := repository.NewAssetRepository(db).GetByID(asset.ID)
		if err != nil {
			t.Fatalf("GetByID() returned unexpected error: %v", err)
		}
		if updated.Quantity == nil || *updated.Quantity != 15 {
			t.Errorf("Expected quantity to stay at 15, got %v", updated.Quantity)
		}
	})

	t.Run("deleting an unknown transaction returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		if err := svc.Delete(testutil.MakeID()); !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}
