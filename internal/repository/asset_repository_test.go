package repository_test

import (
	"errors"
	"testing"

	"github.com/YuriRomanenkou/portfolio-manager/internal/apperrors"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/repository"
	"github.com/YuriRomanenkou/portfolio-manager/internal/testutil"
)

// TestAssetRepository_CRUD tests the asset persistence round trip.
//
// WHY: Optional columns map to pointers and must round trip as nil, not as
// zero values; soft-deleted assets must vanish from listings while their row
// survives for history.
func TestAssetRepository_CRUD(t *testing.T) {
	t.Run("create and read back with nil optionals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)

		asset := model.Asset{
			ID:        testutil.MakeID(),
			Name:      "Bitcoin",
			AssetType: model.AssetTypeCrypto,
			APIID:     testutil.StringPtr("bitcoin"),
			Quantity:  testutil.Float64Ptr(0.5),
			IsActive:  true,
		}
		if err := repo.Create(asset); err != nil {
			t.Fatalf("Create() returned unexpected error: %v", err)
		}

		got, err := repo.GetByID(asset.ID)
		if err != nil {
			t.Fatalf("GetByID() returned unexpected error: %v", err)
		}

		if got.Name != "Bitcoin" || got.AssetType != model.AssetTypeCrypto {
			t.Errorf("Round trip lost identity fields: %+v", got)
		}
		if got.APIID == nil || *got.APIID != "bitcoin" {
			t.Errorf("Expected apiId bitcoin, got %v", got.APIID)
		}
		if got.Ticker != nil || got.EstimatedValue != nil || got.PurchaseDate != nil {
			t.Errorf("Expected unset optionals to stay nil, got %+v", got)
		}
		if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
			t.Error("Expected timestamps to be populated")
		}
	})

	t.Run("unknown ID returns the not-found sentinel", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)

		_, err := repo.GetByID(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})

	t.Run("update rewrites mutable fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)
		asset := testutil.NewAsset().WithQuantity(10).Build(t, db)

		asset.Name = "Renamed"
		asset.Quantity = testutil.Float64Ptr(25)
		if err := repo.Update(asset); err != nil {
			t.Fatalf("Update() returned unexpected error: %v", err)
		}

		got, err := repo.GetByID(asset.ID)
		if err != nil {
			t.Fatalf("GetByID() returned unexpected error: %v", err)
		}
		if got.Name != "Renamed" || got.Quantity == nil || *got.Quantity != 25 {
			t.Errorf("Update did not persist: %+v", got)
		}
	})

	t.Run("soft delete hides the asset from listings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)
		asset := testutil.NewAsset().Build(t, db)

		if err := repo.SoftDelete(asset.ID); err != nil {
			t.Fatalf("SoftDelete() returned unexpected error: %v", err)
		}

		assets, err := repo.ListActive()
		if err != nil {
			t.Fatalf("ListActive() returned unexpected error: %v", err)
		}
		if len(assets) != 0 {
			t.Errorf("Expected no active assets after soft delete, got %d", len(assets))
		}

		// The row itself survives for history.
		if _, err := repo.GetByID(asset.ID); !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected soft-deleted asset hidden from GetByID, got %v", err)
		}
	})

	t.Run("listing skips inactive assets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)

		active := testutil.NewAsset().WithName("Active").Build(t, db)
		testutil.NewAsset().WithName("Gone").Inactive().Build(t, db)

		assets, err := repo.ListActive()
		if err != nil {
			t.Fatalf("ListActive() returned unexpected error: %v", err)
		}
		if len(assets) != 1 || assets[0].ID != active.ID {
			t.Errorf("Expected only the active asset, got %+v", assets)
		}
	})
}
