package repository_test

import (
	"errors"
	"testing"

	"github.com/YuriRomanenkou/portfolio-manager/internal/apperrors"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/repository"
	"github.com/YuriRomanenkou/portfolio-manager/internal/testutil"
)

// TestSnapshotRepository tests snapshot storage and the breakdown JSON
// round trip.
//
// WHY: The breakdown is serialized to a JSON column and must come back
// structurally identical; the unique date key turns same-day snapshots into
// overwrites.
func TestSnapshotRepository(t *testing.T) {
	breakdown := model.PortfolioBreakdown{
		model.AssetTypeCash: {
			ValueUSD:   1000,
			ValueAMD:   400000,
			Percentage: 40,
			Assets: []model.BreakdownAsset{
				{ID: "a1", Name: "Savings", ValueUSD: 1000, ValueAMD: 400000},
			},
		},
		model.AssetTypeStock: {
			ValueUSD:   1500,
			ValueAMD:   600000,
			Percentage: 60,
			Assets: []model.BreakdownAsset{
				{ID: "a2", Name: "Apple", ValueUSD: 1500, ValueAMD: 600000},
			},
		},
	}

	t.Run("breakdown round trips through the JSON column", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSnapshotRepository(db)

		if err := repo.Upsert("2025-08-28", 2500, 1000000, breakdown); err != nil {
			t.Fatalf("Upsert() returned unexpected error: %v", err)
		}

		got, err := repo.GetByDate("2025-08-28")
		if err != nil {
			t.Fatalf("GetByDate() returned unexpected error: %v", err)
		}

		if got.TotalValueUSD != 2500 || got.TotalValueAMD != 1000000 {
			t.Errorf("Totals did not round trip: %+v", got)
		}
		cash := got.Breakdown[model.AssetTypeCash]
		if cash.Percentage != 40 || len(cash.Assets) != 1 || cash.Assets[0].Name != "Savings" {
			t.Errorf("Breakdown did not round trip: %+v", cash)
		}
	})

	t.Run("same date upserts keep one row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSnapshotRepository(db)

		if err := repo.Upsert("2025-08-28", 2500, 1000000, breakdown); err != nil {
			t.Fatalf("Upsert() returned unexpected error: %v", err)
		}
		if err := repo.Upsert("2025-08-28", 2600, 1040000, breakdown); err != nil {
			t.Fatalf("Upsert() returned unexpected error: %v", err)
		}

		snapshots, err := repo.List(10)
		if err != nil {
			t.Fatalf("List() returned unexpected error: %v", err)
		}
		if len(snapshots) != 1 {
			t.Fatalf("Expected 1 row, got %d", len(snapshots))
		}
		if snapshots[0].TotalValueUSD != 2600 {
			t.Errorf("Expected the later total 2600, got %v", snapshots[0].TotalValueUSD)
		}
	})

	t.Run("list returns newest first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSnapshotRepository(db)

		for _, date := range []string{"2025-08-26", "2025-08-27", "2025-08-28"} {
			if err := repo.Upsert(date, 1000, 400000, breakdown); err != nil {
				t.Fatalf("Upsert() returned unexpected error: %v", err)
			}
		}

		snapshots, err := repo.List(2)
		if err != nil {
			t.Fatalf("List() returned unexpected error: %v", err)
		}
		if len(snapshots) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(snapshots))
		}
		if snapshots[0].Date != "2025-08-28" || snapshots[1].Date != "2025-08-27" {
			t.Errorf("Expected newest first, got %s then %s", snapshots[0].Date, snapshots[1].Date)
		}
	})

	t.Run("missing date returns the not-found sentinel", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSnapshotRepository(db)

		_, err := repo.GetByDate("1999-01-01")
		if !errors.Is(err, apperrors.ErrSnapshotNotFound) {
			t.Errorf("Expected ErrSnapshotNotFound, got %v", err)
		}
	})
}
