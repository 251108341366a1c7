package service_test

import (
	"testing"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/service"
	"github.com/YuriRomanenkou/portfolio-manager/internal/testutil"
)

// TestAggregate tests the pure aggregation of valued assets into buckets.
//
// WHY: The snapshot breakdown is the source for every pie chart. Bucket sums
// must equal the grand totals, percentages must sum to 100 when anything has
// value, and unknown values must contribute zero without marking the asset
// itself as worthless.
func TestAggregate(t *testing.T) {
	t.Run("bucket sums equal the grand totals", func(t *testing.T) {
		assets := []model.ValuedAsset{
			valuedAsset("s1", model.AssetTypeStock, testutil.Float64Ptr(6000)),
			valuedAsset("s2", model.AssetTypeStock, testutil.Float64Ptr(2000)),
			valuedAsset("m1", model.AssetTypeCash, testutil.Float64Ptr(2000)),
		}

		totalUSD, _, breakdown := service.Aggregate(assets)

		if totalUSD != 10000 {
			t.Fatalf("Expected total 10000, got %v", totalUSD)
		}

		var bucketSum, pctSum float64
		for _, entry := range breakdown {
			bucketSum += entry.ValueUSD
			pctSum += entry.Percentage
		}
		if bucketSum != totalUSD {
			t.Errorf("Bucket sum %v does not equal total %v", bucketSum, totalUSD)
		}
		if !almostEqual(pctSum, 100) {
			t.Errorf("Percentages sum to %v, expected 100", pctSum)
		}

		if breakdown[model.AssetTypeStock].Percentage != 80 {
			t.Errorf("Expected stocks at 80%%, got %v", breakdown[model.AssetTypeStock].Percentage)
		}
		if len(breakdown[model.AssetTypeStock].Assets) != 2 {
			t.Errorf("Expected 2 assets in the stock bucket, got %d", len(breakdown[model.AssetTypeStock].Assets))
		}
	})

	t.Run("unknown values contribute zero", func(t *testing.T) {
		assets := []model.ValuedAsset{
			valuedAsset("m1", model.AssetTypeCash, testutil.Float64Ptr(500)),
			valuedAsset("c1", model.AssetTypeCrypto, nil),
		}

		totalUSD, totalAMD, breakdown := service.Aggregate(assets)

		if totalUSD != 500 || totalAMD != 0 {
			t.Errorf("Expected totals (500, 0), got (%v, %v)", totalUSD, totalAMD)
		}

		// The unknown asset still appears in its bucket at zero.
		crypto := breakdown[model.AssetTypeCrypto]
		if len(crypto.Assets) != 1 || crypto.ValueUSD != 0 {
			t.Errorf("Expected zero-valued crypto bucket with 1 asset, got %+v", crypto)
		}
	})

	t.Run("empty portfolio aggregates to zeros", func(t *testing.T) {
		totalUSD, totalAMD, breakdown := service.Aggregate(nil)

		if totalUSD != 0 || totalAMD != 0 || len(breakdown) != 0 {
			t.Errorf("Expected empty aggregation, got (%v, %v, %+v)", totalUSD, totalAMD, breakdown)
		}
	})
}

// TestSnapshotService_CreateSnapshot tests snapshot persistence.
//
// WHY: Snapshots are keyed by calendar date. Taking two snapshots on the same
// day must leave exactly one row holding the later values, and the stored
// breakdown must survive the JSON round trip intact.
func TestSnapshotService_CreateSnapshot(t *testing.T) {
	t.Run("same day snapshots overwrite", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db, &testutil.StubEquityProvider{}, &testutil.StubCryptoProvider{}, usdAmd400)

		testutil.NewAsset().WithQuantity(1000).Build(t, db)

		first, err := svc.CreateSnapshot()
		if err != nil {
			t.Fatalf("CreateSnapshot() returned unexpected error: %v", err)
		}
		if first.TotalValueUSD != 1000 {
			t.Fatalf("Expected snapshot total 1000, got %v", first.TotalValueUSD)
		}

		// A second asset arrives and the snapshot is retaken the same day.
		testutil.NewAsset().WithName("More cash").WithQuantity(500).Build(t, db)

		second, err := svc.CreateSnapshot()
		if err != nil {
			t.Fatalf("CreateSnapshot() returned unexpected error: %v", err)
		}
		if second.TotalValueUSD != 1500 {
			t.Errorf("Expected overwritten total 1500, got %v", second.TotalValueUSD)
		}

		snapshots, err := svc.List(0)
		if err != nil {
			t.Fatalf("List() returned unexpected error: %v", err)
		}
		if len(snapshots) != 1 {
			t.Errorf("Expected a single row for the date, got %d", len(snapshots))
		}
	})

	t.Run("breakdown round trips through storage", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db, &testutil.StubEquityProvider{}, &testutil.StubCryptoProvider{}, usdAmd400)

		asset := testutil.NewAsset().WithQuantity(1000).Build(t, db)

		if _, err := svc.CreateSnapshot(); err != nil {
			t.Fatalf("CreateSnapshot() returned unexpected error: %v", err)
		}

		snapshots, err := svc.List(0)
		if err != nil {
			t.Fatalf("List() returned unexpected error: %v", err)
		}
		if len(snapshots) != 1 {
			t.Fatalf("Expected 1 snapshot, got %d", len(snapshots))
		}

		cash := snapshots[0].Breakdown[model.AssetTypeCash]
		if cash.ValueUSD != 1000 || cash.Percentage != 100 {
			t.Errorf("Breakdown did not round trip: %+v", cash)
		}
		if len(cash.Assets) != 1 || cash.Assets[0].ID != asset.ID {
			t.Errorf("Expected the asset inside its bucket, got %+v", cash.Assets)
		}
	})
}

// TestSnapshotService_Stats tests the dashboard summary.
//
// WHY: Stats sum only known gains and count every asset, priced or not, so
// the dashboard reflects holdings rather than data availability.
func TestSnapshotService_Stats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSnapshotService(t, db, &testutil.StubEquityProvider{}, &testutil.StubCryptoProvider{}, usdAmd400)

	testutil.NewAsset().WithQuantity(800).Build(t, db)
	testutil.NewAsset().
		WithName("Unpriced coin").
		WithType(model.AssetTypeCrypto).
		WithAPIID("unknown-coin").
		WithQuantity(1).
		Build(t, db)

	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("Stats() returned unexpected error: %v", err)
	}

	if stats.AssetCount != 2 {
		t.Errorf("Expected 2 assets counted, got %d", stats.AssetCount)
	}
	if stats.TotalValueUSD != 800 {
		t.Errorf("Expected total 800, got %v", stats.TotalValueUSD)
	}
	if stats.ByType[model.AssetTypeCrypto].Count != 1 {
		t.Errorf("Expected the unpriced asset counted in its class, got %+v", stats.ByType)
	}
	if stats.ByType[model.AssetTypeCash].Percentage != 100 {
		t.Errorf("Expected cash at 100%% of known value, got %v", stats.ByType[model.AssetTypeCash].Percentage)
	}
}
