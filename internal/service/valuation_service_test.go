package service_test

import (
	"math"
	"testing"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/repository"
	"github.com/YuriRomanenkou/portfolio-manager/internal/testutil"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

var usdAmd400 = &testutil.StubFXProvider{
	RatesByBase: map[string]map[string]float64{
		"USD": {"AMD": 400},
	},
}

// TestValuationService_Cash tests cash valuation.
//
// WHY: Cash is the identity case of the pipeline: one unit of USD cash is
// worth exactly 1 USD, and the AMD leg comes from the current rate. Getting
// this wrong skews every aggregate downstream.
func TestValuationService_Cash(t *testing.T) {
	t.Run("USD cash values at par with an AMD leg", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db, &testutil.StubEquityProvider{}, &testutil.StubCryptoProvider{}, usdAmd400)

		asset := testutil.NewAsset().WithQuantity(1000).Build(t, db)

		valued := svc.ValueAsset(asset)

		if valued.TotalValueUSD == nil || *valued.TotalValueUSD != 1000 {
			t.Fatalf("Expected 1000 USD, got %v", valued.TotalValueUSD)
		}
		if valued.TotalValueAMD == nil || *valued.TotalValueAMD != 400000 {
			t.Fatalf("Expected 400000 AMD, got %v", valued.TotalValueAMD)
		}
		if valued.CurrentPriceUSD == nil || *valued.CurrentPriceUSD != 1 {
			t.Errorf("Expected unit price 1 USD, got %v", valued.CurrentPriceUSD)
		}
	})

	t.Run("foreign cash converts through the rate table", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		fx := &testutil.StubFXProvider{
			RatesByBase: map[string]map[string]float64{
				"USD": {"AMD": 400},
				"EUR": {"USD": 1.1},
			},
		}
		svc := testutil.NewTestValuationService(t, db, &testutil.StubEquityProvider{}, &testutil.StubCryptoProvider{}, fx)

		asset := testutil.NewAsset().WithQuantity(100).WithCurrencyCode("EUR").Build(t, db)

		valued := svc.ValueAsset(asset)

		if valued.TotalValueUSD == nil || !almostEqual(*valued.TotalValueUSD, 110) {
			t.Fatalf("Expected 110 USD for 100 EUR, got %v", valued.TotalValueUSD)
		}
	})
}

// TestValuationService_AbsenceSemantics tests that unresolved prices degrade
// to absent fields.
//
// WHY: Absent means unknown, never zero. A crypto asset with no cached or
// persisted price must value to nil so the aggregator can distinguish "no
// data" from "worthless", and one unpriceable asset must not abort the rest.
func TestValuationService_AbsenceSemantics(t *testing.T) {
	t.Run("unpriced crypto stays absent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db, &testutil.StubEquityProvider{}, &testutil.StubCryptoProvider{}, usdAmd400)

		asset := testutil.NewAsset().
			WithType(model.AssetTypeCrypto).
			WithAPIID("bitcoin").
			WithQuantity(2).
			Build(t, db)

		valued := svc.ValueAsset(asset)

		if valued.CurrentPriceUSD != nil || valued.TotalValueUSD != nil || valued.GainLossUSD != nil {
			t.Errorf("Expected all derived fields absent, got %+v", valued)
		}
	})

	t.Run("one unpriceable asset does not abort the others", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db, &testutil.StubEquityProvider{}, &testutil.StubCryptoProvider{}, usdAmd400)

		testutil.NewAsset().WithName("Cash").WithQuantity(500).Build(t, db)
		testutil.NewAsset().
			WithName("Mystery coin").
			WithType(model.AssetTypeCrypto).
			WithAPIID("unknown-coin").
			WithQuantity(1).
			Build(t, db)

		valued, err := svc.ValueAssets()
		if err != nil {
			t.Fatalf("ValueAssets() returned unexpected error: %v", err)
		}
		if len(valued) != 2 {
			t.Fatalf("Expected 2 valued assets, got %d", len(valued))
		}

		priced := 0
		for _, v := range valued {
			if v.TotalValueUSD != nil {
				priced++
			}
		}
		if priced != 1 {
			t.Errorf("Expected exactly 1 priced asset, got %d", priced)
		}
	})
}

// TestValuationService_PersistedPrice tests valuation from stored history.
//
// WHY: Valuation never calls quote providers directly; with a cold cache the
// last persisted price is the source of truth. This keeps the read path fast
// and provider outages invisible to dashboards.
func TestValuationService_PersistedPrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestValuationService(t, db, &testutil.StubEquityProvider{}, &testutil.StubCryptoProvider{}, usdAmd400)

	asset := testutil.NewAsset().
		WithType(model.AssetTypeCrypto).
		WithAPIID("bitcoin").
		WithQuantity(0.5).
		Build(t, db)

	priceRepo := repository.NewPriceHistoryRepository(db)
	if err := priceRepo.Upsert(asset.ID, 60000, testutil.Float64Ptr(24000000), "2025-08-28", "coingecko"); err != nil {
		t.Fatalf("Failed to seed price history: %v", err)
	}

	valued := svc.ValueAsset(asset)

	if valued.TotalValueUSD == nil || *valued.TotalValueUSD != 30000 {
		t.Fatalf("Expected 30000 USD from persisted price, got %v", valued.TotalValueUSD)
	}
	if valued.TotalValueAMD == nil || *valued.TotalValueAMD != 12000000 {
		t.Errorf("Expected 12000000 AMD, got %v", valued.TotalValueAMD)
	}
}

// TestValuationService_GainLoss tests both cost basis paths.
//
// WHY: Securities with a purchase date use the split-adjusted basis so a 2:1
// split does not masquerade as a 50% loss; everything else falls back to the
// raw purchase price. A basis that cannot be established leaves gain/loss
// absent rather than zero.
func TestValuationService_GainLoss(t *testing.T) {
	t.Run("security uses the split adjusted basis", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		equity := &testutil.StubEquityProvider{
			History: map[string]model.HistoricalClose{
				"AAPL": {AdjustedClose: 25, RawClose: 50, SplitFactor: 0.5},
			},
		}
		svc := testutil.NewTestValuationService(t, db, equity, &testutil.StubCryptoProvider{}, usdAmd400)

		asset := testutil.NewAsset().
			WithType(model.AssetTypeStock).
			WithTicker("AAPL").
			WithQuantity(10).
			WithPurchase(100, "2020-01-15").
			Build(t, db)

		priceRepo := repository.NewPriceHistoryRepository(db)
		if err := priceRepo.Upsert(asset.ID, 200, nil, "2025-08-28", "yahoo"); err != nil {
			t.Fatalf("Failed to seed price history: %v", err)
		}

		valued := svc.ValueAsset(asset)

		if valued.AdjustedPurchasePrice == nil || *valued.AdjustedPurchasePrice != 50 {
			t.Fatalf("Expected adjusted purchase price 50, got %v", valued.AdjustedPurchasePrice)
		}
		if valued.SplitFactor == nil || *valued.SplitFactor != 0.5 {
			t.Errorf("Expected split factor 0.5, got %v", valued.SplitFactor)
		}
		// Value 10 * 200 = 2000 against a basis of 10 * 50 = 500.
		if valued.GainLossUSD == nil || *valued.GainLossUSD != 1500 {
			t.Fatalf("Expected gain 1500, got %v", valued.GainLossUSD)
		}
		if valued.GainLossPercent == nil || *valued.GainLossPercent != 300 {
			t.Errorf("Expected gain 300%%, got %v", valued.GainLossPercent)
		}
	})

	t.Run("security falls back to the raw price when history is unavailable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db, &testutil.StubEquityProvider{}, &testutil.StubCryptoProvider{}, usdAmd400)

		asset := testutil.NewAsset().
			WithType(model.AssetTypeStock).
			WithTicker("AAPL").
			WithQuantity(10).
			WithPurchase(100, "2020-01-15").
			Build(t, db)

		priceRepo := repository.NewPriceHistoryRepository(db)
		if err := priceRepo.Upsert(asset.ID, 150, nil, "2025-08-28", "yahoo"); err != nil {
			t.Fatalf("Failed to seed price history: %v", err)
		}

		valued := svc.ValueAsset(asset)

		if valued.AdjustedPurchasePrice != nil {
			t.Errorf("Expected no adjusted price without history, got %v", *valued.AdjustedPurchasePrice)
		}
		// Raw basis 10 * 100 = 1000 against value 1500.
		if valued.GainLossUSD == nil || *valued.GainLossUSD != 500 {
			t.Fatalf("Expected gain 500 from raw basis, got %v", valued.GainLossUSD)
		}
	})

	t.Run("manual asset compares estimate against purchase price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db, &testutil.StubEquityProvider{}, &testutil.StubCryptoProvider{}, usdAmd400)

		asset := testutil.NewAsset().
			WithType(model.AssetTypeRealEstate).
			WithEstimatedValue(100000, "USD").
			WithPurchase(80000, "2018-06-01").
			Build(t, db)
		asset.Quantity = nil

		valued := svc.ValueAsset(asset)

		if valued.TotalValueUSD == nil || *valued.TotalValueUSD != 100000 {
			t.Fatalf("Expected estimate 100000 USD, got %v", valued.TotalValueUSD)
		}
		if valued.GainLossUSD == nil || *valued.GainLossUSD != 20000 {
			t.Fatalf("Expected gain 20000, got %v", valued.GainLossUSD)
		}
		if valued.GainLossPercent == nil || *valued.GainLossPercent != 25 {
			t.Errorf("Expected gain 25%%, got %v", valued.GainLossPercent)
		}
	})

	t.Run("zero purchase price leaves gain absent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db, &testutil.StubEquityProvider{}, &testutil.StubCryptoProvider{}, usdAmd400)

		asset := testutil.NewAsset().WithQuantity(1000).Build(t, db)
		asset.PurchasePrice = testutil.Float64Ptr(0)

		valued := svc.ValueAsset(asset)

		if valued.GainLossUSD != nil {
			t.Errorf("Expected absent gain for zero basis, got %v", *valued.GainLossUSD)
		}
	})
}
