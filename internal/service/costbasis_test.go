package service_test

import (
	"errors"
	"testing"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/service"
	"github.com/YuriRomanenkou/portfolio-manager/internal/testutil"
)

// TestCostBasisService_AdjustedPurchase tests the split-adjusted cost basis.
//
// WHY: The split factor rescales the user's entered purchase price into
// today's share-equivalent terms. A 2:1 split since purchase halves the
// effective per-share basis; getting the direction wrong would double
// reported gains instead of preserving them.
func TestCostBasisService_AdjustedPurchase(t *testing.T) {
	t.Run("scales the entered price by the split factor", func(t *testing.T) {
		// Raw close 50 vs adjusted close 25 means a 2:1 split happened
		// after the purchase date: factor 0.5.
		equity := &testutil.StubEquityProvider{
			History: map[string]model.HistoricalClose{
				"AAPL": {AdjustedClose: 25, RawClose: 50, SplitFactor: 0.5},
			},
		}
		svc := service.NewCostBasisService(equity)

		adjusted, factor := svc.AdjustedPurchase("AAPL", "2020-01-15", testutil.Float64Ptr(100))

		if adjusted == nil || factor == nil {
			t.Fatal("Expected adjusted price and factor, got nil")
		}
		if *adjusted != 50 {
			t.Errorf("Expected adjusted price 50, got %v", *adjusted)
		}
		if *factor != 0.5 {
			t.Errorf("Expected split factor 0.5, got %v", *factor)
		}
	})

	t.Run("uses the adjusted close when no price was entered", func(t *testing.T) {
		equity := &testutil.StubEquityProvider{
			History: map[string]model.HistoricalClose{
				"AAPL": {AdjustedClose: 25, RawClose: 50, SplitFactor: 0.5},
			},
		}
		svc := service.NewCostBasisService(equity)

		adjusted, factor := svc.AdjustedPurchase("AAPL", "2020-01-15", nil)

		if adjusted == nil || *adjusted != 25 {
			t.Fatalf("Expected adjusted close 25 as basis, got %v", adjusted)
		}
		if factor == nil || *factor != 0.5 {
			t.Errorf("Expected factor 0.5, got %v", factor)
		}
	})

	t.Run("unknown ticker yields absent, not zero", func(t *testing.T) {
		svc := service.NewCostBasisService(&testutil.StubEquityProvider{})

		adjusted, factor := svc.AdjustedPurchase("NOPE", "2020-01-15", testutil.Float64Ptr(100))

		if adjusted != nil || factor != nil {
			t.Errorf("Expected (nil, nil) for unknown ticker, got (%v, %v)", adjusted, factor)
		}
	})

	t.Run("provider failure degrades to absent", func(t *testing.T) {
		equity := &testutil.StubEquityProvider{Err: errors.New("rate limited")}
		svc := service.NewCostBasisService(equity)

		adjusted, factor := svc.AdjustedPurchase("AAPL", "2020-01-15", testutil.Float64Ptr(100))

		if adjusted != nil || factor != nil {
			t.Errorf("Expected (nil, nil) on provider failure, got (%v, %v)", adjusted, factor)
		}
	})

	t.Run("malformed purchase date yields absent", func(t *testing.T) {
		equity := &testutil.StubEquityProvider{
			History: map[string]model.HistoricalClose{
				"AAPL": {AdjustedClose: 25, RawClose: 50, SplitFactor: 0.5},
			},
		}
		svc := service.NewCostBasisService(equity)

		adjusted, factor := svc.AdjustedPurchase("AAPL", "15/01/2020", testutil.Float64Ptr(100))

		if adjusted != nil || factor != nil {
			t.Errorf("Expected (nil, nil) for malformed date, got (%v, %v)", adjusted, factor)
		}
		if equity.Calls != 0 {
			t.Errorf("Malformed date must not reach the provider, got %d calls", equity.Calls)
		}
	})
}
