package service

import (
	"fmt"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/repository"
)

// ValuationService reduces stored assets to valued views: current price,
// total value in both display currencies, and gain/loss against a
// split-adjusted cost basis.
type ValuationService struct {
	prices    *PriceService
	currency  *CurrencyService
	costBasis *CostBasisService
	assetRepo *repository.AssetRepository
}

// NewValuationService creates a ValuationService.
func NewValuationService(
	prices *PriceService,
	currency *CurrencyService,
	costBasis *CostBasisService,
	assetRepo *repository.AssetRepository,
) *ValuationService {
	return &ValuationService{
		prices:    prices,
		currency:  currency,
		costBasis: costBasis,
		assetRepo: assetRepo,
	}
}

// ValueAssets values every active asset. One asset's unresolved price or
// rate leaves only that asset's derived fields absent; it never aborts the
// valuation of the others.
func (s *ValuationService) ValueAssets() ([]model.ValuedAsset, error) {
	assets, err := s.assetRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list assets for valuation: %w", err)
	}

	valued := make([]model.ValuedAsset, 0, len(assets))
	for _, a := range assets {
		valued = append(valued, s.ValueAsset(a))
	}

	return valued, nil
}

// ValueAsset computes the derived valuation fields for a single asset.
// Every failure mode degrades to absent fields; the method itself cannot
// fail.
func (s *ValuationService) ValueAsset(a model.Asset) model.ValuedAsset {
	v := model.ValuedAsset{Asset: a}

	switch {
	case a.AssetType.IsManuallyValued():
		s.valueManual(&v)
	default:
		s.valueQuoted(&v)
	}

	s.computeGainLoss(&v)

	return v
}

// valueQuoted handles cash and tradeable assets: resolve a per-unit price,
// then multiply by quantity.
func (s *ValuationService) valueQuoted(v *model.ValuedAsset) {
	price := s.prices.CurrentPrice(v.Asset)
	if price == nil {
		return
	}

	v.CurrentPriceUSD = &price.PriceUSD
	v.CurrentPriceAMD = price.PriceAMD

	qty := 0.0
	if v.Quantity != nil {
		qty = *v.Quantity
	}

	totalUSD := qty * price.PriceUSD
	v.TotalValueUSD = &totalUSD

	if price.PriceAMD != nil {
		totalAMD := qty * *price.PriceAMD
		v.TotalValueAMD = &totalAMD
	}
}

// valueManual handles manually-valued classes: the user's estimate converted
// from its stated currency into both display currencies. No estimate means
// no value.
func (s *ValuationService) valueManual(v *model.ValuedAsset) {
	if v.EstimatedValue == nil {
		return
	}

	valueCurrency := "USD"
	if v.ValueCurrency != nil {
		valueCurrency = *v.ValueCurrency
	}

	valueUSD, ok := s.currency.Convert(*v.EstimatedValue, valueCurrency, "USD")
	if !ok {
		return
	}

	valueAMD := valueUSD * s.currency.UsdAmdRate()

	v.TotalValueUSD = &valueUSD
	v.TotalValueAMD = &valueAMD
}

// computeGainLoss applies the two-path basis computation: the
// split-adjusted basis for tradeable assets with a purchase date, then the
// raw purchase price fallback. When neither path yields a positive basis the
// gain/loss stays absent; it is never reported as just "value" or zero.
func (s *ValuationService) computeGainLoss(v *model.ValuedAsset) {
	if v.TotalValueUSD == nil {
		return
	}

	qty := 1.0
	if v.Quantity != nil {
		qty = *v.Quantity
	}

	// Path 1: split/dilution-adjusted basis.
	if v.AssetType.IsSecurity() && v.Ticker != nil && v.PurchaseDate != nil {
		adjusted, factor := s.costBasis.AdjustedPurchase(*v.Ticker, *v.PurchaseDate, v.PurchasePrice)
		if adjusted != nil {
			v.AdjustedPurchasePrice = adjusted
			v.SplitFactor = factor

			if *adjusted > 0 {
				applyGainLoss(v, *adjusted*qty)
				return
			}
		}
	}

	// Path 2: raw, unadjusted purchase price.
	if v.PurchasePrice == nil || *v.PurchasePrice <= 0 {
		return
	}

	purchasePriceUSD := *v.PurchasePrice

	// For manually-valued assets the purchase price shares the estimate's
	// currency and has to be normalized before comparison.
	if v.AssetType.IsManuallyValued() && v.ValueCurrency != nil && *v.ValueCurrency != "USD" {
		converted, ok := s.currency.Convert(purchasePriceUSD, *v.ValueCurrency, "USD")
		if !ok {
			return
		}
		purchasePriceUSD = converted
	}

	applyGainLoss(v, purchasePriceUSD*qty)
}

func applyGainLoss(v *model.ValuedAsset, costBasis float64) {
	if costBasis <= 0 {
		return
	}

	gain := *v.TotalValueUSD - costBasis
	pct := gain / costBasis * 100

	v.GainLossUSD = &gain
	v.GainLossPercent = &pct
}
