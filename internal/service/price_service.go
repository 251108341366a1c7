package service

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/repository"
)

// PriceService owns price acquisition: the refresh pass that fans out to the
// quote providers and fills the cache and price history, and the read-time
// resolution of a current price for a single asset.
//
// A full refresh fetches all provider data and updates the cache before any
// valuation reads it, so every asset valued within one pass observes a
// consistent snapshot of prices. The valuation-time CurrentPrice never calls
// a quote provider for tradeable assets; it reads the cache or falls back to
// the last persisted price.
type PriceService struct {
	cache    *QuoteCache
	currency *CurrencyService
	equity   EquityQuoteProvider
	crypto   CryptoQuoteProvider
	fx       FXProvider

	assetRepo *repository.AssetRepository
	priceRepo *repository.PriceHistoryRepository
	fxRepo    *repository.ExchangeRateRepository

	now func() time.Time
}

// NewPriceService creates a PriceService with the given providers and stores.
func NewPriceService(
	cache *QuoteCache,
	currency *CurrencyService,
	equity EquityQuoteProvider,
	crypto CryptoQuoteProvider,
	fx FXProvider,
	assetRepo *repository.AssetRepository,
	priceRepo *repository.PriceHistoryRepository,
	fxRepo *repository.ExchangeRateRepository,
) *PriceService {
	return &PriceService{
		cache:     cache,
		currency:  currency,
		equity:    equity,
		crypto:    crypto,
		fx:        fx,
		assetRepo: assetRepo,
		priceRepo: priceRepo,
		fxRepo:    fxRepo,
		now:       time.Now,
	}
}

// RefreshAll re-prices every active tradeable asset and refreshes the
// persisted exchange rates. Crypto and security quotes are fetched
// concurrently so a slow provider for one class never stalls the other.
// Provider failures are logged and degrade individual quotes to absent;
// only storage failures are returned.
func (s *PriceService) RefreshAll() error {
	assets, err := s.assetRepo.ListActive()
	if err != nil {
		return fmt.Errorf("failed to list assets for refresh: %w", err)
	}

	var cryptoAssets, securityAssets []model.Asset
	for _, a := range assets {
		switch {
		case a.AssetType == model.AssetTypeCrypto && a.APIID != nil:
			cryptoAssets = append(cryptoAssets, a)
		case a.AssetType.IsSecurity() && a.Ticker != nil:
			securityAssets = append(securityAssets, a)
		}
	}

	var g errgroup.Group

	g.Go(func() error { return s.refreshCrypto(cryptoAssets) })
	g.Go(func() error { return s.refreshSecurities(securityAssets) })
	g.Go(func() error { return s.refreshExchangeRates() })

	return g.Wait()
}

func (s *PriceService) refreshCrypto(assets []model.Asset) error {
	if len(assets) == 0 {
		return nil
	}

	coinIDs := make([]string, 0, len(assets))
	for _, a := range assets {
		coinIDs = append(coinIDs, *a.APIID)
	}

	quotes, err := s.crypto.SimplePrices(coinIDs)
	if err != nil {
		log.Printf("crypto quote refresh failed: %v", err)
	}

	amdRate := s.currency.UsdAmdRate()
	today := s.today()

	for _, a := range assets {
		quote, ok := quotes[*a.APIID]
		if !ok {
			// Not returned by the provider; the previous cache entry (if
			// any) stays until it goes stale.
			continue
		}

		amd := quote.PriceUSD * amdRate
		quote.PriceAMD = &amd
		s.cache.Put(model.AssetTypeCrypto, *a.APIID, quote)

		if err := s.priceRepo.Upsert(a.ID, quote.PriceUSD, quote.PriceAMD, today, quote.Source); err != nil {
			return err
		}
	}

	return nil
}

func (s *PriceService) refreshSecurities(assets []model.Asset) error {
	if len(assets) == 0 {
		return nil
	}

	amdRate := s.currency.UsdAmdRate()
	today := s.today()

	for _, a := range assets {
		quote, err := s.equity.CurrentPrice(*a.Ticker)
		if err != nil {
			log.Printf("equity quote refresh failed for %s: %v", *a.Ticker, err)
			continue
		}
		if quote == nil {
			continue
		}

		amd := quote.PriceUSD * amdRate
		q := *quote
		q.PriceAMD = &amd
		s.cache.Put(a.AssetType, *a.Ticker, q)

		if err := s.priceRepo.Upsert(a.ID, q.PriceUSD, q.PriceAMD, today, q.Source); err != nil {
			return err
		}
	}

	return nil
}

func (s *PriceService) refreshExchangeRates() error {
	rates, err := s.fx.Rates("USD")
	if err != nil {
		log.Printf("exchange rate refresh failed: %v", err)
		return nil
	}

	today := s.today()
	for currency, rate := range rates {
		if err := s.fxRepo.Upsert("USD", currency, rate, today, "exchangerate-api"); err != nil {
			return err
		}
	}

	return nil
}

// CurrentPrice resolves the current price for a cash or tradeable asset at
// valuation time. For cash the price is 1 unit of its own currency,
// converted into USD and AMD. For tradeable assets only the cache and the
// persisted price history are consulted; no provider call happens here.
// Manually-valued classes have no price and always resolve to nil.
//
// Returns nil whenever the price is unobtainable; callers must propagate the
// absence instead of coercing it to zero.
func (s *PriceService) CurrentPrice(asset model.Asset) *model.PriceQuote {
	switch {
	case asset.AssetType == model.AssetTypeCash:
		return s.cashPrice(asset)

	case asset.AssetType == model.AssetTypeCrypto:
		if asset.APIID == nil {
			return nil
		}
		if quote, ok := s.cache.Get(model.AssetTypeCrypto, *asset.APIID); ok {
			return &quote
		}
		return s.lastPersistedPrice(asset.ID)

	case asset.AssetType.IsSecurity():
		if asset.Ticker == nil {
			return nil
		}
		if quote, ok := s.cache.Get(asset.AssetType, *asset.Ticker); ok {
			return &quote
		}
		return s.lastPersistedPrice(asset.ID)
	}

	return nil
}

func (s *PriceService) cashPrice(asset model.Asset) *model.PriceQuote {
	currencyCode := "USD"
	if asset.CurrencyCode != nil {
		currencyCode = *asset.CurrencyCode
	}

	amdRate := s.currency.UsdAmdRate()

	if currencyCode == "USD" {
		return &model.PriceQuote{
			PriceUSD:  1,
			PriceAMD:  &amdRate,
			Source:    "fixed",
			UpdatedAt: s.now().UTC(),
		}
	}

	usdRate, ok := s.currency.RateToUsd(currencyCode)
	if !ok {
		return nil
	}

	amd := usdRate * amdRate
	return &model.PriceQuote{
		PriceUSD:  usdRate,
		PriceAMD:  &amd,
		Source:    "exchangerate-api",
		UpdatedAt: s.now().UTC(),
	}
}

func (s *PriceService) lastPersistedPrice(assetID string) *model.PriceQuote {
	last, err := s.priceRepo.LatestByAsset(assetID)
	if err != nil {
		log.Printf("failed to read persisted price for asset %s: %v", assetID, err)
		return nil
	}
	if last == nil {
		return nil
	}

	updatedAt, err := repository.ParseTime(last.Date)
	if err != nil {
		updatedAt = time.Time{}
	}

	return &model.PriceQuote{
		PriceUSD:  last.PriceUSD,
		PriceAMD:  last.PriceAMD,
		Source:    last.Source,
		UpdatedAt: updatedAt,
	}
}

// History returns up to limit persisted price records for an asset, newest
// first.
func (s *PriceService) History(assetID string, limit int) ([]model.PriceHistory, error) {
	if limit <= 0 {
		limit = 365
	}
	return s.priceRepo.ListByAsset(assetID, limit)
}

// Search fans out a ticker/coin search. An explicit asset type narrows the
// search to the matching provider; otherwise both providers are queried and
// the merged list is capped at fifteen results.
func (s *PriceService) Search(query string, assetType model.AssetType) ([]model.SearchResult, error) {
	switch {
	case assetType == model.AssetTypeCrypto:
		return s.crypto.Search(query)
	case assetType.IsSecurity():
		return s.equity.Search(query)
	}

	stockResults, stockErr := s.equity.Search(query)
	cryptoResults, cryptoErr := s.crypto.Search(query)

	if stockErr != nil && cryptoErr != nil {
		return nil, fmt.Errorf("search failed: %w", stockErr)
	}
	if stockErr != nil {
		log.Printf("equity search failed: %v", stockErr)
	}
	if cryptoErr != nil {
		log.Printf("crypto search failed: %v", cryptoErr)
	}

	merged := append(stockResults, cryptoResults...)
	if len(merged) > 15 {
		merged = merged[:15]
	}
	return merged, nil
}

func (s *PriceService) today() string {
	return s.now().UTC().Format("2006-01-02")
}
