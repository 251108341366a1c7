package service

import (
	"log"
	"time"
)

// CostBasisService computes split/dilution-adjusted purchase prices for
// tradeable securities.
type CostBasisService struct {
	history EquityHistoryProvider
}

// NewCostBasisService creates a CostBasisService backed by the given equity
// history provider.
func NewCostBasisService(history EquityHistoryProvider) *CostBasisService {
	return &CostBasisService{history: history}
}

// AdjustedPurchase returns the purchase price rescaled to present
// share-equivalent terms, together with the split factor
// (adjustedClose/rawClose at the purchase date).
//
// A raw per-share price the user entered at purchase time is scaled by the
// same factor that converts that date's raw close into today's
// share-equivalent value, so comparing it against today's (also
// split-adjusted) market price is apples-to-apples. When no purchase price
// was entered, the historical adjusted close itself is used, treating an
// unknown entry price as "market price at purchase date".
//
// Returns nil when historical data is unavailable for any reason, including
// a transient provider failure. Callers then fall back to the raw,
// unadjusted purchase price. The adjustment is recomputed on every
// valuation and never cached, so a failure on one pass can understate or
// overstate gain/loss until a later pass succeeds; that inconsistency is
// accepted in exchange for never persisting a possibly-wrong correction.
func (s *CostBasisService) AdjustedPurchase(ticker, purchaseDate string, purchasePrice *float64) (adjusted, splitFactor *float64) {
	date, err := time.Parse("2006-01-02", purchaseDate)
	if err != nil {
		log.Printf("invalid purchase date %q for %s: %v", purchaseDate, ticker, err)
		return nil, nil
	}

	historical, err := s.history.HistoricalClose(ticker, date)
	if err != nil {
		log.Printf("historical close unavailable for %s at %s: %v", ticker, purchaseDate, err)
		return nil, nil
	}
	if historical == nil {
		return nil, nil
	}

	factor := historical.SplitFactor

	var price float64
	if purchasePrice != nil {
		price = *purchasePrice * factor
	} else {
		price = historical.AdjustedClose
	}

	return &price, &factor
}
