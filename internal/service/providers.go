package service

import (
	"time"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
)

// EquityQuoteProvider supplies current prices and symbol search for
// securities (stocks, ETFs, bonds). An unknown symbol yields a nil quote,
// never an error.
type EquityQuoteProvider interface {
	CurrentPrice(symbol string) (*model.PriceQuote, error)
	Search(query string) ([]model.SearchResult, error)
}

// EquityHistoryProvider supplies raw and split-adjusted closing prices at a
// historical date. A date with no trading data yields nil, never an error.
type EquityHistoryProvider interface {
	HistoricalClose(symbol string, date time.Time) (*model.HistoricalClose, error)
}

// CryptoQuoteProvider supplies batched crypto prices and coin search. The
// price result maps coin ID to quote; IDs the provider did not return are
// missing from the map rather than silently dropped from a list.
type CryptoQuoteProvider interface {
	SimplePrices(coinIDs []string) (map[string]model.PriceQuote, error)
	Search(query string) ([]model.SearchResult, error)
}

// FXProvider supplies the mapping of target currency to rate for a base
// currency. The mapping is empty on failure.
type FXProvider interface {
	Rates(base string) (map[string]float64, error)
}
