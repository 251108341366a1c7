package testutil

import (
	"time"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
)

// StubEquityProvider is an in-memory stand-in for the Yahoo Finance client.
// It serves quotes, historical closes, and search results from fixed maps
// instead of making API calls.
type StubEquityProvider struct {
	// Quotes maps symbol to its current quote.
	Quotes map[string]model.PriceQuote
	// History maps symbol to the historical close returned for any date.
	History map[string]model.HistoricalClose
	// Results is returned from Search.
	Results []model.SearchResult
	// Err, when set, is returned from every method.
	Err error
	// Calls tracks how many provider calls were made.
	Calls int
}

// CurrentPrice returns the configured quote, or nil for an unknown symbol.
func (p *StubEquityProvider) CurrentPrice(symbol string) (*model.PriceQuote, error) {
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}
	if quote, ok := p.Quotes[symbol]; ok {
		return &quote, nil
	}
	return nil, nil
}

// HistoricalClose returns the configured close for the symbol regardless of
// date, or nil for an unknown symbol.
func (p *StubEquityProvider) HistoricalClose(symbol string, _ time.Time) (*model.HistoricalClose, error) {
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}
	if close, ok := p.History[symbol]; ok {
		return &close, nil
	}
	return nil, nil
}

// Search returns the configured results.
func (p *StubEquityProvider) Search(_ string) ([]model.SearchResult, error) {
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Results, nil
}

// StubCryptoProvider is an in-memory stand-in for the CoinGecko client.
type StubCryptoProvider struct {
	// Quotes maps coin ID to its current quote.
	Quotes map[string]model.PriceQuote
	// Results is returned from Search.
	Results []model.SearchResult
	// Err, when set, is returned from every method.
	Err error
	// Calls tracks how many provider calls were made.
	Calls int
}

// SimplePrices returns the configured quotes for the requested IDs. IDs with
// no configured quote are absent from the result.
func (p *StubCryptoProvider) SimplePrices(coinIDs []string) (map[string]model.PriceQuote, error) {
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}
	result := make(map[string]model.PriceQuote)
	for _, id := range coinIDs {
		if quote, ok := p.Quotes[id]; ok {
			result[id] = quote
		}
	}
	return result, nil
}

// Search returns the configured results.
func (p *StubCryptoProvider) Search(_ string) ([]model.SearchResult, error) {
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Results, nil
}

// StubFXProvider is an in-memory stand-in for the exchange rate client.
type StubFXProvider struct {
	// Rates maps base currency to its target rate table.
	RatesByBase map[string]map[string]float64
	// Err, when set, is returned from Rates.
	Err error
	// Calls tracks how many provider calls were made.
	Calls int
}

// Rates returns the configured table for the base, or an empty map.
func (p *StubFXProvider) Rates(base string) (map[string]float64, error) {
	p.Calls++
	if p.Err != nil {
		return map[string]float64{}, p.Err
	}
	if rates, ok := p.RatesByBase[base]; ok {
		return rates, nil
	}
	return map[string]float64{}, nil
}
