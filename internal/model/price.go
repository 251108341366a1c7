package model

import "time"

// PriceQuote is a single price observation for an asset, expressed in USD and
// AMD. Quotes live either in the in-memory cache or, reduced to their price
// fields, in the price_history table.
type PriceQuote struct {
	PriceUSD     float64   `json:"priceUsd"`
	PriceAMD     *float64  `json:"priceAmd"`
	Change24hPct *float64  `json:"change24hPercent"`
	Source       string    `json:"source"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PriceHistory is a persisted price observation, keyed by (asset, date, source).
type PriceHistory struct {
	ID       string   `json:"id"`
	AssetID  string   `json:"assetId"`
	PriceUSD float64  `json:"priceUsd"`
	PriceAMD *float64 `json:"priceAmd"`
	Date     string   `json:"date"` // YYYY-MM-DD
	Source   string   `json:"source"`
}

// ExchangeRate is a persisted FX observation, keyed by (base, target, date).
type ExchangeRate struct {
	ID             string  `json:"id"`
	BaseCurrency   string  `json:"baseCurrency"`
	TargetCurrency string  `json:"targetCurrency"`
	Rate           float64 `json:"rate"`
	Date           string  `json:"date"` // YYYY-MM-DD
	Source         string  `json:"source"`
}

// HistoricalClose holds the raw and split-adjusted closing prices at (or
// shortly after) a given date, as returned by the equity history provider.
type HistoricalClose struct {
	AdjustedClose float64
	RawClose      float64
	// SplitFactor is AdjustedClose / RawClose.
	SplitFactor float64
}

// SearchResult is one match from a ticker or coin search.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Exchange string `json:"exchange,omitempty"`
}
