package model

// BreakdownAsset is one asset's contribution inside a snapshot bucket.
type BreakdownAsset struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ValueUSD float64 `json:"valueUsd"`
	ValueAMD float64 `json:"valueAmd"`
}

// BreakdownEntry is a per-asset-class bucket inside a snapshot.
type BreakdownEntry struct {
	ValueUSD   float64          `json:"valueUsd"`
	ValueAMD   float64          `json:"valueAmd"`
	Percentage float64          `json:"percentage"`
	Assets     []BreakdownAsset `json:"assets"`
}

// PortfolioBreakdown maps asset class to its bucket. The map serializes to
// the breakdown_json column and must round-trip unchanged.
type PortfolioBreakdown map[AssetType]BreakdownEntry

// PortfolioSnapshot is a dated record of total portfolio value and its
// breakdown. One row exists per calendar date; re-snapshotting the same date
// overwrites the previous row.
type PortfolioSnapshot struct {
	ID            string             `json:"id"`
	Date          string             `json:"date"` // YYYY-MM-DD
	TotalValueUSD float64            `json:"totalValueUsd"`
	TotalValueAMD float64            `json:"totalValueAmd"`
	Breakdown     PortfolioBreakdown `json:"breakdown"`
}

// PortfolioStats summarizes the current portfolio for the dashboard.
type PortfolioStats struct {
	TotalValueUSD    float64                 `json:"totalValueUsd"`
	TotalValueAMD    float64                 `json:"totalValueAmd"`
	TotalGainLossUSD float64                 `json:"totalGainLossUsd"`
	AssetCount       int                     `json:"assetCount"`
	ByType           map[AssetType]TypeStats `json:"byType"`
}

// TypeStats is the per-class slice of PortfolioStats.
type TypeStats struct {
	ValueUSD   float64 `json:"valueUsd"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}
