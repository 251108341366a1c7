package model

import "time"

// TransactionType identifies what a transaction did to the holding.
type TransactionType string

const (
	TransactionBuy             TransactionType = "buy"
	TransactionSell            TransactionType = "sell"
	TransactionDeposit         TransactionType = "deposit"
	TransactionWithdraw        TransactionType = "withdraw"
	TransactionValuationUpdate TransactionType = "valuation_update"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionBuy, TransactionSell, TransactionDeposit,
		TransactionWithdraw, TransactionValuationUpdate:
		return true
	}
	return false
}

// Transaction records a change to a holding. Buy/sell transactions also
// adjust the asset's quantity; valuation_update rewrites its estimated value.
type Transaction struct {
	ID           string          `json:"id"`
	AssetID      string          `json:"assetId"`
	Type         TransactionType `json:"type"`
	Quantity     *float64        `json:"quantity"`
	PricePerUnit *float64        `json:"pricePerUnit"`
	TotalValue   float64         `json:"totalValue"`
	Currency     string          `json:"currency"`
	Date         string          `json:"date"` // YYYY-MM-DD
	Notes        *string         `json:"notes"`
	CreatedAt    time.Time       `json:"createdAt"`
}
