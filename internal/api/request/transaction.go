package request

// CreateTransactionRequest represents the request body for recording a
// transaction against an asset
type CreateTransactionRequest struct {
	AssetID      string   `json:"assetId"`
	Type         string   `json:"type"`
	Quantity     *float64 `json:"quantity,omitempty"`
	PricePerUnit *float64 `json:"pricePerUnit,omitempty"`
	TotalValue   float64  `json:"totalValue"`
	Currency     string   `json:"currency"`
	Date         string   `json:"date"`
	Notes        *string  `json:"notes,omitempty"`
}
