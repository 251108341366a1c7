package request

// CreateAssetRequest represents the request body for creating an asset
type CreateAssetRequest struct {
	Name           string   `json:"name"`
	AssetType      string   `json:"assetType"`
	Ticker         *string  `json:"ticker,omitempty"`
	APIID          *string  `json:"apiId,omitempty"`
	Quantity       *float64 `json:"quantity,omitempty"`
	EstimatedValue *float64 `json:"estimatedValue,omitempty"`
	ValueCurrency  *string  `json:"valueCurrency,omitempty"`
	PurchasePrice  *float64 `json:"purchasePrice,omitempty"`
	PurchaseDate   *string  `json:"purchaseDate,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	CurrencyCode   *string  `json:"currencyCode,omitempty"`
}

// UpdateAssetRequest represents the request body for updating an asset.
// Nil fields are left unchanged.
type UpdateAssetRequest struct {
	Name           *string  `json:"name,omitempty"`
	Ticker         *string  `json:"ticker,omitempty"`
	APIID          *string  `json:"apiId,omitempty"`
	Quantity       *float64 `json:"quantity,omitempty"`
	EstimatedValue *float64 `json:"estimatedValue,omitempty"`
	ValueCurrency  *string  `json:"valueCurrency,omitempty"`
	PurchasePrice  *float64 `json:"purchasePrice,omitempty"`
	PurchaseDate   *string  `json:"purchaseDate,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	CurrencyCode   *string  `json:"currencyCode,omitempty"`
}
