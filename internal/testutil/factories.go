package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
)

// MakeID generates a fresh UUID for test fixtures.
func MakeID() string {
	return uuid.NewString()
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	// Simple creation with defaults (a cash asset)
//	asset := testutil.NewAsset().Build(t, db)
//
//	// Customized asset
//	asset := testutil.NewAsset().
//	    WithType(model.AssetTypeStock).
//	    WithTicker("AAPL").
//	    WithQuantity(10).
//	    Build(t, db)
type AssetBuilder struct {
	ID             string
	Name           string
	AssetType      model.AssetType
	Ticker         *string
	APIID          *string
	Quantity       *float64
	EstimatedValue *float64
	ValueCurrency  *string
	PurchasePrice  *float64
	PurchaseDate   *string
	Notes          *string
	CurrencyCode   *string
	IsActive       bool
}

// NewAsset creates an AssetBuilder with sensible defaults: an active USD
// cash asset holding 1000 units.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		ID:           MakeID(),
		Name:         "Test Asset",
		AssetType:    model.AssetTypeCash,
		Quantity:     Float64Ptr(1000),
		CurrencyCode: StringPtr("USD"),
		IsActive:     true,
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithType sets the asset class. Non-cash classes drop the default cash
// currency code.
func (b *AssetBuilder) WithType(assetType model.AssetType) *AssetBuilder {
	b.AssetType = assetType
	if assetType != model.AssetTypeCash {
		b.CurrencyCode = nil
	}
	return b
}

// WithTicker sets the security symbol.
func (b *AssetBuilder) WithTicker(ticker string) *AssetBuilder {
	b.Ticker = StringPtr(ticker)
	return b
}

// WithAPIID sets the CoinGecko coin id.
func (b *AssetBuilder) WithAPIID(apiID string) *AssetBuilder {
	b.APIID = StringPtr(apiID)
	return b
}

// WithQuantity sets the held quantity.
func (b *AssetBuilder) WithQuantity(quantity float64) *AssetBuilder {
	b.Quantity = Float64Ptr(quantity)
	return b
}

// WithEstimatedValue sets a manual valuation in the given currency.
func (b *AssetBuilder) WithEstimatedValue(value float64, currency string) *AssetBuilder {
	b.EstimatedValue = Float64Ptr(value)
	b.ValueCurrency = StringPtr(currency)
	return b
}

// WithPurchase sets the purchase price and date.
func (b *AssetBuilder) WithPurchase(price float64, date string) *AssetBuilder {
	b.PurchasePrice = Float64Ptr(price)
	b.PurchaseDate = StringPtr(date)
	return b
}

// WithCurrencyCode sets the cash currency.
func (b *AssetBuilder) WithCurrencyCode(code string) *AssetBuilder {
	b.CurrencyCode = StringPtr(code)
	return b
}

// Inactive marks the asset as soft-deleted.
func (b *AssetBuilder) Inactive() *AssetBuilder {
	b.IsActive = false
	return b
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	query := `
		INSERT INTO assets (
			id, name, asset_type, ticker, api_id, quantity, estimated_value,
			value_currency, purchase_price, purchase_date, notes, currency_code, is_active
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.Name, string(b.AssetType), b.Ticker, b.APIID, b.Quantity,
		b.EstimatedValue, b.ValueCurrency, b.PurchasePrice, b.PurchaseDate,
		b.Notes, b.CurrencyCode, b.IsActive,
	)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return model.Asset{
		ID:             b.ID,
		Name:           b.Name,
		AssetType:      b.AssetType,
		Ticker:         b.Ticker,
		APIID:          b.APIID,
		Quantity:       b.Quantity,
		EstimatedValue: b.EstimatedValue,
		ValueCurrency:  b.ValueCurrency,
		PurchasePrice:  b.PurchasePrice,
		PurchaseDate:   b.PurchaseDate,
		Notes:          b.Notes,
		CurrencyCode:   b.CurrencyCode,
		IsActive:       b.IsActive,
	}
}
