package model

import "time"

// AssetType identifies the class of a holding. The class determines how the
// asset is priced: cash is always worth 1 unit of its own currency, tradeable
// classes are priced from market quotes, and the remaining classes carry a
// user-entered estimated value.
type AssetType string

// Supported asset classes.
const (
	AssetTypeCash        AssetType = "cash"
	AssetTypeCrypto      AssetType = "crypto"
	AssetTypeStock       AssetType = "stock"
	AssetTypeBond        AssetType = "bond"
	AssetTypeETF         AssetType = "etf"
	AssetTypeRealEstate  AssetType = "real_estate"
	AssetTypeVehicle     AssetType = "vehicle"
	AssetTypeCollectible AssetType = "collectible"
	AssetTypeElectronics AssetType = "electronics"
	AssetTypeOther       AssetType = "other"
)

// AllAssetTypes lists every supported asset class.
var AllAssetTypes = []AssetType{
	AssetTypeCash, AssetTypeCrypto, AssetTypeStock, AssetTypeBond, AssetTypeETF,
	AssetTypeRealEstate, AssetTypeVehicle, AssetTypeCollectible,
	AssetTypeElectronics, AssetTypeOther,
}

// IsValid reports whether t is one of the supported asset classes.
func (t AssetType) IsValid() bool {
	for _, v := range AllAssetTypes {
		if t == v {
			return true
		}
	}
	return false
}

// IsTradeable reports whether the class has a live market quote.
func (t AssetType) IsTradeable() bool {
	switch t {
	case AssetTypeCrypto, AssetTypeStock, AssetTypeBond, AssetTypeETF:
		return true
	}
	return false
}

// IsSecurity reports whether the class is quoted through the equity provider
// (everything tradeable except crypto).
func (t AssetType) IsSecurity() bool {
	return t.IsTradeable() && t != AssetTypeCrypto
}

// IsManuallyValued reports whether the class carries a user-entered estimate
// instead of a market quote.
func (t AssetType) IsManuallyValued() bool {
	switch t {
	case AssetTypeRealEstate, AssetTypeVehicle, AssetTypeCollectible,
		AssetTypeElectronics, AssetTypeOther:
		return true
	}
	return false
}

// Asset represents a single holding. Optional columns map to pointers; which
// fields are meaningful depends on the asset class: quantity-bearing fields
// for cash and tradeable classes, estimated-value fields for manually-valued
// classes.
type Asset struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	AssetType      AssetType `json:"assetType"`
	Ticker         *string   `json:"ticker"` // equity/ETF/bond symbol
	APIID          *string   `json:"apiId"`  // CoinGecko coin id
	Quantity       *float64  `json:"quantity"`
	EstimatedValue *float64  `json:"estimatedValue"` // manually-valued classes
	ValueCurrency  *string   `json:"valueCurrency"`  // currency of EstimatedValue
	PurchasePrice  *float64  `json:"purchasePrice"`
	PurchaseDate   *string   `json:"purchaseDate"` // YYYY-MM-DD
	Notes          *string   `json:"notes"`
	CurrencyCode   *string   `json:"currencyCode"` // cash currency
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ValuedAsset is an Asset enriched with derived valuation figures. Every
// derived field is a pointer: nil means the figure could not be resolved and
// must stay absent, never be treated as zero.
type ValuedAsset struct {
	Asset

	CurrentPriceUSD *float64 `json:"currentPriceUsd"`
	CurrentPriceAMD *float64 `json:"currentPriceAmd"`
	TotalValueUSD   *float64 `json:"totalValueUsd"`
	TotalValueAMD   *float64 `json:"totalValueAmd"`
	GainLossUSD     *float64 `json:"gainLossUsd"`
	GainLossPercent *float64 `json:"gainLossPercent"`

	// AdjustedPurchasePrice is the purchase price rescaled for splits and
	// dilutions between the purchase date and now.
	AdjustedPurchasePrice *float64 `json:"adjustedPurchasePrice"`
	// SplitFactor is adjustedClose/rawClose at the purchase date; a value
	// below 1 means shares were split or diluted since then.
	SplitFactor *float64 `json:"splitFactor"`
}
