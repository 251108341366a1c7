package model

// DisplayCurrency selects which of the two display currencies the UI leads
// with. Valuations always carry both.
type DisplayCurrency string

const (
	DisplayUSD DisplayCurrency = "USD"
	DisplayAMD DisplayCurrency = "AMD"
)

// Settings holds the user-configurable application settings, stored as
// key/value rows in the settings table.
type Settings struct {
	DisplayCurrency       DisplayCurrency `json:"displayCurrency"`
	UpdateIntervalMinutes int             `json:"updateIntervalMinutes"`
	RiskProfile           RiskProfile     `json:"riskProfile"`
	// HasCoinGeckoAPIKey reports whether an API key is stored. The key
	// itself is never returned over the API.
	HasCoinGeckoAPIKey bool `json:"hasCoinGeckoApiKey"`
}
