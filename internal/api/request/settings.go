package request

// UpdateSettingsRequest represents a partial settings change. Nil fields are
// left unchanged. Sending an empty coinGeckoApiKey clears the stored key.
type UpdateSettingsRequest struct {
	DisplayCurrency       *string `json:"displayCurrency,omitempty"`
	UpdateIntervalMinutes *int    `json:"updateIntervalMinutes,omitempty"`
	RiskProfile           *string `json:"riskProfile,omitempty"`
	CoinGeckoAPIKey       *string `json:"coinGeckoApiKey,omitempty"`
}
