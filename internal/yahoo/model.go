package yahoo

// ChartResponse represents the raw JSON response structure from the Yahoo
// Finance chart API. The structure includes:
//   - Chart.Result: Array of result objects (typically contains one element)
//   - Chart.Result[].Meta: Symbol metadata and the regular market price
//   - Chart.Result[].Timestamp: Unix timestamps for each data point
//   - Chart.Result[].Indicators: Raw and split-adjusted close prices
//   - Chart.Error: Optional error object from Yahoo API
type ChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string   `json:"currency"`
				Symbol             string   `json:"symbol"`
				ExchangeName       string   `json:"exchangeName"`
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
				ChartPreviousClose *float64 `json:"chartPreviousClose"`
				PreviousClose      *float64 `json:"previousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
				} `json:"quote"`
				// Adjclose carries split/dilution-adjusted closing prices.
				Adjclose []struct {
					Adjclose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// SearchResponse represents the raw JSON response from the Yahoo Finance
// symbol search API.
type SearchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		QuoteType string `json:"quoteType"`
		LongName  string `json:"longname"`
		ShortName string `json:"shortname"`
		Exchange  string `json:"exchange"`
	} `json:"quotes"`
}
