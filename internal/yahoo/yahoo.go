// Package yahoo implements the equity quote, equity history, and ticker
// search providers on top of the public Yahoo Finance chart and search APIs.
package yahoo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
)

const (
	chartURL  = "https://query1.finance.yahoo.com/v8/finance/chart"
	searchURL = "https://query1.finance.yahoo.com/v1/finance/search"
)

// FinanceClient provides methods for fetching financial data from Yahoo
// Finance. It wraps an HTTP client and provides convenient methods for
// querying current prices, historical split-adjusted closes, and symbol
// search.
type FinanceClient struct {
	httpClient *http.Client
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// CurrentPrice fetches the regular market price for a symbol.
//
// Returns nil (not an error) when the symbol is unknown or Yahoo returned no
// usable price: an unknown identifier is an absent quote, never a failure.
func (c *FinanceClient) CurrentPrice(symbol string) (*model.PriceQuote, error) {
	reqURL := fmt.Sprintf("%s/%s?interval=1d&range=1d", chartURL, url.PathEscape(symbol))

	var response ChartResponse
	if err := c.queryYahoo(reqURL, &response); err != nil {
		return nil, err
	}

	if len(response.Chart.Result) == 0 {
		return nil, nil
	}

	meta := response.Chart.Result[0].Meta
	if meta.RegularMarketPrice == nil {
		return nil, nil
	}
	price := *meta.RegularMarketPrice

	// 24h change relative to the previous close, when Yahoo provides one.
	var changePct *float64
	prevClose := meta.ChartPreviousClose
	if prevClose == nil {
		prevClose = meta.PreviousClose
	}
	if prevClose != nil && *prevClose > 0 {
		pct := (price - *prevClose) / *prevClose * 100
		changePct = &pct
	}

	return &model.PriceQuote{
		PriceUSD:     price,
		Change24hPct: changePct,
		Source:       "yahoo",
		UpdatedAt:    time.Now().UTC(),
	}, nil
}

// HistoricalClose fetches the raw and split-adjusted closing prices at (or
// shortly after) the given date. The chart API's adjclose series already
// accounts for stock splits and dilutive events, so
// adjustedClose/rawClose at that date is the cumulative split factor between
// then and now.
//
// The request spans three days from the target date so at least one trading
// day is covered. Returns nil when no trading data exists for the window.
func (c *FinanceClient) HistoricalClose(symbol string, date time.Time) (*model.HistoricalClose, error) {
	period1 := date.UTC().Truncate(24 * time.Hour).Unix()
	period2 := period1 + 3*86400

	reqURL := fmt.Sprintf(
		"%s/%s?period1=%d&period2=%d&interval=1d&events=splits",
		chartURL, url.PathEscape(symbol), period1, period2,
	)

	var response ChartResponse
	if err := c.queryYahoo(reqURL, &response); err != nil {
		return nil, err
	}

	if len(response.Chart.Result) == 0 {
		return nil, nil
	}

	indicators := response.Chart.Result[0].Indicators
	if len(indicators.Quote) == 0 {
		return nil, nil
	}
	closes := indicators.Quote[0].Close

	var adjCloses []*float64
	if len(indicators.Adjclose) > 0 {
		adjCloses = indicators.Adjclose[0].Adjclose
	}

	// First valid trading day in the window.
	for i, raw := range closes {
		if raw == nil {
			continue
		}
		adjusted := *raw
		if i < len(adjCloses) && adjCloses[i] != nil {
			adjusted = *adjCloses[i]
		}
		return &model.HistoricalClose{
			AdjustedClose: adjusted,
			RawClose:      *raw,
			SplitFactor:   adjusted / *raw,
		}, nil
	}

	return nil, nil
}

// Search looks up equity and ETF symbols matching the query, returning at
// most ten results.
func (c *FinanceClient) Search(query string) ([]model.SearchResult, error) {
	reqURL := fmt.Sprintf("%s?q=%s&quotesCount=10&newsCount=0", searchURL, url.QueryEscape(query))

	var response SearchResponse
	if err := c.queryYahoo(reqURL, &response); err != nil {
		return nil, err
	}

	results := []model.SearchResult{}
	for _, q := range response.Quotes {
		if q.QuoteType != "EQUITY" && q.QuoteType != "ETF" {
			continue
		}

		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		if name == "" {
			name = q.Symbol
		}

		resultType := "stock"
		if q.QuoteType == "ETF" {
			resultType = "etf"
		}

		results = append(results, model.SearchResult{
			Symbol:   q.Symbol,
			Name:     name,
			Type:     resultType,
			Exchange: q.Exchange,
		})
		if len(results) == 10 {
			break
		}
	}

	return results, nil
}

// queryYahoo is an internal helper that executes HTTP requests to Yahoo
// Finance and decodes the JSON response into out.
//
// The method sets required headers:
//   - User-Agent: Mimics a browser to avoid API blocking
//   - Accept: Requests JSON response format
func (c *FinanceClient) queryYahoo(reqURL string, out any) error {
	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse yahoo response: %w", err)
	}

	if chart, ok := out.(*ChartResponse); ok && chart.Chart.Error != nil {
		// "Not Found" style errors mean an unknown symbol, which callers
		// treat as an absent quote rather than a failure.
		if strings.Contains(chart.Chart.Error.Code, "Not Found") ||
			strings.Contains(chart.Chart.Error.Description, "No data found") {
			chart.Chart.Result = nil
			chart.Chart.Error = nil
			return nil
		}
		return fmt.Errorf("yahoo error: %s", chart.Chart.Error.Description)
	}

	return nil
}
