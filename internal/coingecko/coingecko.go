// Package coingecko implements the crypto quote and coin search providers on
// top of the public CoinGecko API.
package coingecko

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
)

const baseURL = "https://api.coingecko.com/api/v3"

// The free tier allows roughly 30 requests per minute; requests are spaced
// out client-side so a refresh burst never trips the limit.
const minRequestInterval = 2100 * time.Millisecond

// Batch size for the simple/price endpoint.
const priceBatchSize = 50

// Client provides methods for fetching crypto prices and searching coins.
type Client struct {
	httpClient *http.Client
	apiKey     string

	mu          sync.Mutex
	lastRequest time.Time
}

// NewClient creates a new CoinGecko client. apiKey is optional; when set it
// is sent as the demo API key header.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
	}
}

// SetAPIKey replaces the API key used for subsequent requests.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = apiKey
}

// SimplePrices fetches USD prices and 24h change for the given coin IDs,
// batching up to 50 coins per request.
//
// The result maps coin ID to quote; IDs the provider did not return are
// simply missing from the map, so callers can tell "not returned" from an
// empty batch. A failed batch drops its IDs from the result but does not
// fail the whole call.
func (c *Client) SimplePrices(coinIDs []string) (map[string]model.PriceQuote, error) {
	result := make(map[string]model.PriceQuote, len(coinIDs))
	if len(coinIDs) == 0 {
		return result, nil
	}

	var lastErr error
	for start := 0; start < len(coinIDs); start += priceBatchSize {
		end := start + priceBatchSize
		if end > len(coinIDs) {
			end = len(coinIDs)
		}
		batch := coinIDs[start:end]

		reqURL := fmt.Sprintf(
			"%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true",
			baseURL, url.QueryEscape(strings.Join(batch, ",")),
		)

		var payload map[string]struct {
			USD       *float64 `json:"usd"`
			USDChange *float64 `json:"usd_24h_change"`
		}
		if err := c.get(reqURL, &payload); err != nil {
			lastErr = err
			continue
		}

		now := time.Now().UTC()
		for _, id := range batch {
			coin, ok := payload[id]
			if !ok || coin.USD == nil {
				continue
			}
			result[id] = model.PriceQuote{
				PriceUSD:     *coin.USD,
				Change24hPct: coin.USDChange,
				Source:       "coingecko",
				UpdatedAt:    now,
			}
		}
	}

	if len(result) == 0 && lastErr != nil {
		return result, lastErr
	}
	return result, nil
}

// Search looks up coins matching the query, returning at most ten results.
// The CoinGecko coin ID is carried in the Exchange field so the UI can store
// it as the asset's quote identifier.
func (c *Client) Search(query string) ([]model.SearchResult, error) {
	reqURL := fmt.Sprintf("%s/search?query=%s", baseURL, url.QueryEscape(query))

	var payload struct {
		Coins []struct {
			ID     string `json:"id"`
			Symbol string `json:"symbol"`
			Name   string `json:"name"`
		} `json:"coins"`
	}
	if err := c.get(reqURL, &payload); err != nil {
		return nil, err
	}

	results := []model.SearchResult{}
	for _, coin := range payload.Coins {
		results = append(results, model.SearchResult{
			Symbol:   strings.ToUpper(coin.Symbol),
			Name:     coin.Name,
			Type:     "crypto",
			Exchange: "CoinGecko ID: " + coin.ID,
		})
		if len(results) == 10 {
			break
		}
	}

	return results, nil
}

// get executes a rate-limited GET request and decodes the JSON body into out.
func (c *Client) get(reqURL string, out any) error {
	c.throttle()

	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	c.mu.Lock()
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}
	c.mu.Unlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("coingecko returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse coingecko response: %w", err)
	}

	return nil
}

// throttle sleeps until minRequestInterval has passed since the previous
// request.
func (c *Client) throttle() {
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	wait := minRequestInterval - elapsed
	c.lastRequest = time.Now().Add(wait)
	c.mu.Unlock()

	if wait > 0 {
		time.Sleep(wait)
	}
}
