// Package exchangerate implements the FX rate provider on top of the keyless
// open.er-api.com endpoint, which covers 150+ currencies including AMD.
package exchangerate

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const baseURL = "https://open.er-api.com/v6/latest"

// Source is the provenance tag recorded for rates fetched by this client.
const Source = "exchangerate-api"

// Client fetches exchange rates for a base currency.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new exchange rate client with default HTTP settings.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Rates fetches the mapping of target currency to rate for the given base.
// On failure the mapping is empty and the error describes the failure;
// callers treat a missing rate as an unknown conversion, never as zero.
func (c *Client) Rates(base string) (map[string]float64, error) {
	reqURL := fmt.Sprintf("%s/%s", baseURL, url.PathEscape(base))

	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return map[string]float64{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return map[string]float64{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return map[string]float64{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return map[string]float64{}, fmt.Errorf("exchange rate API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Result string             `json:"result"`
		Rates  map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return map[string]float64{}, fmt.Errorf("failed to parse exchange rate response: %w", err)
	}

	if payload.Rates == nil {
		return map[string]float64{}, nil
	}
	return payload.Rates, nil
}
