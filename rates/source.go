package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RateSource provides fiat->USD and USD->stablecoin spot rates. Either call
// may fail or report unknown rates; callers treat those as candidate
// exclusions, not fatal errors.
type RateSource interface {
	FiatToUSD(ctx context.Context, currency string) (float64, error)
	StablecoinRates(ctx context.Context, coins []string) (map[string]float64, error)
}

// Client fetches rates from public HTTP APIs with a short timeout so a slow
// upstream degrades to "no route" instead of hanging the request.
type Client struct {
	httpClient        *http.Client
	fiatRateURL       string
	stablecoinRateURL string
}

func NewClient(fiatRateURL, stablecoinRateURL string) *Client {
	return &Client{
		httpClient:        &http.Client{Timeout: 5 * time.Second},
		fiatRateURL:       fiatRateURL,
		stablecoinRateURL: stablecoinRateURL,
	}
}

// FiatToUSD returns how many USD one unit of the given fiat currency buys.
// USD short-circuits to 1.0 without a network call.
func (c *Client) FiatToUSD(ctx context.Context, currency string) (float64, error) {
	cur := strings.ToLower(currency)
	if cur == "usd" {
		return 1.0, nil
	}

	reqURL := fmt.Sprintf("%s/%s.json", c.fiatRateURL, cur)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build fiat rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fiat rate fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fiat rate fetch returned status %d", resp.StatusCode)
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode fiat rate response: %w", err)
	}

	raw, ok := payload[cur]
	if !ok {
		return 0, fmt.Errorf("fiat rate response missing %q", cur)
	}
	var rates map[string]float64
	if err := json.Unmarshal(raw, &rates); err != nil {
		return 0, fmt.Errorf("failed to decode fiat rate table: %w", err)
	}
	rate, ok := rates["usd"]
	if !ok {
		return 0, fmt.Errorf("fiat rate response missing usd rate for %q", cur)
	}
	return rate, nil
}

// StablecoinRates returns the current USD spot price per stablecoin. Coins
// missing from the upstream response are simply absent from the result.
func (c *Client) StablecoinRates(ctx context.Context, coins []string) (map[string]float64, error) {
	params := url.Values{}
	params.Set("ids", strings.Join(coins, ","))
	params.Set("vs_currencies", "usd")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.stablecoinRateURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build stablecoin rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stablecoin rate fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stablecoin rate fetch returned status %d", resp.StatusCode)
	}

	var payload map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode stablecoin rate response: %w", err)
	}

	out := make(map[string]float64, len(coins))
	for _, coin := range coins {
		if entry, ok := payload[coin]; ok {
			out[coin] = entry["usd"]
		}
	}
	return out, nil
}
