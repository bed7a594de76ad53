package rates

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockRateSource struct {
	FiatToUSDFunc       func(ctx context.Context, currency string) (float64, error)
	StablecoinRatesFunc func(ctx context.Context, coins []string) (map[string]float64, error)
}

func (m *MockRateSource) FiatToUSD(ctx context.Context, currency string) (float64, error) {
	return m.FiatToUSDFunc(ctx, currency)
}

func (m *MockRateSource) StablecoinRates(ctx context.Context, coins []string) (map[string]float64, error) {
	return m.StablecoinRatesFunc(ctx, coins)
}

func fixedSource(fiat float64, spot map[string]float64) *MockRateSource {
	return &MockRateSource{
		FiatToUSDFunc: func(ctx context.Context, currency string) (float64, error) {
			return fiat, nil
		},
		StablecoinRatesFunc: func(ctx context.Context, coins []string) (map[string]float64, error) {
			return spot, nil
		},
	}
}

func defaultSelector(source RateSource) *Selector {
	return NewSelector(source, 0.01, 0.005, 0.005)
}

func TestBestRouteArithmetic(t *testing.T) {
	// Invoice: subtotal 100.00, VAT 21% -> total 121.00 USD. Spot rate 1.00,
	// spreads 0.5% each, platform fee 1%.
	selector := defaultSelector(fixedSource(1.0, map[string]float64{"usdc": 1.0}))

	best, summaries, all := selector.BestRoute(context.Background(), 121.00, "USD", []string{"usdc"})
	require.NotNil(t, best)
	require.Len(t, summaries, 1)
	require.Len(t, all, 1)

	assert.Equal(t, "usdc", best.Stablecoin)
	assert.InDelta(t, 121.00/0.995, best.StablecoinNeeded, 1e-6)
	assert.InDelta(t, 1.21, best.CompanyFee, 1e-6)
	assert.InDelta(t, (121.00/0.995)*1.005, best.USDNeeded, 1e-6)
	assert.InDelta(t, 122.216080402, best.CustomerAmount, 1e-6)
	assert.InDelta(t, (121.00/0.995)*0.005, best.OnrampFee, 1e-6)
	assert.InDelta(t, (121.00/0.995)*0.005, best.OfframpFee, 1e-6)

	conversion := all["usdc"]
	assert.Equal(t, "USDC", conversion.Stablecoin)
	assert.InDelta(t, 1.005, conversion.OnrampRate, 1e-9)
	assert.InDelta(t, 0.995, conversion.OfframpRate, 1e-9)
	assert.InDelta(t, 121.00, conversion.USDReceived, 1e-9)
	assert.InDelta(t, conversion.OnrampFee+conversion.OfframpFee+conversion.CompanyFee,
		conversion.ConversionCosts.TotalFees, 1e-9)

	assert.Contains(t, summaries[0], "USDC: 122.22 USD")
}

func TestBestRoutePicksMinimumCustomerAmount(t *testing.T) {
	selector := defaultSelector(fixedSource(1.0, map[string]float64{
		"usdc": 1.00,
		"usdt": 0.98,
		"dai":  1.02,
	}))

	best, summaries, all := selector.BestRoute(context.Background(), 100.0, "USD", []string{"usdc", "usdt", "dai"})
	require.NotNil(t, best)
	require.Len(t, all, 3)
	assert.Len(t, summaries, 3)

	for coin, conversion := range all {
		assert.GreaterOrEqual(t, conversion.CustomerAmount, best.CustomerAmount,
			"candidate %s undercuts the selected route", coin)
	}
	assert.Positive(t, best.CustomerAmount)
}

func TestBestRouteTieBreaksAlphabetically(t *testing.T) {
	selector := defaultSelector(fixedSource(1.0, map[string]float64{
		"usdt": 1.0,
		"usdc": 1.0,
		"dai":  1.0,
	}))

	// Identical spot rates produce identical customer amounts; the first
	// candidate in canonical order wins.
	best, _, _ := selector.BestRoute(context.Background(), 50.0, "USD", []string{"usdt", "usdc", "dai"})
	require.NotNil(t, best)
	assert.Equal(t, "dai", best.Stablecoin)
}

func TestBestRouteSkipsUnusableCandidates(t *testing.T) {
	selector := defaultSelector(fixedSource(1.0, map[string]float64{
		"usdc": 0, // zero spot rate
		"usdt": 1.0,
		// dai missing entirely
	}))

	best, summaries, all := selector.BestRoute(context.Background(), 100.0, "USD", []string{"usdc", "usdt", "dai"})
	require.NotNil(t, best)
	assert.Equal(t, "usdt", best.Stablecoin)
	assert.Len(t, summaries, 1)
	assert.Len(t, all, 1)
}

func TestBestRouteNoViableCandidates(t *testing.T) {
	tests := []struct {
		name   string
		source RateSource
	}{
		{
			name:   "all spot rates zero",
			source: fixedSource(1.0, map[string]float64{"usdc": 0, "usdt": 0}),
		},
		{
			name: "stablecoin rate fetch fails",
			source: &MockRateSource{
				FiatToUSDFunc: func(ctx context.Context, currency string) (float64, error) { return 1.0, nil },
				StablecoinRatesFunc: func(ctx context.Context, coins []string) (map[string]float64, error) {
					return nil, errors.New("upstream down")
				},
			},
		},
		{
			name: "fiat rate unavailable",
			source: &MockRateSource{
				FiatToUSDFunc: func(ctx context.Context, currency string) (float64, error) {
					return 0, errors.New("upstream down")
				},
				StablecoinRatesFunc: func(ctx context.Context, coins []string) (map[string]float64, error) {
					return map[string]float64{"usdc": 1.0}, nil
				},
			},
		},
		{
			name:   "fiat rate zero",
			source: fixedSource(0, map[string]float64{"usdc": 1.0}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector := defaultSelector(tt.source)
			best, summaries, all := selector.BestRoute(context.Background(), 100.0, "EUR", []string{"usdc", "usdt"})
			assert.Nil(t, best)
			assert.Empty(t, summaries)
			assert.Empty(t, all)
		})
	}
}

func TestBestRouteConvertsToCustomerCurrency(t *testing.T) {
	// EUR at 1.08 USD: the customer pays fewer euros than the USD figure.
	selector := defaultSelector(fixedSource(1.08, map[string]float64{"usdc": 1.0}))

	best, _, _ := selector.BestRoute(context.Background(), 121.00, "EUR", []string{"usdc"})
	require.NotNil(t, best)
	assert.InDelta(t, best.USDNeeded/1.08, best.CustomerAmount, 1e-9)
}

func TestBestRouteIsPure(t *testing.T) {
	selector := defaultSelector(fixedSource(1.0, map[string]float64{"usdc": 1.0}))

	best, _, all := selector.BestRoute(context.Background(), 100.0, "USD", []string{"usdc"})
	require.NotNil(t, best)

	// Provider labels are a separate decoration step, not part of selection.
	assert.Empty(t, best.Conversion.OnrampProvider)
	assert.Empty(t, best.Conversion.OfframpProvider)
	assert.Empty(t, all["usdc"].OnrampProvider)
}
