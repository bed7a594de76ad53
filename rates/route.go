package rates

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/crossover-billing/models"
)

// ErrNoViableRoute means every candidate stablecoin was excluded, either
// because live rates could not be fetched or every spot rate was unusable.
var ErrNoViableRoute = errors.New("could not fetch live rates or no stablecoin route available")

// Route is the cost breakdown for settling an invoice through one
// stablecoin. All USD and fee quantities are non-negative; CustomerAmount is
// strictly positive.
type Route struct {
	Stablecoin       string
	CustomerAmount   float64
	StablecoinNeeded float64
	USDNeeded        float64
	CompanyFee       float64
	OnrampFee        float64
	OfframpFee       float64
	RouteDetails     string
	Conversion       models.ConversionDetails
}

// Selector computes per-candidate cost breakdowns and picks the route that
// is cheapest for the customer. Pure over its inputs: provider-name
// decoration is a separate display step (see ProviderPicker).
type Selector struct {
	Source           RateSource
	PlatformFeePct   float64
	OnrampSpreadPct  float64
	OfframpSpreadPct float64
}

func NewSelector(source RateSource, platformFeePct, onrampSpreadPct, offrampSpreadPct float64) *Selector {
	return &Selector{
		Source:           source,
		PlatformFeePct:   platformFeePct,
		OnrampSpreadPct:  onrampSpreadPct,
		OfframpSpreadPct: offrampSpreadPct,
	}
}

// BestRoute returns the minimum-CustomerAmount route for paying invoiceUSD
// in customerCurrency, along with human-readable summaries and the full
// per-candidate detail set. A nil route with empty collections means no
// candidate was viable; callers surface that as ErrNoViableRoute.
//
// Candidates are enumerated in alphabetical order so ties resolve
// deterministically to the first minimum.
func (s *Selector) BestRoute(ctx context.Context, invoiceUSD float64, customerCurrency string, coins []string) (*Route, []string, map[string]models.ConversionDetails) {
	details := []string{}
	all := map[string]models.ConversionDetails{}

	fiatToUSD, err := s.Source.FiatToUSD(ctx, customerCurrency)
	if err != nil || fiatToUSD <= 0 {
		return nil, details, all
	}

	spotRates, err := s.Source.StablecoinRates(ctx, coins)
	if err != nil {
		return nil, details, all
	}

	ordered := make([]string, len(coins))
	copy(ordered, coins)
	sort.Strings(ordered)

	var best *Route
	for _, coin := range ordered {
		usdPerStable, ok := spotRates[coin]
		if !ok || usdPerStable <= 0 {
			continue
		}

		// The company buys stablecoin at a markup and the provider sells
		// it back at a discount.
		onrampRate := usdPerStable * (1 + s.OnrampSpreadPct)
		offrampRate := usdPerStable * (1 - s.OfframpSpreadPct)

		// Amount of stablecoin that yields exactly invoiceUSD after the
		// off-ramp, i.e. what the company must receive to be made whole.
		stablecoinNeeded := invoiceUSD / offrampRate

		companyFee := invoiceUSD * s.PlatformFeePct
		onrampFee := stablecoinNeeded * (onrampRate - usdPerStable)
		offrampFee := stablecoinNeeded * (usdPerStable - offrampRate)
		usdNeeded := stablecoinNeeded * onrampRate

		customerAmount := usdNeeded / fiatToUSD

		routeStr := fmt.Sprintf(
			"%s: %.2f %s (onramp fee: %.2f USD, offramp fee: %.2f USD, company fee: %.2f USD)",
			strings.ToUpper(coin), customerAmount, strings.ToUpper(customerCurrency),
			onrampFee, offrampFee, companyFee,
		)

		conversion := models.ConversionDetails{
			Stablecoin:       strings.ToUpper(coin),
			CustomerAmount:   customerAmount,
			StablecoinNeeded: stablecoinNeeded,
			USDReceived:      invoiceUSD,
			OnrampRate:       onrampRate,
			OfframpRate:      offrampRate,
			CustomerCurrency: customerCurrency,
			USDPerStable:     usdPerStable,
			CompanyFee:       companyFee,
			OnrampFee:        onrampFee,
			OfframpFee:       offrampFee,
			ConversionCosts: models.ConversionCosts{
				Onramp:    onrampFee,
				Offramp:   offrampFee,
				Company:   companyFee,
				TotalFees: onrampFee + offrampFee + companyFee,
			},
		}

		all[coin] = conversion
		details = append(details, routeStr)

		if best == nil || customerAmount < best.CustomerAmount {
			best = &Route{
				Stablecoin:       coin,
				CustomerAmount:   customerAmount,
				StablecoinNeeded: stablecoinNeeded,
				USDNeeded:        usdNeeded,
				CompanyFee:       companyFee,
				OnrampFee:        onrampFee,
				OfframpFee:       offrampFee,
				RouteDetails:     routeStr,
				Conversion:       conversion,
			}
		}
	}

	return best, details, all
}
