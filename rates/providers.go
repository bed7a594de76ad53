package rates

import (
	"math/rand"

	"github.com/yourusername/crossover-billing/models"
)

// ProviderPicker assigns on-ramp/off-ramp provider labels to conversion
// details. Display-only decoration, kept out of the cost computation so the
// numeric selection stays reproducible.
type ProviderPicker interface {
	Pick() (onramp, offramp string)
}

// RandomPicker picks uniformly from the configured provider labels.
type RandomPicker struct {
	Onramps  []string
	Offramps []string
}

func (p RandomPicker) Pick() (string, string) {
	return p.Onramps[rand.Intn(len(p.Onramps))], p.Offramps[rand.Intn(len(p.Offramps))]
}

// Decorate stamps provider labels onto the chosen route and every candidate
// detail. Numeric fields are never touched.
func Decorate(picker ProviderPicker, best *Route, all map[string]models.ConversionDetails) {
	for coin, conversion := range all {
		conversion.OnrampProvider, conversion.OfframpProvider = picker.Pick()
		all[coin] = conversion
	}
	if best != nil {
		if conversion, ok := all[best.Stablecoin]; ok {
			best.Conversion = conversion
		} else {
			best.Conversion.OnrampProvider, best.Conversion.OfframpProvider = picker.Pick()
		}
	}
}
