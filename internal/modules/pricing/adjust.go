// README: Provider-specific fee adjustments, kept out of the pricing switch.
package pricing

import "strings"

// feeTerms are the mutable fee/minimum inputs an adjustment may rewrite.
// fixedRaw is nil when the option carries no fixed_fee_eur at all.
type feeTerms struct {
	unlock          float64
	reservation     float64
	fixed           float64
	fixedRaw        *float64
	minTotal        *float64
	fallbackApplied bool
}

type providerAdjust func(optType OptionType, f *feeTerms)

// providerAdjustments maps provider ids to their quirk. Adding a provider
// means adding an entry here, not editing the pricing engine.
var providerAdjustments = map[string]providerAdjust{
	// CarGuru charges a per-trip service fee in-app which the public feed
	// sometimes omits; non-daily options get it backfilled. PAYG options
	// additionally carry an implicit minimum total.
	"carguru": func(optType OptionType, f *feeTerms) {
		if (f.fixedRaw == nil || *f.fixedRaw == 0) && optType != OptionDaily {
			f.fixed = 0.99
			f.fallbackApplied = true
		}
		if optType == OptionPAYG && (f.minTotal == nil || *f.minTotal <= 0) {
			minTotal := 2.0
			f.minTotal = &minTotal
		}
	},
}

func applyProviderAdjustments(providerID string, optType OptionType, f *feeTerms) {
	if adjust, ok := providerAdjustments[normalizeProviderID(providerID)]; ok {
		adjust(optType, f)
	}
}

func hasProviderAdjustment(providerID string) bool {
	_, ok := providerAdjustments[normalizeProviderID(providerID)]
	return ok
}

func normalizeProviderID(providerID string) string {
	return strings.ToLower(strings.TrimSpace(providerID))
}
