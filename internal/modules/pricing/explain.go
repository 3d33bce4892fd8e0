// README: Tooltip construction; reconstructs every computed figure as text
// so callers can explain a price without re-running the engine.
package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

type tooltipInputs struct {
	optType        OptionType
	ctx            PerOptionContext
	terms          modelTerms
	cap24h         *float64
	driveDayRate   float64
	driveNightRate float64
	parkDayRate    float64
	parkNightRate  float64
	chargedKm      float64
	includedKm     float64
	overKmRate     float64
	paygTimeEUR    float64
	tripFee        float64
	fees           feeTerms
	feesEUR        float64
	providerID     string
}

func buildTooltips(in tooltipInputs, loc Localizer) Tooltips {
	return Tooltips{
		Trip: fmt.Sprintf("%s: €%.2f", localize(loc, "Trip fee"), in.tripFee),
		Plan: buildPlanTooltip(in, loc),
		Time: buildTimeTooltip(in, loc),
		Km:   buildKmTooltip(in, loc),
		Fees: buildFeesTooltip(in, loc),
	}
}

func buildTimeTooltip(in tooltipInputs, loc Localizer) string {
	ctx := in.ctx
	t := in.terms
	var lines []string

	switch in.optType {
	case OptionPAYG:
		lines = append(lines,
			fmt.Sprintf("%s: %d min × €%.2f = €%.2f", localize(loc, "Drive day"), ctx.DriveDayMin, in.driveDayRate, float64(ctx.DriveDayMin)*in.driveDayRate),
			fmt.Sprintf("%s: %d min × €%.2f = €%.2f", localize(loc, "Drive night"), ctx.DriveNightMin, in.driveNightRate, float64(ctx.DriveNightMin)*in.driveNightRate),
			fmt.Sprintf("%s: %d min × €%.2f = €%.2f", localize(loc, "Park day"), ctx.ParkDayMin, in.parkDayRate, float64(ctx.ParkDayMin)*in.parkDayRate),
			fmt.Sprintf("%s: %d min × €%.2f = €%.2f", localize(loc, "Park night"), ctx.ParkNightMin, in.parkNightRate, float64(ctx.ParkNightMin)*in.parkNightRate),
			fmt.Sprintf("%s: €%.2f", localize(loc, "Time subtotal"), t.timeRawEUR),
		)
		if in.cap24h != nil {
			lines = append(lines, fmt.Sprintf("%s: min(€%.2f, %d×€%.2f) = €%.2f",
				localize(loc, "Time cap"), t.timeRawEUR, ctx.Days, *in.cap24h, t.timeEUR))
		}
		return strings.Join(lines, "\n")

	case OptionPackage:
		includedMin := 0.0
		if t.includedMin != nil {
			includedMin = *t.includedMin
		}
		lines = append(lines,
			fmt.Sprintf("%s: %s min", localize(loc, "Included"), formatNum(includedMin)),
			fmt.Sprintf("%s: max(0, %d - %s) = %s min", localize(loc, "Overage"), ctx.TotalMin, formatNum(includedMin), formatNum(t.overMin)),
			fmt.Sprintf("%s: €%.2f / %d min = €%.4f/min", localize(loc, "Blended minute rate"), in.paygTimeEUR, ctx.TotalMin, t.blendedRate),
			fmt.Sprintf("%s: %s × €%.4f = €%.2f", localize(loc, "Time overage"), formatNum(t.overMin), t.blendedRate, t.timeRawEUR),
		)
		if in.cap24h != nil {
			lines = append(lines, fmt.Sprintf("%s: min(€%.2f, %d×€%.2f) = €%.2f",
				localize(loc, "Time cap"), t.timeRawEUR, ctx.Days, *in.cap24h, t.timeEUR))
		}
		return strings.Join(lines, "\n")
	}

	return fmt.Sprintf("%s: €%.2f", localize(loc, "Time"), in.terms.timeEUR)
}

func buildKmTooltip(in tooltipInputs, loc Localizer) string {
	return fmt.Sprintf("%s: max(0, %s - %s) = %s km\n%s: €%.2f/km\n%s: %s × €%.2f = €%.2f",
		localize(loc, "Km charged"), formatNum(in.ctx.DistKm), formatNum(in.includedKm), formatNum(in.chargedKm),
		localize(loc, "Rate"), in.overKmRate,
		localize(loc, "Km cost"), formatNum(in.chargedKm), in.overKmRate, in.chargedKm*in.overKmRate)
}

func buildPlanTooltip(in tooltipInputs, loc Localizer) string {
	switch in.optType {
	case OptionPackage:
		return fmt.Sprintf("%s: €%.2f", localize(loc, "Package price"), in.terms.planEUR)
	case OptionDaily:
		days := max(1, in.ctx.Days)
		return fmt.Sprintf("%s: %d × €%.2f = €%.2f",
			localize(loc, "Daily price"), in.ctx.Days, in.terms.planEUR/float64(days), in.terms.planEUR)
	}
	return ""
}

func buildFeesTooltip(in tooltipInputs, loc Localizer) string {
	serviceLabel := "Service/fixed"
	if hasProviderAdjustment(in.providerID) {
		serviceLabel = "Service fee"
	}
	return strings.Join([]string{
		fmt.Sprintf("%s: €%.2f", localize(loc, "Unlock"), in.fees.unlock),
		fmt.Sprintf("%s: €%.2f", localize(loc, "Reservation"), in.fees.reservation),
		fmt.Sprintf("%s: €%.2f", localize(loc, serviceLabel), in.fees.fixed),
		fmt.Sprintf("%s: €%.2f", localize(loc, "Fees total"), in.feesEUR),
	}, "\n")
}

// formatNum prints a float without trailing zeros ("60", "1.5").
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
