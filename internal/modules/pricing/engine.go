// README: Option pricing engine; computes one full price breakdown per
// (context, option, vehicle) triple.
package pricing

import (
	"fmt"
	"math"
	"strings"

	"carcalc/internal/modules/catalog"
)

const (
	// Observed real-world overhead on published consumption figures for
	// city driving; applied to every non-EV consumption base.
	cityConsumptionFactor = 1.15
	// Used when neither the user override nor the vehicle publishes a
	// consumption figure.
	fallbackConsumption = 8.0
)

// modelTerms is what a billing-model variant contributes to the breakdown.
type modelTerms struct {
	planEUR     float64
	timeEUR     float64
	kmEUR       float64
	capSavedEUR float64
	timeRawEUR  float64
	blendedRate float64
	overMin     float64
	includedMin *float64
	capApplied  bool
	capValueEUR *float64
	planLabel   string
}

// applyDayCap limits the time charge to days × cap24h and records what the
// cap saved.
func (t *modelTerms) applyDayCap(cap24h *float64, days int) {
	if cap24h == nil {
		return
	}
	cap := float64(days) * *cap24h
	capped := math.Min(t.timeRawEUR, cap)
	t.capSavedEUR = math.Max(0, t.timeRawEUR-capped)
	t.capApplied = capped != t.timeRawEUR
	t.timeEUR = capped
	t.capValueEUR = &cap
}

type consumptionPick struct {
	value  float64
	source string
}

// PriceOption prices one option. An unrecognized option type is a soft
// failure carried in Priced.Reason; it never aborts a batch.
func PriceOption(ctx PerOptionContext, opt catalog.Option, veh catalog.Vehicle, loc Localizer) Priced {
	optType, known := ParseOptionType(opt.Type)
	if !known {
		return Priced{Reason: fmt.Sprintf("unknown option_type: %s", opt.Type)}
	}

	num := func(key string) (float64, bool) { return ParseNumber(opt.Fields[key]) }
	zero := func(key string) float64 { v, _ := num(key); return v }
	or := func(key string, def float64) float64 {
		if v, ok := num(key); ok {
			return v
		}
		return def
	}
	ptr := func(key string) *float64 {
		if v, ok := num(key); ok {
			return &v
		}
		return nil
	}

	fuelType := veh.FuelType
	switch fuelType {
	case catalog.FuelPetrol, catalog.FuelDiesel, catalog.FuelEV:
	default:
		fuelType = catalog.FuelPetrol
	}

	fees := feeTerms{
		unlock:      zero("unlock_fee_eur"),
		reservation: zero("reservation_fee_eur"),
		fixedRaw:    ptr("fixed_fee_eur"),
		minTotal:    ptr("min_total_eur"),
	}
	if fees.fixedRaw != nil {
		fees.fixed = *fees.fixedRaw
	}
	applyProviderAdjustments(opt.ProviderID, optType, &fees)

	tripFee := zero("trip_fee_eur")
	cap24h := ptr("cap_24h_eur")
	airportFee := zero("airport_fee_eur")

	driveDayRate := zero("drive_day_min_rate_eur")
	driveNightRate := zero("drive_night_min_rate_eur")
	if driveNightRate == 0 {
		driveNightRate = driveDayRate
	}
	parkDayRate := or("park_day_min_rate_eur", driveDayRate)
	parkNightRate := or("park_night_min_rate_eur", driveNightRate)

	kmRate := zero("km_rate_eur")
	includedKm := zero("included_km")
	overKmRate := or("over_km_rate_eur", kmRate)

	fuelIncluded := isFuelIncluded(opt.Fields["fuel_included"])

	feesEUR := fees.unlock + fees.reservation + fees.fixed

	paygTimeEUR := float64(ctx.DriveDayMin)*driveDayRate +
		float64(ctx.DriveNightMin)*driveNightRate +
		float64(ctx.ParkDayMin)*parkDayRate +
		float64(ctx.ParkNightMin)*parkNightRate

	chargedKm := math.Max(0, ctx.DistKm-includedKm)
	paygKmEUR := chargedKm * overKmRate

	consumption := resolveConsumption(ctx, veh, fuelType)
	consumptionUsed := 0.0
	if fuelType != catalog.FuelEV {
		consumptionUsed = consumption.value * cityConsumptionFactor
	}
	fuelPrice := resolveFuelPrice(ctx, fuelType)
	fuelEUR := 0.0
	if !fuelIncluded && fuelType != catalog.FuelEV {
		fuelEUR = ctx.DistKm * (consumptionUsed / 100) * fuelPrice
	}

	airportEUR := 0.0
	if ctx.Airport {
		airportEUR = airportFee
	}

	var terms modelTerms
	switch optType {
	case OptionPAYG:
		terms = pricePAYG(ctx, paygTimeEUR, paygKmEUR, cap24h)
	case OptionPackage:
		terms = pricePackage(ctx, zero("package_price_eur"), zero("included_min"), paygTimeEUR, paygKmEUR, cap24h, loc)
	case OptionDaily:
		unlimited := strings.ToUpper(opt.Fields["daily_unlimited_km"]) == "TRUE"
		terms = priceDaily(ctx, zero("daily_price_eur"), unlimited, zero("daily_included_km"), or("daily_over_km_rate_eur", kmRate), loc)
	}

	// Minimum is enforced once, over the unrounded model components.
	minAddedEUR := 0.0
	subtotalBeforeMin := tripFee + terms.planEUR + terms.timeEUR + terms.kmEUR
	if fees.minTotal != nil && subtotalBeforeMin < *fees.minTotal {
		minAddedEUR = *fees.minTotal - subtotalBeforeMin
	}

	// Components round to cents individually; the total is the sum of the
	// already-rounded components, so line items always add up.
	tripC := RoundToCents(tripFee)
	planC := RoundToCents(terms.planEUR)
	timeC := RoundToCents(terms.timeEUR)
	kmC := RoundToCents(terms.kmEUR)
	minAddedC := RoundToCents(minAddedEUR)
	feesC := RoundToCents(feesEUR)
	airportC := RoundToCents(airportEUR)
	fuelC := RoundToCents(fuelEUR)
	totalEUR := RoundToCents(tripC + planC + timeC + kmC + minAddedC + feesC + airportC + fuelC)

	timeLabel := localize(loc, "Time")
	if terms.capSavedEUR > 0 {
		timeLabel = localize(loc, "Time (capped)")
	}

	factorUsed := cityConsumptionFactor
	if fuelType == catalog.FuelEV {
		factorUsed = 0
	}

	meta := Meta{
		OptionType:            string(optType),
		TotalMin:              ctx.TotalMin,
		TotalKm:               ctx.DistKm,
		Days:                  ctx.Days,
		FuelIncluded:          fuelIncluded,
		FuelType:              fuelType,
		FuelPriceEURPerL:      fuelPrice,
		FuelConsumptionBase:   consumption.value,
		FuelConsumptionFactor: factorUsed,
		FuelConsumptionUsed:   consumptionUsed,
		FuelConsumptionSource: consumption.source,
		DriveDayMin:           ctx.DriveDayMin,
		DriveNightMin:         ctx.DriveNightMin,
		ParkDayMin:            ctx.ParkDayMin,
		ParkNightMin:          ctx.ParkNightMin,
		DriveDayRate:          driveDayRate,
		DriveNightRate:        driveNightRate,
		ParkDayRate:           parkDayRate,
		ParkNightRate:         parkNightRate,
		TimeRawEUR:            RoundToCents(terms.timeRawEUR),
		CapApplied:            terms.capApplied,
		CapValueEUR:           roundedPtr(terms.capValueEUR),
		IncludedMin:           terms.includedMin,
		OverMin:               terms.overMin,
		BlendedRateEURPerMin:  terms.blendedRate,
		IncludedKm:            includedKm,
		ChargedKm:             chargedKm,
		KmRateEUR:             overKmRate,
		KmRawEUR:              RoundToCents(paygKmEUR),
		TripFeeEUR:            tripFee,
		MinTotalEUR:           roundedPtr(fees.minTotal),
		PlanLabel:             terms.planLabel,
		PlanEUR:               terms.planEUR,
		FeesUnlockEUR:         fees.unlock,
		FeesReservationEUR:    fees.reservation,
		FeesFixedEUR:          fees.fixed,
		FeesFallbackApplied:   fees.fallbackApplied,
	}

	breakdown := Breakdown{
		TripEUR:     tripC,
		PlanEUR:     planC,
		TimeEUR:     timeC,
		KmEUR:       kmC,
		MinAddedEUR: minAddedC,
		FeesEUR:     feesC,
		AirportEUR:  airportC,
		FuelEUR:     fuelC,
		CapSavedEUR: RoundToCents(terms.capSavedEUR),
		TotalEUR:    totalEUR,
		Labels: Labels{
			Trip: localize(loc, "Trip fee"),
			Plan: terms.planLabel,
			Time: timeLabel,
			Km:   localize(loc, "Km"),
			Fees: localize(loc, "Fees"),
		},
		Meta: meta,
		Tooltips: buildTooltips(tooltipInputs{
			optType:        optType,
			ctx:            ctx,
			terms:          terms,
			cap24h:         cap24h,
			driveDayRate:   driveDayRate,
			driveNightRate: driveNightRate,
			parkDayRate:    parkDayRate,
			parkNightRate:  parkNightRate,
			chargedKm:      chargedKm,
			includedKm:     includedKm,
			overKmRate:     overKmRate,
			paygTimeEUR:    paygTimeEUR,
			tripFee:        tripFee,
			fees:           fees,
			feesEUR:        feesEUR,
			providerID:     opt.ProviderID,
		}, loc),
	}

	return Priced{OK: true, TotalEUR: totalEUR, Breakdown: breakdown}
}

func pricePAYG(ctx PerOptionContext, paygTimeEUR, paygKmEUR float64, cap24h *float64) modelTerms {
	t := modelTerms{
		timeRawEUR: paygTimeEUR,
		timeEUR:    paygTimeEUR,
		kmEUR:      paygKmEUR,
	}
	t.applyDayCap(cap24h, ctx.Days)
	return t
}

// pricePackage bills overage minutes at a blended rate: the PAYG-equivalent
// time cost of the whole trip divided by its total minutes. This is a
// deliberate approximation of mixed day/night overage and must not be
// replaced by a per-minute model.
func pricePackage(ctx PerOptionContext, packagePrice, includedMin, paygTimeEUR, paygKmEUR float64, cap24h *float64, loc Localizer) modelTerms {
	overMin := math.Max(0, float64(ctx.TotalMin)-includedMin)
	blendedRate := 0.0
	if ctx.TotalMin > 0 {
		blendedRate = paygTimeEUR / float64(ctx.TotalMin)
	}
	timeRaw := overMin * blendedRate

	t := modelTerms{
		planEUR:     packagePrice,
		timeRawEUR:  timeRaw,
		timeEUR:     timeRaw,
		kmEUR:       paygKmEUR,
		blendedRate: blendedRate,
		overMin:     overMin,
		includedMin: &includedMin,
		planLabel:   localize(loc, "Package"),
	}
	t.applyDayCap(cap24h, ctx.Days)
	return t
}

// priceDaily has no time component; day pricing is assumed to include
// driving time.
func priceDaily(ctx PerOptionContext, dailyPrice float64, unlimitedKm bool, dailyIncludedKm, dailyOverKmRate float64, loc Localizer) modelTerms {
	kmEUR := 0.0
	if !unlimitedKm {
		allowance := dailyIncludedKm * float64(ctx.Days)
		kmEUR = math.Max(0, ctx.DistKm-allowance) * dailyOverKmRate
	}
	return modelTerms{
		planEUR:   float64(ctx.Days) * dailyPrice,
		kmEUR:     kmEUR,
		planLabel: fmt.Sprintf("%s (%d×)", localize(loc, "Daily"), ctx.Days),
	}
}

// resolveConsumption picks the consumption base in order: user override when
// enabled and positive, the vehicle's published default, the fallback
// constant. EVs consume no liquid fuel.
func resolveConsumption(ctx PerOptionContext, veh catalog.Vehicle, fuelType string) consumptionPick {
	if fuelType == catalog.FuelEV {
		return consumptionPick{value: 0, source: "ev"}
	}
	if ctx.ConsumptionOverrideEnabled && ctx.ConsumptionOverride > 0 {
		return consumptionPick{value: ctx.ConsumptionOverride, source: "override"}
	}
	if veh.ConsumptionDefault != nil && *veh.ConsumptionDefault > 0 {
		return consumptionPick{value: *veh.ConsumptionDefault, source: "vehicle"}
	}
	return consumptionPick{value: fallbackConsumption, source: "fallback"}
}

func resolveFuelPrice(ctx PerOptionContext, fuelType string) float64 {
	switch fuelType {
	case catalog.FuelDiesel:
		return ctx.FuelPriceDiesel
	case catalog.FuelPetrol:
		return ctx.FuelPriceE95
	}
	return 0
}

// isFuelIncluded treats a missing field as TRUE: most catalog rows predate
// the column and those providers all bundle fuel.
func isFuelIncluded(raw string) bool {
	if raw == "" {
		return true
	}
	return strings.ToUpper(raw) == "TRUE"
}

func roundedPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := RoundToCents(*v)
	return &r
}
