// README: Pricing option variants and the per-option price breakdown.
package pricing

import "strings"

// OptionType is the closed set of billing models. Dispatch is exhaustive
// over these three; anything else is a per-option soft failure.
type OptionType string

const (
	OptionPAYG    OptionType = "PAYG"
	OptionPackage OptionType = "PACKAGE"
	OptionDaily   OptionType = "DAILY"
)

// ParseOptionType folds a raw option_type field into a variant.
func ParseOptionType(raw string) (OptionType, bool) {
	switch OptionType(strings.ToUpper(strings.TrimSpace(raw))) {
	case OptionPAYG:
		return OptionPAYG, true
	case OptionPackage:
		return OptionPackage, true
	case OptionDaily:
		return OptionDaily, true
	}
	return "", false
}

// Localizer translates display strings. The core never holds language
// state; nil means identity.
type Localizer func(string) string

func localize(loc Localizer, s string) string {
	if loc == nil {
		return s
	}
	return loc(s)
}

// Labels are the display names for the breakdown line items.
type Labels struct {
	Trip string `json:"trip"`
	Plan string `json:"plan"`
	Time string `json:"time"`
	Km   string `json:"km"`
	Fees string `json:"fees"`
}

// Tooltips reconstruct each line item's arithmetic as human-readable text.
type Tooltips struct {
	Trip string `json:"trip"`
	Plan string `json:"plan"`
	Time string `json:"time"`
	Km   string `json:"km"`
	Fees string `json:"fees"`
}

// Meta is the computation trace: every resolved rate, cap and source needed
// to explain the figures without re-running the pricing logic.
type Meta struct {
	OptionType            string   `json:"option_type"`
	TotalMin              int      `json:"total_min"`
	TotalKm               float64  `json:"total_km"`
	Days                  int      `json:"days"`
	FuelIncluded          bool     `json:"fuel_included"`
	FuelType              string   `json:"fuel_type"`
	FuelPriceEURPerL      float64  `json:"fuel_price_eur_per_l"`
	FuelConsumptionBase   float64  `json:"fuel_consumption_l_per_100km_base"`
	FuelConsumptionFactor float64  `json:"fuel_consumption_riga_factor"`
	FuelConsumptionUsed   float64  `json:"fuel_consumption_l_per_100km_used"`
	FuelConsumptionSource string   `json:"fuel_consumption_source"`
	DriveDayMin           int      `json:"drive_day_min"`
	DriveNightMin         int      `json:"drive_night_min"`
	ParkDayMin            int      `json:"park_day_min"`
	ParkNightMin          int      `json:"park_night_min"`
	DriveDayRate          float64  `json:"drive_day_rate"`
	DriveNightRate        float64  `json:"drive_night_rate"`
	ParkDayRate           float64  `json:"park_day_rate"`
	ParkNightRate         float64  `json:"park_night_rate"`
	TimeRawEUR            float64  `json:"time_raw_eur"`
	CapApplied            bool     `json:"cap_applied"`
	CapValueEUR           *float64 `json:"cap_value_eur"`
	IncludedMin           *float64 `json:"included_min"`
	OverMin               float64  `json:"over_min"`
	BlendedRateEURPerMin  float64  `json:"blended_rate_eur_per_min"`
	IncludedKm            float64  `json:"included_km"`
	ChargedKm             float64  `json:"charged_km"`
	KmRateEUR             float64  `json:"km_rate_eur"`
	KmRawEUR              float64  `json:"km_raw_eur"`
	TripFeeEUR            float64  `json:"trip_fee_eur"`
	MinTotalEUR           *float64 `json:"min_total_eur"`
	PlanLabel             string   `json:"plan_label"`
	PlanEUR               float64  `json:"plan_eur"`
	FeesUnlockEUR         float64  `json:"fees_unlock_eur"`
	FeesReservationEUR    float64  `json:"fees_reservation_eur"`
	FeesFixedEUR          float64  `json:"fees_fixed_eur"`
	FeesFallbackApplied   bool     `json:"fees_fallback_applied"`
}

// Breakdown itemizes one priced option in euros. Every amount is already
// rounded to cents and the total is the sum of the rounded components, so
// displayed line items always reproduce the total exactly.
type Breakdown struct {
	TripEUR     float64  `json:"trip_eur"`
	PlanEUR     float64  `json:"plan_eur"`
	TimeEUR     float64  `json:"time_eur"`
	KmEUR       float64  `json:"km_eur"`
	MinAddedEUR float64  `json:"min_added_eur"`
	FeesEUR     float64  `json:"fees_eur"`
	AirportEUR  float64  `json:"airport_eur"`
	FuelEUR     float64  `json:"fuel_eur"`
	CapSavedEUR float64  `json:"cap_saved_eur"`
	TotalEUR    float64  `json:"total_eur"`
	Labels      Labels   `json:"labels"`
	Meta        Meta     `json:"meta"`
	Tooltips    Tooltips `json:"tooltips"`
}

// Priced is the outcome of pricing one option: either a breakdown or a
// soft-failure reason.
type Priced struct {
	OK        bool
	Reason    string
	TotalEUR  float64
	Breakdown Breakdown
}

// Result is one ranked row: the priced option joined with its provider and
// vehicle display data.
type Result struct {
	ProviderID   string    `json:"provider_id"`
	ProviderName string    `json:"provider_name"`
	VehicleID    string    `json:"vehicle_id"`
	VehicleName  string    `json:"vehicle_name"`
	SnowboardFit int       `json:"snowboard_fit"`
	OptionID     string    `json:"option_id"`
	OptionName   string    `json:"option_name"`
	OptionType   string    `json:"option_type"`
	TotalEUR     float64   `json:"total_eur"`
	Breakdown    Breakdown `json:"breakdown"`
}
