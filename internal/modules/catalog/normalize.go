// README: Pure mapping from raw TSV records to typed catalog entities.
package catalog

import (
	"strconv"
	"strings"

	"carcalc/internal/tsv"
)

// RawTables bundles the three parsed source tables.
type RawTables struct {
	Providers []tsv.Record
	Vehicles  []tsv.Record
	Options   []tsv.Record
}

// Normalize converts raw records into a Catalog. Defaulting and inference
// happen here; options that cannot be joined (blank provider or vehicle id)
// are dropped silently.
func Normalize(raw RawTables) Catalog {
	providers := make([]Provider, 0, len(raw.Providers))
	for _, p := range raw.Providers {
		providers = append(providers, Provider{
			ID:         p["provider_id"],
			Name:       orDefault(p["provider_name"], p["provider_id"]),
			NightStart: orDefault(p["night_start"], DefaultNightStart),
			NightEnd:   orDefault(p["night_end"], DefaultNightEnd),
		})
	}

	vehiclesByID := make(map[string]Vehicle, len(raw.Vehicles))
	for _, v := range raw.Vehicles {
		vehiclesByID[v["vehicle_id"]] = Vehicle{
			ProviderID:           v["provider_id"],
			ID:                   v["vehicle_id"],
			Name:                 orDefault(v["vehicle_name"], v["vehicle_id"]),
			Class:                v["vehicle_class"],
			SnowboardFit:         clampSnowboardFit(v["snowboard_fit"]),
			SnowboardSourceURL:   v["snowboard_source_url"],
			FuelType:             inferFuelType(v),
			ConsumptionDefault:   parseConsumptionDefault(v["consumption_l_per_100km_default"]),
			ConsumptionSourceURL: v["consumption_source_url"],
		}
	}

	var options []Option
	for _, o := range raw.Options {
		if strings.TrimSpace(o["provider_id"]) == "" || strings.TrimSpace(o["vehicle_id"]) == "" {
			continue
		}
		options = append(options, Option{
			ProviderID: o["provider_id"],
			VehicleID:  o["vehicle_id"],
			ID:         o["option_id"],
			Name:       orDefault(o["option_name"], o["option_id"]),
			Type:       o["option_type"],
			Fields:     o,
		})
	}

	return Catalog{Providers: providers, VehiclesByID: vehiclesByID, Options: options}
}

// inferFuelType resolves the fuel type in order: explicit valid value,
// "diesel" keyword, hybrid-like keywords (treated as petrol), EV-like
// keywords, petrol.
func inferFuelType(v tsv.Record) string {
	switch strings.ToLower(strings.TrimSpace(v["fuel_type"])) {
	case FuelPetrol:
		return FuelPetrol
	case FuelDiesel:
		return FuelDiesel
	case FuelEV:
		return FuelEV
	}

	name := strings.ToLower(strings.TrimSpace(v["vehicle_name"]))
	id := strings.ToLower(strings.TrimSpace(v["vehicle_id"]))
	hay := name + " " + id

	if strings.Contains(hay, "diesel") {
		return FuelDiesel
	}
	if strings.Contains(hay, "hybrid") || strings.Contains(hay, "e-power") ||
		strings.Contains(hay, "epower") || strings.Contains(hay, "phev") {
		return FuelPetrol
	}
	if strings.Contains(hay, "tesla") || strings.Contains(hay, "electric") ||
		strings.Contains(hay, " ev") || strings.HasSuffix(hay, " ev") {
		return FuelEV
	}
	return FuelPetrol
}

// clampSnowboardFit parses the 0/1/2 fit score. Blank, non-numeric, negative
// and out-of-range values all normalize to 0.
func clampSnowboardFit(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < 0 || n > 2 {
		return 0
	}
	return int(n)
}

func parseConsumptionDefault(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
