package catalog

import (
	"testing"

	"carcalc/internal/tsv"
)

func TestNormalizeProvidersDefaults(t *testing.T) {
	cat := Normalize(RawTables{
		Providers: []tsv.Record{
			{"provider_id": "bolt", "provider_name": "Bolt Drive", "night_start": "23:00", "night_end": "05:00"},
			{"provider_id": "ride", "provider_name": "", "night_start": "", "night_end": ""},
		},
	})

	if cat.Providers[0].NightStart != "23:00" {
		t.Errorf("night_start = %q", cat.Providers[0].NightStart)
	}
	p := cat.Providers[1]
	if p.Name != "ride" || p.NightStart != "22:00" || p.NightEnd != "06:00" {
		t.Errorf("defaults not applied: %+v", p)
	}
}

func TestInferFuelType(t *testing.T) {
	tests := []struct {
		name     string
		vehicle  tsv.Record
		wantFuel string
	}{
		{"explicit diesel", tsv.Record{"fuel_type": "diesel", "vehicle_name": "Tesla Model 3"}, FuelDiesel},
		{"explicit ev", tsv.Record{"fuel_type": "EV"}, FuelEV},
		{"keyword diesel in name", tsv.Record{"vehicle_name": "Golf Diesel"}, FuelDiesel},
		{"hybrid maps to petrol", tsv.Record{"vehicle_name": "Yaris Hybrid"}, FuelPetrol},
		{"e-power maps to petrol", tsv.Record{"vehicle_name": "Qashqai e-POWER"}, FuelPetrol},
		{"tesla maps to ev", tsv.Record{"vehicle_name": "Tesla Model Y"}, FuelEV},
		{"ev suffix in id", tsv.Record{"vehicle_id": "citybee_208 ev"}, FuelEV},
		{"default petrol", tsv.Record{"vehicle_name": "Fabia"}, FuelPetrol},
		{"invalid explicit falls through", tsv.Record{"fuel_type": "lpg", "vehicle_name": "Corsa"}, FuelPetrol},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferFuelType(tt.vehicle); got != tt.wantFuel {
				t.Errorf("inferFuelType() = %q, want %q", got, tt.wantFuel)
			}
		})
	}
}

func TestClampSnowboardFit(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"0", 0},
		{"1", 1},
		{"2", 2},
		{"3", 0},
		{"-1", 0},
		{"abc", 0},
		{"1.7", 1},
	}
	for _, tt := range tests {
		if got := clampSnowboardFit(tt.raw); got != tt.want {
			t.Errorf("clampSnowboardFit(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeVehicleConsumption(t *testing.T) {
	cat := Normalize(RawTables{
		Vehicles: []tsv.Record{
			{"vehicle_id": "a", "consumption_l_per_100km_default": "6.4"},
			{"vehicle_id": "b", "consumption_l_per_100km_default": ""},
			{"vehicle_id": "c", "consumption_l_per_100km_default": "-2"},
			{"vehicle_id": "d", "consumption_l_per_100km_default": "n/a"},
		},
	})
	if v := cat.VehiclesByID["a"]; v.ConsumptionDefault == nil || *v.ConsumptionDefault != 6.4 {
		t.Errorf("consumption a = %v", v.ConsumptionDefault)
	}
	for _, id := range []string{"b", "c", "d"} {
		if v := cat.VehiclesByID[id]; v.ConsumptionDefault != nil {
			t.Errorf("consumption %s = %v, want nil", id, *v.ConsumptionDefault)
		}
	}
}

func TestNormalizeDropsOrphanOptions(t *testing.T) {
	cat := Normalize(RawTables{
		Options: []tsv.Record{
			{"provider_id": "bolt", "vehicle_id": "bolt_yaris", "option_id": "a", "option_type": "PAYG"},
			{"provider_id": "", "vehicle_id": "bolt_yaris", "option_id": "b", "option_type": "PAYG"},
			{"provider_id": "bolt", "vehicle_id": "", "option_id": "c", "option_type": "PAYG"},
		},
	})
	if len(cat.Options) != 1 || cat.Options[0].ID != "a" {
		t.Errorf("options = %+v, want only option a", cat.Options)
	}
	if cat.Options[0].Fields["option_type"] != "PAYG" {
		t.Errorf("raw fields not retained: %v", cat.Options[0].Fields)
	}
}
