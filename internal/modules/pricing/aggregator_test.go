package pricing

import (
	"strings"
	"testing"

	"carcalc/internal/modules/catalog"
)

func rankCatalog() catalog.Catalog {
	mk := func(provider, vehicle, id, typ string, fields map[string]string) catalog.Option {
		fields["vehicle_id"] = vehicle
		o := testOption(provider, id, typ, fields)
		o.VehicleID = vehicle
		return o
	}
	return catalog.Catalog{
		Providers: []catalog.Provider{
			{ID: "bolt", Name: "Bolt", NightStart: "22:00", NightEnd: "06:00"},
			{ID: "citybee", Name: "CityBee", NightStart: "23:00", NightEnd: "07:00"},
		},
		VehiclesByID: map[string]catalog.Vehicle{
			"bolt_yaris":  {ProviderID: "bolt", ID: "bolt_yaris", Name: "Toyota Yaris", FuelType: catalog.FuelPetrol, SnowboardFit: 1},
			"citybee_up":  {ProviderID: "citybee", ID: "citybee_up", Name: "VW Up", FuelType: catalog.FuelPetrol},
			"citybee_id3": {ProviderID: "citybee", ID: "citybee_id3", Name: "VW ID.3", FuelType: catalog.FuelEV},
		},
		Options: []catalog.Option{
			mk("bolt", "bolt_yaris", "bolt_payg", "PAYG", map[string]string{
				"drive_day_min_rate_eur": "0.20",
				"fuel_included":          "TRUE",
			}),
			mk("citybee", "citybee_up", "citybee_payg", "PAYG", map[string]string{
				"drive_day_min_rate_eur": "0.10",
				"fuel_included":          "TRUE",
			}),
			mk("citybee", "citybee_id3", "citybee_broken", "LEASE", map[string]string{}),
			mk("citybee", "citybee_id3", "citybee_payg_ev", "PAYG", map[string]string{
				"drive_day_min_rate_eur": "0.10",
				"fuel_included":          "FALSE",
			}),
		},
	}
}

func TestComputeAllSortsAscendingByTotal(t *testing.T) {
	ctx := testContext(t, 60, 0, 0)
	results, errs := ComputeAll(rankCatalog(), ctx, "", nil)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].TotalEUR > results[i].TotalEUR {
			t.Fatalf("results not ascending: %v then %v", results[i-1].TotalEUR, results[i].TotalEUR)
		}
	}
	if results[len(results)-1].OptionID != "bolt_payg" {
		t.Errorf("most expensive = %s, want bolt_payg", results[len(results)-1].OptionID)
	}

	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0] != "citybee/citybee_id3/citybee_broken: unknown option_type: LEASE" {
		t.Errorf("error = %q", errs[0])
	}
}

func TestComputeAllTiesKeepCatalogOrder(t *testing.T) {
	ctx := testContext(t, 60, 0, 0)
	results, _ := ComputeAll(rankCatalog(), ctx, "citybee", nil)

	// Both citybee PAYG options cost 6.00 for an hour of day driving; the
	// EV's fuel charge is zero despite fuel_included FALSE.
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].TotalEUR != results[1].TotalEUR {
		t.Fatalf("expected a tie, got %v and %v", results[0].TotalEUR, results[1].TotalEUR)
	}
	if results[0].OptionID != "citybee_payg" || results[1].OptionID != "citybee_payg_ev" {
		t.Errorf("tie order = %s, %s; want catalog order", results[0].OptionID, results[1].OptionID)
	}
}

func TestComputeAllProviderFilterIsCaseInsensitive(t *testing.T) {
	ctx := testContext(t, 60, 0, 0)
	results, errs := ComputeAll(rankCatalog(), ctx, "BOLT", nil)

	if len(results) != 1 || results[0].ProviderID != "bolt" {
		t.Fatalf("results = %+v, want only bolt", results)
	}
	if len(errs) != 0 {
		t.Errorf("errs = %v, want none (broken option filtered out)", errs)
	}
}

func TestComputeAllSynthesizesMissingProviderAndVehicle(t *testing.T) {
	cat := catalog.Catalog{
		VehiclesByID: map[string]catalog.Vehicle{},
		Options: []catalog.Option{
			func() catalog.Option {
				o := testOption("ghost", "ghost_payg", "PAYG", map[string]string{
					"drive_day_min_rate_eur": "0.10",
					"fuel_included":          "TRUE",
				})
				o.VehicleID = "ghost_car"
				return o
			}(),
		},
	}

	// 23:00 start, 2h trip: the stub provider's default 22:00-06:00 window
	// makes all 120 minutes night minutes.
	ctx, err := NewTripContext(TripSpec{
		Start:    mustTime(t, "2026-01-24T23:00"),
		TotalMin: 120,
	})
	if err != nil {
		t.Fatal(err)
	}

	results, errs := ComputeAll(cat, ctx, "", nil)
	if len(errs) != 0 {
		t.Fatalf("errs = %v", errs)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.ProviderName != "ghost" || r.VehicleName != "ghost_car" {
		t.Errorf("stub names = %q / %q", r.ProviderName, r.VehicleName)
	}
	if r.Breakdown.Meta.DriveNightMin != 120 || r.Breakdown.Meta.DriveDayMin != 0 {
		t.Errorf("night split = day %d / night %d, want 0/120",
			r.Breakdown.Meta.DriveDayMin, r.Breakdown.Meta.DriveNightMin)
	}
	if r.TotalEUR != 12 {
		t.Errorf("TotalEUR = %v, want 12.00", r.TotalEUR)
	}
}

func TestComputeAllSkipsBlankProviderAndOptionIDs(t *testing.T) {
	cat := catalog.Catalog{
		VehiclesByID: map[string]catalog.Vehicle{},
		Options: []catalog.Option{
			{ProviderID: "", ID: "no_provider", Type: "PAYG", Fields: map[string]string{}},
			{ProviderID: "   ", ID: "blank_provider", Type: "PAYG", Fields: map[string]string{}},
		},
	}
	results, errs := ComputeAll(cat, testContext(t, 60, 0, 0), "", nil)
	if len(results) != 0 || len(errs) != 0 {
		t.Errorf("results = %v, errs = %v; want both empty", results, errs)
	}
}

func TestComputeAllUsesProviderNightWindow(t *testing.T) {
	cat := rankCatalog()
	// 22:30 start, 60 min. Bolt's 22:00 window covers all of it; CityBee's
	// 23:00 window only the last 30 minutes.
	ctx, err := NewTripContext(TripSpec{
		Start:    mustTime(t, "2026-01-24T22:30"),
		TotalMin: 60,
	})
	if err != nil {
		t.Fatal(err)
	}

	results, _ := ComputeAll(cat, ctx, "", nil)
	byOption := map[string]Result{}
	for _, r := range results {
		byOption[r.OptionID] = r
	}

	if got := byOption["bolt_payg"].Breakdown.Meta.DriveNightMin; got != 60 {
		t.Errorf("bolt night minutes = %d, want 60", got)
	}
	if got := byOption["citybee_payg"].Breakdown.Meta.DriveNightMin; got != 30 {
		t.Errorf("citybee night minutes = %d, want 30", got)
	}
}

func TestComputeAllErrorMentionsOptionPath(t *testing.T) {
	cat := catalog.Catalog{
		VehiclesByID: map[string]catalog.Vehicle{},
		Options: []catalog.Option{
			{ProviderID: "p1", VehicleID: "v1", ID: "o1", Type: "MYSTERY", Fields: map[string]string{}},
		},
	}
	_, errs := ComputeAll(cat, testContext(t, 60, 0, 0), "", nil)
	if len(errs) != 1 {
		t.Fatalf("errs = %v", errs)
	}
	if !strings.HasPrefix(errs[0], "p1/v1/o1: ") {
		t.Errorf("error = %q, want p1/v1/o1 prefix", errs[0])
	}
}
