// README: End-to-end quote flow over the bundled default catalog.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"carcalc/internal/config"
	httptransport "carcalc/internal/http"
	"carcalc/internal/modules/catalog"
	"carcalc/internal/modules/quote"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	catalogSvc := catalog.NewService(nil, nil, "../../data", nil)
	quoteSvc := quote.NewService(catalogSvc, nil, config.FuelConfig{PriceE95EUR: 1.75, PriceDieselEUR: 1.65}, nil)
	srv := httptest.NewServer(httptransport.NewRouter(quoteSvc, catalogSvc, nil))
	t.Cleanup(srv.Close)
	return srv
}

func postQuote(t *testing.T, srv *httptest.Server, body map[string]any) quote.Response {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatal(err)
	}
	res, err := http.Post(srv.URL+"/api/quote", "application/json", &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	var resp quote.Response
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestQuoteOverDefaultCatalog(t *testing.T) {
	srv := newServer(t)

	resp := postQuote(t, srv, map[string]any{
		"start":        "2026-01-24T09:00",
		"total_time":   "6:30",
		"parking_time": "2:30",
		"distance_km":  140,
	})

	if resp.TotalMin != 390 || resp.ParkingMin != 150 || resp.DistanceKm != 140 {
		t.Fatalf("trip echo = %d/%d/%v", resp.TotalMin, resp.ParkingMin, resp.DistanceKm)
	}
	if len(resp.Results) == 0 {
		t.Fatal("no results")
	}
	if len(resp.Errors) != 0 {
		t.Fatalf("soft errors over default catalog: %v", resp.Errors)
	}

	for i := 1; i < len(resp.Results); i++ {
		if resp.Results[i-1].TotalEUR > resp.Results[i].TotalEUR {
			t.Fatalf("results not sorted at %d: %v > %v", i, resp.Results[i-1].TotalEUR, resp.Results[i].TotalEUR)
		}
	}

	// Every breakdown must reproduce its own total from the line items.
	for _, r := range resp.Results {
		b := r.Breakdown
		sum := b.TripEUR + b.PlanEUR + b.TimeEUR + b.KmEUR + b.MinAddedEUR + b.FeesEUR + b.AirportEUR + b.FuelEUR
		if diff := sum - b.TotalEUR; diff > 0.005 || diff < -0.005 {
			t.Errorf("%s/%s: components sum %v, total %v", r.ProviderID, r.OptionID, sum, b.TotalEUR)
		}
	}
}

func TestQuoteProviderFilterAndAdjustments(t *testing.T) {
	srv := newServer(t)

	resp := postQuote(t, srv, map[string]any{
		"start":       "2026-01-24T12:00",
		"total_time":  "0:10",
		"distance_km": 2,
		"provider":    "carguru",
	})

	if len(resp.Results) == 0 {
		t.Fatal("no carguru results")
	}
	for _, r := range resp.Results {
		if r.ProviderID != "carguru" {
			t.Fatalf("filter leaked provider %s", r.ProviderID)
		}
	}

	// The PAYG option gets the backfilled service fee and the 2 EUR floor.
	for _, r := range resp.Results {
		if r.OptionType != "PAYG" {
			continue
		}
		if r.Breakdown.FeesEUR != 0.99 {
			t.Errorf("FeesEUR = %v, want backfilled 0.99", r.Breakdown.FeesEUR)
		}
		if r.TotalEUR < 2.0 {
			t.Errorf("TotalEUR = %v, want >= 2.00 floor", r.TotalEUR)
		}
	}
}

func TestQuoteNightWindowAffectsCarGuruRates(t *testing.T) {
	srv := newServer(t)

	day := postQuote(t, srv, map[string]any{
		"start":       "2026-01-24T10:00",
		"total_time":  "2:00",
		"distance_km": 10,
		"provider":    "carguru",
	})
	night := postQuote(t, srv, map[string]any{
		"start":       "2026-01-24T23:00",
		"total_time":  "2:00",
		"distance_km": 10,
		"provider":    "carguru",
	})

	dayTotal := findPAYGTotal(t, day)
	nightTotal := findPAYGTotal(t, night)
	// CarGuru's night drive rate (0,07) undercuts its day rate (0,09).
	if nightTotal >= dayTotal {
		t.Errorf("night total %v should undercut day total %v", nightTotal, dayTotal)
	}
}

func findPAYGTotal(t *testing.T, resp quote.Response) float64 {
	t.Helper()
	for _, r := range resp.Results {
		if r.OptionType == "PAYG" {
			return r.TotalEUR
		}
	}
	t.Fatal("no PAYG result")
	return 0
}

func TestCatalogRoundTrip(t *testing.T) {
	srv := newServer(t)

	res, err := http.Get(srv.URL + "/api/catalog")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	var payload struct {
		Source string         `json:"source"`
		Bundle catalog.Bundle `json:"bundle"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	if payload.Source != "default" {
		t.Errorf("source = %q", payload.Source)
	}

	cat := catalog.ParseBundle(payload.Bundle)
	if len(cat.Providers) != 3 {
		t.Errorf("providers = %d, want 3", len(cat.Providers))
	}
	if v, ok := cat.VehiclesByID["citybee_model3"]; !ok || v.FuelType != catalog.FuelEV {
		t.Errorf("model3 fuel = %+v", v)
	}
	if v, ok := cat.VehiclesByID["citybee_golf_diesel"]; !ok || v.FuelType != catalog.FuelDiesel {
		t.Errorf("golf fuel = %+v", v)
	}
}
