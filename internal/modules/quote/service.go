// README: Quote service; turns a raw trip request into a ranked list of
// priced options across all catalog providers.
package quote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"carcalc/internal/config"
	"carcalc/internal/modules/catalog"
	"carcalc/internal/modules/pricing"
)

var (
	ErrValidation  = errors.New("invalid quote request")
	ErrNoDistance  = errors.New("distance or origin/destination required")
	ErrRouteFailed = errors.New("distance resolution failed")
)

// CatalogSource yields the effective normalized catalog.
type CatalogSource interface {
	Load(ctx context.Context) (catalog.Catalog, error)
}

// DistanceResolver turns an origin/destination pair into driving kilometers.
// The Google Maps route service satisfies this; a nil resolver disables
// address-based requests.
type DistanceResolver interface {
	DistanceKm(ctx context.Context, origin, destination string) (float64, error)
}

// Request is one trip to price. Durations arrive as "H:MM" text, matching
// the form inputs they come from. DistanceKm wins over the
// origin/destination pair when both are set.
type Request struct {
	Start       time.Time
	TotalText   string
	ParkingText string

	DistanceKm  float64
	Origin      string
	Destination string

	Provider string
	Airport  bool

	FuelPriceE95EUR    float64
	FuelPriceDieselEUR float64

	ConsumptionLPer100Km       float64
	ConsumptionOverrideEnabled bool
}

// Response carries the ranked results plus the per-option soft errors and
// the resolved trip figures the caller may want to echo back.
type Response struct {
	QuoteID        string           `json:"quote_id"`
	TotalMin       int              `json:"total_min"`
	ParkingMin     int              `json:"parking_min"`
	DistanceKm     float64          `json:"distance_km"`
	DistanceSource string           `json:"distance_source"`
	Days           int              `json:"days"`
	Results        []pricing.Result `json:"results"`
	Errors         []string         `json:"errors"`
}

type Service struct {
	catalog  CatalogSource
	distance DistanceResolver
	fuel     config.FuelConfig
	logger   *slog.Logger
}

func NewService(cat CatalogSource, distance DistanceResolver, fuel config.FuelConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{catalog: cat, distance: distance, fuel: fuel, logger: logger}
}

// Quote validates the request, resolves distance, loads the catalog and
// prices every option. Per-option pricing failures are soft and come back in
// Response.Errors; only request-level problems return an error.
func (s *Service) Quote(ctx context.Context, req Request) (Response, error) {
	totalMin, err := pricing.ParseDuration(req.TotalText)
	if err != nil {
		return Response{}, fmt.Errorf("%w: total time: %v", ErrValidation, err)
	}
	parkingMin, err := pricing.ParseDuration(req.ParkingText)
	if err != nil {
		return Response{}, fmt.Errorf("%w: parking time: %v", ErrValidation, err)
	}

	distanceKm := req.DistanceKm
	distanceSource := "input"
	if distanceKm <= 0 {
		if req.Origin == "" || req.Destination == "" || s.distance == nil {
			return Response{}, ErrNoDistance
		}
		distanceKm, err = s.distance.DistanceKm(ctx, req.Origin, req.Destination)
		if err != nil {
			return Response{}, fmt.Errorf("%w: %w", ErrRouteFailed, err)
		}
		distanceSource = "route"
	}

	fuelE95 := req.FuelPriceE95EUR
	if fuelE95 <= 0 {
		fuelE95 = s.fuel.PriceE95EUR
	}
	fuelDiesel := req.FuelPriceDieselEUR
	if fuelDiesel <= 0 {
		fuelDiesel = s.fuel.PriceDieselEUR
	}

	tripCtx, err := pricing.NewTripContext(pricing.TripSpec{
		Start:                      req.Start,
		TotalMin:                   totalMin,
		ParkingMin:                 parkingMin,
		DistanceKm:                 distanceKm,
		Airport:                    req.Airport,
		FuelPriceE95:               fuelE95,
		FuelPriceDiesel:            fuelDiesel,
		ConsumptionOverride:        req.ConsumptionLPer100Km,
		ConsumptionOverrideEnabled: req.ConsumptionOverrideEnabled,
	})
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load catalog: %w", err)
	}

	results, softErrs := pricing.ComputeAll(cat, tripCtx, req.Provider, nil)

	resp := Response{
		QuoteID:        uuid.NewString(),
		TotalMin:       tripCtx.TotalMin,
		ParkingMin:     tripCtx.ParkingMin,
		DistanceKm:     tripCtx.DistKm,
		DistanceSource: distanceSource,
		Days:           tripCtx.Days,
		Results:        results,
		Errors:         softErrs,
	}
	s.logger.Info("quote computed",
		"quote_id", resp.QuoteID,
		"total_min", resp.TotalMin,
		"distance_km", resp.DistanceKm,
		"options", len(results),
		"soft_errors", len(softErrs))
	return resp, nil
}
