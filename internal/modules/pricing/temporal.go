// README: Builds the trip context and splits trip minutes into day/night
// buckets against a provider's night window.
package pricing

import (
	"errors"
	"math"
	"time"
)

var (
	ErrMissingStart        = errors.New("start time is required")
	ErrParkingExceedsTotal = errors.New("parking time must be <= total time")
)

// TripSpec is the caller-provided trip description, already parsed to
// primitive values.
type TripSpec struct {
	Start                      time.Time
	TotalMin                   int
	ParkingMin                 int
	DistanceKm                 float64
	Airport                    bool
	FuelPriceE95               float64
	FuelPriceDiesel            float64
	ConsumptionOverride        float64
	ConsumptionOverrideEnabled bool
}

// TripContext is the provider-independent temporal context of one trip.
type TripContext struct {
	Start                      time.Time
	End                        time.Time
	TotalMin                   int
	ParkingMin                 int
	DistKm                     float64
	Airport                    bool
	FuelPriceE95               float64
	FuelPriceDiesel            float64
	ConsumptionOverride        float64
	ConsumptionOverrideEnabled bool
	Days                       int
}

// PerOptionContext is a TripContext with the provider-specific day/night
// minute split. It is recomputed per option because night windows vary by
// provider.
type PerOptionContext struct {
	TripContext
	DriveDayMin   int
	DriveNightMin int
	ParkDayMin    int
	ParkNightMin  int
}

// NewTripContext validates the trip input and derives end time, distance (rounded
// up to whole km) and the day count (24h blocks, minimum 1).
func NewTripContext(spec TripSpec) (TripContext, error) {
	if spec.Start.IsZero() {
		return TripContext{}, ErrMissingStart
	}
	totalMin := max(0, spec.TotalMin)
	parkingMin := max(0, spec.ParkingMin)
	if parkingMin > totalMin {
		return TripContext{}, ErrParkingExceedsTotal
	}

	days := (totalMin + 1439) / 1440
	if days < 1 {
		days = 1
	}
	return TripContext{
		Start:                      spec.Start,
		End:                        spec.Start.Add(time.Duration(totalMin) * time.Minute),
		TotalMin:                   totalMin,
		ParkingMin:                 parkingMin,
		DistKm:                     math.Ceil(max(0, spec.DistanceKm)),
		Airport:                    spec.Airport,
		FuelPriceE95:               max(0, spec.FuelPriceE95),
		FuelPriceDiesel:            max(0, spec.FuelPriceDiesel),
		ConsumptionOverride:        max(0, spec.ConsumptionOverride),
		ConsumptionOverrideEnabled: spec.ConsumptionOverrideEnabled,
		Days:                       days,
	}, nil
}

// NightMinutes returns the overlap in minutes between [start, end) and every
// daily occurrence of the night window. Windows with nightEnd <= nightStart
// cross midnight. Returns 0 when a boundary fails to parse or end <= start.
func NightMinutes(start, end time.Time, nightStart, nightEnd string) int {
	ns, okStart := parseWallClock(nightStart)
	ne, okEnd := parseWallClock(nightEnd)
	if !okStart || !okEnd {
		return 0
	}
	if !end.After(start) {
		return 0
	}

	// A window ending at or before its start wraps past midnight.
	endOffset := ne
	if ne <= ns {
		endOffset += 1440
	}

	// Walk local calendar days from one day before the start date through
	// one day after the end date; cross-midnight windows that began the
	// previous evening still touch the interval.
	day := midnightOf(start).AddDate(0, 0, -1)
	lastDay := midnightOf(end).AddDate(0, 0, 1)

	total := 0.0
	for !day.After(lastDay) {
		segStart := day.Add(time.Duration(ns) * time.Minute)
		segEnd := day.Add(time.Duration(endOffset) * time.Minute)

		lo := start
		if segStart.After(lo) {
			lo = segStart
		}
		hi := end
		if segEnd.Before(hi) {
			hi = segEnd
		}
		if hi.After(lo) {
			total += hi.Sub(lo).Minutes()
		}
		day = day.AddDate(0, 0, 1)
	}

	n := int(math.Round(total))
	if n < 0 {
		n = 0
	}
	return n
}

func midnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MinuteBuckets is the per-option day/night split of drive and park time.
type MinuteBuckets struct {
	DriveDay   int
	DriveNight int
	ParkDay    int
	ParkNight  int
	DayMin     int
}

// AllocateParkingNight splits total and parking minutes into day/night
// buckets. Night parking is a proportional estimate, ceiling-biased so it is
// never under-allocated, and clamped so it exceeds neither the parking nor
// the night total.
func AllocateParkingNight(totalMin, parkingMin, nightMin int) MinuteBuckets {
	if totalMin <= 0 {
		return MinuteBuckets{}
	}
	dayMin := max(0, totalMin-nightMin)

	raw := float64(parkingMin) * float64(nightMin) / float64(totalMin)
	parkNight := int(math.Ceil(raw))
	parkNight = min(parkNight, nightMin, parkingMin)

	return MinuteBuckets{
		DriveDay:   dayMin - (parkingMin - parkNight),
		DriveNight: nightMin - parkNight,
		ParkDay:    parkingMin - parkNight,
		ParkNight:  parkNight,
		DayMin:     dayMin,
	}
}
