// README: CLI ranking tool; prices a trip against the bundled catalog and
// prints the results as a table.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"carcalc/internal/config"
	"carcalc/internal/modules/catalog"
	"carcalc/internal/modules/quote"
)

func main() {
	var (
		dataDir     = flag.String("data", "data", "directory with the catalog TSV files")
		start       = flag.String("start", "", "trip start, 2006-01-02T15:04 (default: now)")
		total       = flag.String("total", "", "total trip time, H:MM")
		parking     = flag.String("parking", "", "parking time, H:MM")
		distance    = flag.Float64("km", 0, "trip distance in km")
		provider    = flag.String("provider", "", "restrict to one provider id")
		airport     = flag.Bool("airport", false, "trip touches the airport zone")
		fuelE95     = flag.Float64("fuel-e95", 0, "E95 price override, EUR/L")
		fuelDiesel  = flag.Float64("fuel-diesel", 0, "diesel price override, EUR/L")
		consumption = flag.Float64("consumption", 0, "consumption override, L/100km")
		showErrs    = flag.Bool("errors", false, "print per-option pricing errors")
	)
	flag.Parse()

	startAt := time.Now()
	if *start != "" {
		ts, err := time.ParseInLocation("2006-01-02T15:04", *start, time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -start: %v\n", err)
			os.Exit(2)
		}
		startAt = ts
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalogSvc := catalog.NewService(nil, nil, *dataDir, logger)
	quoteSvc := quote.NewService(catalogSvc, nil, cfg.Fuel, logger)

	resp, err := quoteSvc.Quote(context.Background(), quote.Request{
		Start:                      startAt,
		TotalText:                  *total,
		ParkingText:                *parking,
		DistanceKm:                 *distance,
		Provider:                   *provider,
		Airport:                    *airport,
		FuelPriceE95EUR:            *fuelE95,
		FuelPriceDieselEUR:         *fuelDiesel,
		ConsumptionLPer100Km:       *consumption,
		ConsumptionOverrideEnabled: *consumption > 0,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Trip: %d min (%d min parking), %.0f km, %d day(s)\n\n",
		resp.TotalMin, resp.ParkingMin, resp.DistanceKm, resp.Days)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPROVIDER\tVEHICLE\tOPTION\tTYPE\tTIME\tKM\tFUEL\tFEES\tTOTAL")
	for i, r := range resp.Results {
		b := r.Breakdown
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			i+1, r.ProviderName, r.VehicleName, r.OptionName, r.OptionType,
			b.TimeEUR, b.KmEUR, b.FuelEUR, b.TripEUR+b.FeesEUR+b.AirportEUR+b.MinAddedEUR+b.PlanEUR, b.TotalEUR)
	}
	w.Flush()

	if *showErrs && len(resp.Errors) > 0 {
		fmt.Println("\nSkipped options:")
		for _, e := range resp.Errors {
			fmt.Println("  " + e)
		}
	}
}
