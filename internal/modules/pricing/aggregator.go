// README: Ranking aggregator; joins options with providers and vehicles,
// prices every option and sorts the results by total cost.
package pricing

import (
	"fmt"
	"sort"
	"strings"

	"carcalc/internal/modules/catalog"
)

// ComputeAll prices every option in the catalog against the trip context and
// returns the results sorted ascending by total (stable on ties) together
// with the soft-error list. A non-empty providerFilter restricts processing
// to that provider id, case-insensitively, before any computation.
func ComputeAll(cat catalog.Catalog, ctx TripContext, providerFilter string, loc Localizer) ([]Result, []string) {
	providersByID := make(map[string]catalog.Provider, len(cat.Providers))
	for _, p := range cat.Providers {
		providersByID[p.ID] = p
	}
	filter := strings.TrimSpace(providerFilter)

	results := make([]Result, 0, len(cat.Options))
	var errs []string

	for _, opt := range cat.Options {
		providerID := strings.TrimSpace(opt.ProviderID)
		if providerID == "" {
			continue
		}
		if filter != "" && !strings.EqualFold(providerID, filter) {
			continue
		}

		provider := resolveProvider(providersByID, providerID)
		vehicle := resolveVehicle(cat.VehiclesByID, opt.VehicleID, providerID)

		// Night windows are provider-specific, so the day/night split is
		// recomputed for every option.
		nightMin := NightMinutes(ctx.Start, ctx.End, provider.NightStart, provider.NightEnd)
		nightMin = min(ctx.TotalMin, max(0, nightMin))
		alloc := AllocateParkingNight(ctx.TotalMin, ctx.ParkingMin, nightMin)

		perCtx := PerOptionContext{
			TripContext:   ctx,
			DriveDayMin:   alloc.DriveDay,
			DriveNightMin: alloc.DriveNight,
			ParkDayMin:    alloc.ParkDay,
			ParkNightMin:  alloc.ParkNight,
		}

		priced := PriceOption(perCtx, opt, vehicle, loc)
		if !priced.OK {
			errs = append(errs, fmt.Sprintf("%s/%s/%s: %s", providerID, opt.VehicleID, opt.ID, priced.Reason))
			continue
		}

		results = append(results, Result{
			ProviderID:   providerID,
			ProviderName: provider.Name,
			VehicleID:    opt.VehicleID,
			VehicleName:  vehicle.Name,
			SnowboardFit: vehicle.SnowboardFit,
			OptionID:     opt.ID,
			OptionName:   opt.Name,
			OptionType:   opt.Type,
			TotalEUR:     priced.TotalEUR,
			Breakdown:    priced.Breakdown,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalEUR < results[j].TotalEUR
	})
	return results, errs
}

// resolveProvider returns the cataloged provider, or a fully-populated stub
// with the default night window so pricing never branches on presence.
func resolveProvider(providersByID map[string]catalog.Provider, providerID string) catalog.Provider {
	if p, ok := providersByID[providerID]; ok {
		if p.Name == "" {
			p.Name = providerID
		}
		return p
	}
	return catalog.Provider{
		ID:         providerID,
		Name:       providerID,
		NightStart: catalog.DefaultNightStart,
		NightEnd:   catalog.DefaultNightEnd,
	}
}

// resolveVehicle returns the cataloged vehicle, or a petrol-typed stub named
// after its id.
func resolveVehicle(vehiclesByID map[string]catalog.Vehicle, vehicleID, providerID string) catalog.Vehicle {
	if v, ok := vehiclesByID[vehicleID]; ok {
		if v.Name == "" {
			v.Name = vehicleID
		}
		return v
	}
	return catalog.Vehicle{
		ProviderID: providerID,
		ID:         vehicleID,
		Name:       vehicleID,
		FuelType:   catalog.FuelPetrol,
	}
}
