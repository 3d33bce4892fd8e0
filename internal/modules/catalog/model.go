// README: Catalog entities produced by one normalization pass.
package catalog

// Fuel types a vehicle can be priced with. Hybrids are folded into petrol.
const (
	FuelPetrol = "petrol"
	FuelDiesel = "diesel"
	FuelEV     = "ev"
)

// Default night window used when a provider row leaves it blank and when a
// provider has to be synthesized for an orphan option.
const (
	DefaultNightStart = "22:00"
	DefaultNightEnd   = "06:00"
)

type Provider struct {
	ID         string `json:"provider_id"`
	Name       string `json:"provider_name"`
	NightStart string `json:"night_start"`
	NightEnd   string `json:"night_end"`
}

type Vehicle struct {
	ProviderID           string   `json:"provider_id"`
	ID                   string   `json:"vehicle_id"`
	Name                 string   `json:"vehicle_name"`
	Class                string   `json:"vehicle_class"`
	SnowboardFit         int      `json:"snowboard_fit"`
	SnowboardSourceURL   string   `json:"snowboard_source_url,omitempty"`
	FuelType             string   `json:"fuel_type"`
	ConsumptionDefault   *float64 `json:"consumption_l_per_100km_default"`
	ConsumptionSourceURL string   `json:"consumption_source_url,omitempty"`
}

// Option keeps its rate/fee/cap fields as the raw strings from the table;
// they are loosely formatted and only the pricing engine knows how to read
// them. Identity fields are promoted for joining and display.
type Option struct {
	ProviderID string            `json:"provider_id"`
	VehicleID  string            `json:"vehicle_id"`
	ID         string            `json:"option_id"`
	Name       string            `json:"option_name"`
	Type       string            `json:"option_type"`
	Fields     map[string]string `json:"-"`
}

// Catalog is the normalized output of one pass. It is rebuilt from the
// current data source on every pass and never mutated afterwards.
type Catalog struct {
	Providers    []Provider
	VehiclesByID map[string]Vehicle
	Options      []Option
}
