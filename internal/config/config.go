// README: Config loader with env defaults for HTTP, DB, Redis, catalog data
// and fuel price settings.
package config

import (
	"os"
	"strconv"
)

type FuelConfig struct {
	PriceE95EUR    float64
	PriceDieselEUR float64
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Catalog struct {
		DataDir string
	}
	Maps struct {
		APIKey string
	}
	Fuel FuelConfig
}

// Load reads the environment. DB, Redis and Maps are optional integrations;
// an empty value disables the corresponding component.
func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("CARCALC_HTTP_ADDR", ":8080")
	cfg.DB.DSN = envOrDefault("CARCALC_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("CARCALC_REDIS_ADDR", "")
	cfg.Catalog.DataDir = envOrDefault("CARCALC_DATA_DIR", "data")
	cfg.Maps.APIKey = envOrDefault("CARCALC_MAPS_KEY", "")
	cfg.Fuel.PriceE95EUR = envOrDefaultFloat("CARCALC_FUEL_E95_EUR", 1.75)
	cfg.Fuel.PriceDieselEUR = envOrDefaultFloat("CARCALC_FUEL_DIESEL_EUR", 1.65)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
