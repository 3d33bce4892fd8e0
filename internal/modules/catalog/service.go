// README: Catalog service resolves the effective TSV bundle and normalizes it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"carcalc/internal/tsv"
)

// Source tells callers where the effective bundle came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceOverride Source = "override"
)

var ErrInvalidBundle = errors.New("invalid catalog bundle")

// Service resolves the effective catalog: Redis cache, then the saved
// Postgres override, then the bundled TSV files. Store and cache may be nil
// (the CLI and tests run file-only).
type Service struct {
	store   *Store
	cache   *Cache
	dataDir string
	logger  *slog.Logger
}

func NewService(store *Store, cache *Cache, dataDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{store: store, cache: cache, dataDir: dataDir, logger: logger}
}

// Effective returns the current bundle and its source.
func (s *Service) Effective(ctx context.Context) (Bundle, Source, error) {
	if s.cache != nil {
		if b, source, err := s.cache.Get(ctx); err != nil {
			s.logger.Warn("catalog cache read failed", "error", err)
		} else if b != nil {
			return *b, source, nil
		}
	}

	bundle, source, err := s.resolve(ctx)
	if err != nil {
		return Bundle{}, "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, bundle, source); err != nil {
			s.logger.Warn("catalog cache write failed", "error", err)
		}
	}
	return bundle, source, nil
}

func (s *Service) resolve(ctx context.Context) (Bundle, Source, error) {
	if s.store != nil {
		override, err := s.store.GetOverride(ctx)
		if err != nil {
			return Bundle{}, "", fmt.Errorf("load catalog override: %w", err)
		}
		if override != nil {
			return *override, SourceOverride, nil
		}
	}

	bundle, err := s.readDefaults()
	if err != nil {
		return Bundle{}, "", err
	}
	return bundle, SourceDefault, nil
}

func (s *Service) readDefaults() (Bundle, error) {
	read := func(name string) (string, error) {
		raw, err := os.ReadFile(filepath.Join(s.dataDir, name))
		if err != nil {
			return "", fmt.Errorf("read default catalog table: %w", err)
		}
		return string(raw), nil
	}
	var b Bundle
	var err error
	if b.ProvidersTSV, err = read("providers.tsv"); err != nil {
		return Bundle{}, err
	}
	if b.VehiclesTSV, err = read("vehicles.tsv"); err != nil {
		return Bundle{}, err
	}
	if b.OptionsTSV, err = read("options.tsv"); err != nil {
		return Bundle{}, err
	}
	return b, nil
}

// Save validates and stores an override bundle.
func (s *Service) Save(ctx context.Context, b Bundle) error {
	if err := validateBundle(b); err != nil {
		return err
	}
	if s.store == nil {
		return errors.New("catalog store not configured")
	}
	if err := s.store.SaveOverride(ctx, b); err != nil {
		return fmt.Errorf("save catalog override: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// Reset drops the override so the bundled defaults apply again.
func (s *Service) Reset(ctx context.Context) error {
	if s.store == nil {
		return errors.New("catalog store not configured")
	}
	if err := s.store.ClearOverride(ctx); err != nil {
		return fmt.Errorf("clear catalog override: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("catalog cache invalidate failed", "error", err)
	}
}

// Load resolves the effective bundle, parses it and normalizes it.
func (s *Service) Load(ctx context.Context) (Catalog, error) {
	bundle, _, err := s.Effective(ctx)
	if err != nil {
		return Catalog{}, err
	}
	return ParseBundle(bundle), nil
}

// ParseBundle turns raw TSV text into a normalized catalog.
func ParseBundle(b Bundle) Catalog {
	return Normalize(RawTables{
		Providers: tsv.Parse(b.ProvidersTSV).Records,
		Vehicles:  tsv.Parse(b.VehiclesTSV).Records,
		Options:   tsv.Parse(b.OptionsTSV).Records,
	})
}

func validateBundle(b Bundle) error {
	checks := []struct {
		name     string
		text     string
		required []string
	}{
		{"providers", b.ProvidersTSV, []string{"provider_id"}},
		{"vehicles", b.VehiclesTSV, []string{"vehicle_id"}},
		{"options", b.OptionsTSV, []string{"provider_id", "vehicle_id", "option_id", "option_type"}},
	}
	for _, c := range checks {
		table := tsv.Parse(c.text)
		for _, col := range c.required {
			if !slices.Contains(table.Header, col) {
				return fmt.Errorf("%w: %s table is missing column %q", ErrInvalidBundle, c.name, col)
			}
		}
	}
	return nil
}
