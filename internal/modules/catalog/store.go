// README: Catalog override store backed by PostgreSQL.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Bundle is one complete set of catalog tables as raw TSV text. The bundled
// files are the defaults; a saved bundle overrides them until cleared.
type Bundle struct {
	ProvidersTSV string `json:"providers_tsv"`
	VehiclesTSV  string `json:"vehicles_tsv"`
	OptionsTSV   string `json:"options_tsv"`
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Single-row table: there is exactly one override slot.
const overrideRowID = 1

// GetOverride returns the saved override bundle, or nil when none is saved.
func (s *Store) GetOverride(ctx context.Context) (*Bundle, error) {
	var b Bundle
	err := s.db.QueryRow(ctx,
		`SELECT providers_tsv, vehicles_tsv, options_tsv
		   FROM catalog_overrides WHERE id = $1`, overrideRowID,
	).Scan(&b.ProvidersTSV, &b.VehiclesTSV, &b.OptionsTSV)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) SaveOverride(ctx context.Context, b Bundle) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO catalog_overrides (id, providers_tsv, vehicles_tsv, options_tsv, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		 SET providers_tsv = EXCLUDED.providers_tsv,
		     vehicles_tsv  = EXCLUDED.vehicles_tsv,
		     options_tsv   = EXCLUDED.options_tsv,
		     updated_at    = EXCLUDED.updated_at`,
		overrideRowID, b.ProvidersTSV, b.VehiclesTSV, b.OptionsTSV, time.Now().UTC())
	return err
}

func (s *Store) ClearOverride(ctx context.Context) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM catalog_overrides WHERE id = $1`, overrideRowID)
	return err
}
