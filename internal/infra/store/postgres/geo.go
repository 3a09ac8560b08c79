package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
	"github.com/yanqian/agri-advisor/internal/domain/geo"
)

// FindGeo implements geo.Store.
func (s *Store) FindGeo(ctx context.Context, district, state string) (agri.GeoCacheEntry, bool, error) {
	var e agri.GeoCacheEntry
	err := s.pool.QueryRow(ctx, `
		SELECT district, state, lat, lon
		FROM geo_cache
		WHERE lower(district) = lower($1) AND lower(state) = lower($2)
	`, district, state).Scan(&e.District, &e.State, &e.Lat, &e.Lon)
	if errors.Is(err, pgx.ErrNoRows) {
		return agri.GeoCacheEntry{}, false, nil
	}
	if err != nil {
		return agri.GeoCacheEntry{}, false, err
	}
	return e, true, nil
}

// SaveGeo implements geo.Store.
func (s *Store) SaveGeo(ctx context.Context, e agri.GeoCacheEntry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO geo_cache (district, state, lat, lon)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ((lower(district)), (lower(state))) DO UPDATE
		SET lat = EXCLUDED.lat, lon = EXCLUDED.lon
	`, e.District, e.State, e.Lat, e.Lon)
	return err
}

var _ geo.Store = (*Store)(nil)
