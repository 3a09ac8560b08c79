package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/yanqian/agri-advisor/internal/domain/advisory"
	"github.com/yanqian/agri-advisor/internal/domain/agri"
)

// FarmerByID implements advisory.Store.
func (s *Store) FarmerByID(ctx context.Context, farmerID string) (agri.FarmerProfile, bool, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, phone, village, district, state, land_size_acres, crops, preferred_language
		FROM farmers
		WHERE id = $1
	`, farmerID)
	var f agri.FarmerProfile
	err := row.Scan(&f.ID, &f.Name, &f.Phone, &f.Village, &f.District, &f.State, &f.LandSizeAcres, &f.Crops, &f.PreferredLanguage)
	if errors.Is(err, pgx.ErrNoRows) {
		return agri.FarmerProfile{}, false, nil
	}
	if err != nil {
		return agri.FarmerProfile{}, false, err
	}
	return f, true, nil
}

// FarmsByFarmer implements advisory.Store.
func (s *Store) FarmsByFarmer(ctx context.Context, farmerID string) ([]agri.Farm, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, farmer_id, name, area_acres, soil_type, irrigation_type, current_crop, season, district
		FROM farms
		WHERE farmer_id = $1
		ORDER BY name
	`, farmerID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row rowScanner) (agri.Farm, error) {
		var f agri.Farm
		err := row.Scan(&f.ID, &f.FarmerID, &f.Name, &f.AreaAcres, &f.SoilType, &f.IrrigationType, &f.CurrentCrop, &f.Season, &f.District)
		return f, err
	})
}

// RecentActivities implements advisory.Store.
func (s *Store) RecentActivities(ctx context.Context, farmerID string, limit int) ([]agri.Activity, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, farmer_id, farm_id, activity_type, crop, description, activity_date
		FROM activities
		WHERE farmer_id = $1
		ORDER BY activity_date DESC
		LIMIT $2
	`, farmerID, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row rowScanner) (agri.Activity, error) {
		var a agri.Activity
		err := row.Scan(&a.ID, &a.FarmerID, &a.FarmID, &a.Type, &a.Crop, &a.Description, &a.Date)
		return a, err
	})
}

// RecentRecommendations implements advisory.Store.
func (s *Store) RecentRecommendations(ctx context.Context, farmerID string, limit int) ([]agri.Recommendation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, farmer_id, title, description, category, priority, created_at
		FROM recommendations
		WHERE farmer_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, farmerID, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row rowScanner) (agri.Recommendation, error) {
		var r agri.Recommendation
		err := row.Scan(&r.ID, &r.FarmerID, &r.Title, &r.Description, &r.Category, &r.Priority, &r.CreatedAt)
		return r, err
	})
}

// SchemesForState implements advisory.Store.
func (s *Store) SchemesForState(ctx context.Context, state string, limit int) ([]agri.Scheme, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, description, state, category, benefits, eligibility
		FROM schemes
		WHERE lower(state) = lower($1)
		   OR (state = $2 AND category = $3)
		ORDER BY (lower(state) = lower($1)) DESC, name
		LIMIT $4
	`, state, agri.NationalSchemeState, agri.NationalSchemeCategory, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row rowScanner) (agri.Scheme, error) {
		var sc agri.Scheme
		err := row.Scan(&sc.ID, &sc.Name, &sc.Description, &sc.State, &sc.Category, &sc.Benefits, &sc.Eligibility)
		return sc, err
	})
}

// OfficersInState implements advisory.Store.
func (s *Store) OfficersInState(ctx context.Context, state string, limit int) ([]agri.Officer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+officerColumns+`
		FROM officers
		WHERE lower(state) = lower($1)
		ORDER BY is_available DESC, rating DESC
		LIMIT $2
	`, state, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOfficer)
}

func collect[T any](rows pgx.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

var _ advisory.Store = (*Store)(nil)
