package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
	"github.com/yanqian/agri-advisor/internal/domain/extension"
)

const officerColumns = `id::text, name, designation, department, specialization, state, district, address,
		phone, email, available_hours, experience_years, languages, rating, is_available, consultation_fee`

// FindOfficers implements extension.OfficerStore.
func (s *Store) FindOfficers(ctx context.Context, state, district string, limit int) ([]agri.Officer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+officerColumns+`
		FROM officers
		WHERE lower(state) = lower($1) AND lower(district) = lower($2)
		ORDER BY position
		LIMIT $3
	`, state, district, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOfficer)
}

// SaveOfficers implements extension.OfficerStore. The roster is written in
// one batch so a partial roster is never visible. Positions already taken for
// the district are kept, so a concurrent save of the same roster is a no-op.
func (s *Store) SaveOfficers(ctx context.Context, officers []agri.Officer) error {
	if len(officers) == 0 {
		return nil
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for i, o := range officers {
			batch.Queue(`
				INSERT INTO officers (name, designation, department, specialization, state, district, address,
					phone, email, available_hours, experience_years, languages, rating, is_available, consultation_fee, position)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
				ON CONFLICT ((lower(state)), (lower(district)), position) DO NOTHING
			`, o.Name, o.Designation, o.Department, o.Specialization, o.State, o.District, o.Address,
				o.Phone, o.Email, o.AvailableHours, o.ExperienceYears, o.Languages, o.Rating, o.IsAvailable, o.ConsultationFee, i)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

func scanOfficer(row rowScanner) (agri.Officer, error) {
	var o agri.Officer
	err := row.Scan(&o.ID, &o.Name, &o.Designation, &o.Department, &o.Specialization, &o.State, &o.District, &o.Address,
		&o.Phone, &o.Email, &o.AvailableHours, &o.ExperienceYears, &o.Languages, &o.Rating, &o.IsAvailable, &o.ConsultationFee)
	return o, err
}

var _ extension.OfficerStore = (*Store)(nil)
