package store

import (
	"context"

	"legal-booking-api/internal/model"
)

const lawyerCols = `id, name, gender, email, password_hash, specialization,
	experience_years, hourly_rate, bio, status, created_at, updated_at`

func scanLawyer(row scanner) (*model.Lawyer, error) {
	l := &model.Lawyer{}
	err := row.Scan(&l.ID, &l.Name, &l.Gender, &l.Email, &l.PasswordHash, &l.Specialization,
		&l.ExperienceYears, &l.HourlyRate, &l.Bio, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return l, nil
}

// ListLawyers returns lawyers ordered by name. activeOnly hides inactive records.
func (s *Store) ListLawyers(ctx context.Context, activeOnly bool) ([]model.Lawyer, error) {
	q := `SELECT ` + lawyerCols + ` FROM lawyers`
	if activeOnly {
		q += ` WHERE status = 'active'`
	}
	q += ` ORDER BY name`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Lawyer
	for rows.Next() {
		l, err := scanLawyer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (s *Store) LawyerByID(ctx context.Context, id string, activeOnly bool) (*model.Lawyer, error) {
	q := `SELECT ` + lawyerCols + ` FROM lawyers WHERE id = $1`
	if activeOnly {
		q += ` AND status = 'active'`
	}
	return scanLawyer(s.pool.QueryRow(ctx, q, id))
}

func (s *Store) LawyerByEmail(ctx context.Context, email string) (*model.Lawyer, error) {
	return scanLawyer(s.pool.QueryRow(ctx,
		`SELECT `+lawyerCols+` FROM lawyers WHERE email = $1`, email))
}

func (s *Store) CreateLawyer(ctx context.Context, l *model.Lawyer) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO lawyers (id, name, gender, email, password_hash, specialization,
		                      experience_years, hourly_rate, bio, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING created_at, updated_at`,
		l.ID, l.Name, string(l.Gender), l.Email, l.PasswordHash, l.Specialization,
		l.ExperienceYears, l.HourlyRate, l.Bio, string(l.Status),
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	return mapErr(err)
}

// SeedLawyer inserts l unless a lawyer with the same email exists. It reports whether a row was added.
func (s *Store) SeedLawyer(ctx context.Context, l *model.Lawyer) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO lawyers (id, name, gender, email, password_hash, specialization,
		                      experience_years, hourly_rate, bio, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT (email) DO NOTHING`,
		l.ID, l.Name, string(l.Gender), l.Email, l.PasswordHash, l.Specialization,
		l.ExperienceYears, l.HourlyRate, l.Bio, string(l.Status),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateLawyer overwrites the editable fields. An empty PasswordHash keeps the stored one.
func (s *Store) UpdateLawyer(ctx context.Context, l *model.Lawyer) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE lawyers
		 SET name=$2, gender=$3, email=$4,
		     password_hash = COALESCE(NULLIF($5, ''), password_hash),
		     specialization=$6, experience_years=$7, hourly_rate=$8, bio=$9, status=$10,
		     updated_at=NOW()
		 WHERE id=$1
		 RETURNING password_hash, created_at, updated_at`,
		l.ID, l.Name, string(l.Gender), l.Email, l.PasswordHash, l.Specialization,
		l.ExperienceYears, l.HourlyRate, l.Bio, string(l.Status),
	).Scan(&l.PasswordHash, &l.CreatedAt, &l.UpdatedAt)
	return mapErr(err)
}
