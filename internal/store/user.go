package store

import (
	"context"
	"time"

	"legal-booking-api/internal/model"
)

const userCols = `id, name, email, password_hash, age, gender, is_approved, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Age, &u.Gender, &u.IsApproved, &u.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, age, gender, is_approved)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING created_at`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Age, string(u.Gender), u.IsApproved,
	).Scan(&u.CreatedAt)
	return mapErr(err)
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email = $1`, email))
}

func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

// ApproveUser flips the approval flag. Approving twice is harmless.
func (s *Store) ApproveUser(ctx context.Context, id string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`UPDATE users SET is_approved = TRUE WHERE id = $1
		 RETURNING `+userCols, id))
}

// RejectUser deletes a user that is still waiting for approval.
// Approved users are left untouched and ErrNotFound is returned.
func (s *Store) RejectUser(ctx context.Context, id string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`DELETE FROM users WHERE id = $1 AND is_approved = FALSE
		 RETURNING `+userCols, id))
}

func (s *Store) ListUsers(ctx context.Context, pendingOnly bool) ([]model.User, error) {
	q := `SELECT ` + userCols + ` FROM users`
	if pendingOnly {
		q += ` WHERE is_approved = FALSE`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (s *Store) UserStats(ctx context.Context, monthStart time.Time) (model.UserStats, error) {
	var st model.UserStats
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE is_approved),
		        COUNT(*) FILTER (WHERE NOT is_approved),
		        COUNT(*) FILTER (WHERE created_at >= $1)
		 FROM users`, monthStart,
	).Scan(&st.Total, &st.Approved, &st.Pending, &st.NewThisMonth)
	return st, err
}
