package store

import (
	"context"

	"legal-booking-api/internal/model"
)

func (s *Store) CreateAdmin(ctx context.Context, a *model.Admin) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO admins (id, name, email, password_hash) VALUES ($1,$2,$3,$4)
		 RETURNING created_at`,
		a.ID, a.Name, a.Email, a.PasswordHash,
	).Scan(&a.CreatedAt)
	return mapErr(err)
}

func (s *Store) AdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return s.adminWhere(ctx, "email", email)
}

func (s *Store) AdminByID(ctx context.Context, id string) (*model.Admin, error) {
	return s.adminWhere(ctx, "id", id)
}

func (s *Store) adminWhere(ctx context.Context, col, val string) (*model.Admin, error) {
	a := &model.Admin{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM admins WHERE `+col+` = $1`, val,
	).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}
