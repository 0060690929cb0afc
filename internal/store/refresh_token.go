package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"legal-booking-api/internal/model"
)

type RefreshToken struct {
	ID         string
	UserID     string
	Role       model.Role
	TokenHash  string
	ExpiresAt  time.Time
	Revoked    bool
	ReplacedBy *string
	CreatedAt  time.Time
}

func (s *Store) CreateRefreshToken(ctx context.Context, userID string, role model.Role, tokenHash string, expiresAt time.Time) (string, error) {
	id := uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (id, user_id, role, token_hash, expires_at) VALUES ($1,$2,$3,$4,$5)`,
		id, userID, string(role), tokenHash, expiresAt,
	)
	return id, mapErr(err)
}

func (s *Store) RefreshTokenByHash(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	rt := &RefreshToken{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, role, token_hash, expires_at, revoked, replaced_by, created_at
		 FROM refresh_tokens WHERE token_hash = $1`, tokenHash,
	).Scan(&rt.ID, &rt.UserID, &rt.Role, &rt.TokenHash, &rt.ExpiresAt, &rt.Revoked, &rt.ReplacedBy, &rt.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return rt, nil
}

// RotateRefreshToken revokes old and links it to a freshly inserted token.
// If old was already revoked by a concurrent rotation it returns ErrNotFound.
func (s *Store) RotateRefreshToken(ctx context.Context, old *RefreshToken, newHash string, newExpiry time.Time) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	newID := uuid.New().String()
	_, err = tx.Exec(ctx,
		`INSERT INTO refresh_tokens (id, user_id, role, token_hash, expires_at) VALUES ($1,$2,$3,$4,$5)`,
		newID, old.UserID, string(old.Role), newHash, newExpiry,
	)
	if err != nil {
		return "", mapErr(err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = true, replaced_by = $1 WHERE id = $2 AND revoked = false`,
		newID, old.ID,
	)
	if err != nil {
		return "", err
	}
	if tag.RowsAffected() != 1 {
		return "", ErrNotFound
	}

	return newID, tx.Commit(ctx)
}

// RevokeAllRefreshTokens revokes every live token of a principal (reuse detection, deactivation).
func (s *Store) RevokeAllRefreshTokens(ctx context.Context, userID string, role model.Role) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = true WHERE user_id = $1 AND role = $2 AND revoked = false`,
		userID, string(role),
	)
	return err
}
