package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"legal-booking-api/internal/auth"
	"legal-booking-api/internal/metrics"
	"legal-booking-api/internal/model"
	"legal-booking-api/internal/store"
)

// LawyerCache holds the active directory listing. Any error from Active is a miss.
// SetActive must ignore a listing whose generation predates the last Invalidate.
type LawyerCache interface {
	Active(ctx context.Context) ([]model.Lawyer, error)
	Generation(ctx context.Context) (int64, error)
	SetActive(ctx context.Context, gen int64, lawyers []model.Lawyer) error
	Invalidate(ctx context.Context) error
}

type Directory struct {
	lawyers LawyerStore
	tokens  TokenStore
	cache   LawyerCache
}

// NewDirectory builds the directory service. cache may be nil.
func NewDirectory(lawyers LawyerStore, tokens TokenStore, cache LawyerCache) *Directory {
	return &Directory{lawyers: lawyers, tokens: tokens, cache: cache}
}

// ListActiveLawyers returns active lawyers ordered by name.
func (d *Directory) ListActiveLawyers(ctx context.Context) ([]model.Lawyer, error) {
	fill := false
	var gen int64
	if d.cache != nil {
		cached, err := d.cache.Active(ctx)
		if err == nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		log.Debug().Err(err).Msg("lawyer cache miss")

		gen, err = d.cache.Generation(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("lawyer cache generation")
		} else {
			fill = true
		}
	}

	lawyers, err := d.lawyers.ListLawyers(ctx, true)
	if err != nil {
		return nil, storageErr("list active lawyers", err)
	}
	if fill {
		if err := d.cache.SetActive(ctx, gen, lawyers); err != nil {
			log.Warn().Err(err).Msg("fill lawyer cache")
		}
	}
	return lawyers, nil
}

// GetLawyer returns an active lawyer. Inactive lawyers do not exist for this call.
func (d *Directory) GetLawyer(ctx context.Context, id string) (*model.Lawyer, error) {
	if !validID(id) {
		return nil, ErrLawyerNotFound
	}
	l, err := d.lawyers.LawyerByID(ctx, id, true)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrLawyerNotFound
	}
	if err != nil {
		return nil, storageErr("lawyer by id", err)
	}
	return l, nil
}

// ListAllLawyers is the admin view and includes inactive lawyers.
func (d *Directory) ListAllLawyers(ctx context.Context) ([]model.Lawyer, error) {
	lawyers, err := d.lawyers.ListLawyers(ctx, false)
	if err != nil {
		return nil, storageErr("list lawyers", err)
	}
	return lawyers, nil
}

type LawyerInput struct {
	Name            string
	Gender          string
	Email           string
	Password        string
	Specialization  string
	ExperienceYears int
	HourlyRate      float64
	Bio             string
	Status          string
}

func (in *LawyerInput) validate(requirePassword bool) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Specialization = strings.TrimSpace(in.Specialization)
	if in.Name == "" || in.Email == "" || in.Specialization == "" {
		return ErrMissingFields
	}
	if requirePassword && in.Password == "" {
		return ErrMissingFields
	}
	if in.Password != "" && len(in.Password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if !model.Gender(in.Gender).Valid() {
		return ErrInvalidGender
	}
	if in.Status == "" {
		in.Status = string(model.LawyerActive)
	}
	if !model.LawyerStatus(in.Status).Valid() || in.ExperienceYears < 0 || in.HourlyRate < 0 {
		return ErrInvalidField
	}
	return nil
}

func (d *Directory) CreateLawyer(ctx context.Context, in LawyerInput) (*model.Lawyer, error) {
	if err := in.validate(true); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	l := &model.Lawyer{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Gender:          model.Gender(in.Gender),
		Email:           in.Email,
		PasswordHash:    hash,
		Specialization:  in.Specialization,
		ExperienceYears: in.ExperienceYears,
		HourlyRate:      in.HourlyRate,
		Bio:             in.Bio,
		Status:          model.LawyerStatus(in.Status),
	}
	if err := d.lawyers.CreateLawyer(ctx, l); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, storageErr("create lawyer", err)
	}
	d.invalidate(ctx)
	return l, nil
}

// UpdateLawyer replaces the editable fields. An empty password keeps the current one.
// Deactivating a lawyer also revokes their refresh tokens.
func (d *Directory) UpdateLawyer(ctx context.Context, id string, in LawyerInput) (*model.Lawyer, error) {
	if !validID(id) {
		return nil, ErrLawyerNotFound
	}
	if err := in.validate(false); err != nil {
		return nil, err
	}
	l := &model.Lawyer{
		ID:              id,
		Name:            in.Name,
		Gender:          model.Gender(in.Gender),
		Email:           in.Email,
		Specialization:  in.Specialization,
		ExperienceYears: in.ExperienceYears,
		HourlyRate:      in.HourlyRate,
		Bio:             in.Bio,
		Status:          model.LawyerStatus(in.Status),
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		l.PasswordHash = hash
	}

	err := d.lawyers.UpdateLawyer(ctx, l)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrLawyerNotFound
	case errors.Is(err, store.ErrDuplicate):
		return nil, ErrDuplicateEmail
	case err != nil:
		return nil, storageErr("update lawyer", err)
	}
	d.invalidate(ctx)

	if l.Status == model.LawyerInactive && d.tokens != nil {
		if err := d.tokens.RevokeAllRefreshTokens(ctx, l.ID, model.RoleLawyer); err != nil {
			log.Warn().Err(err).Str("lawyer", l.ID).Msg("revoke tokens of inactive lawyer")
		}
	}
	return l, nil
}

func (d *Directory) invalidate(ctx context.Context) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("invalidate lawyer cache")
	}
}
