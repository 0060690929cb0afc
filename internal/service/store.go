package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"legal-booking-api/internal/model"
	"legal-booking-api/internal/store"
)

// The interfaces below are the slices of *store.Store each service needs.

type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)
	ApproveUser(ctx context.Context, id string) (*model.User, error)
	RejectUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context, pendingOnly bool) ([]model.User, error)
	UserStats(ctx context.Context, monthStart time.Time) (model.UserStats, error)
}

type LawyerStore interface {
	ListLawyers(ctx context.Context, activeOnly bool) ([]model.Lawyer, error)
	LawyerByID(ctx context.Context, id string, activeOnly bool) (*model.Lawyer, error)
	LawyerByEmail(ctx context.Context, email string) (*model.Lawyer, error)
	CreateLawyer(ctx context.Context, l *model.Lawyer) error
	UpdateLawyer(ctx context.Context, l *model.Lawyer) error
}

type AdminStore interface {
	CreateAdmin(ctx context.Context, a *model.Admin) error
	AdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	AdminByID(ctx context.Context, id string) (*model.Admin, error)
}

type TokenStore interface {
	CreateRefreshToken(ctx context.Context, userID string, role model.Role, tokenHash string, expiresAt time.Time) (string, error)
	RefreshTokenByHash(ctx context.Context, tokenHash string) (*store.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, old *store.RefreshToken, newHash string, newExpiry time.Time) (string, error)
	RevokeAllRefreshTokens(ctx context.Context, userID string, role model.Role) error
}

type AppointmentStore interface {
	SlotTaken(ctx context.Context, lawyerID string, at time.Time) (bool, error)
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	AppointmentByID(ctx context.Context, id string) (*model.Appointment, error)
	CancelAppointment(ctx context.Context, id, clientID string) (bool, error)
	SetAppointmentStatus(ctx context.Context, id, lawyerID string, from, to model.Status) (bool, error)
	ListClientAppointments(ctx context.Context, clientID string) ([]model.AppointmentView, error)
	ListLawyerAppointments(ctx context.Context, lawyerID string, includeCancelled bool) ([]model.AppointmentView, error)
	ListAllAppointments(ctx context.Context, limit int) ([]model.AppointmentView, error)
}

var (
	_ UserStore        = (*store.Store)(nil)
	_ LawyerStore      = (*store.Store)(nil)
	_ AdminStore       = (*store.Store)(nil)
	_ TokenStore       = (*store.Store)(nil)
	_ AppointmentStore = (*store.Store)(nil)
)

// validID reports whether id can reach a UUID column without a cast error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
