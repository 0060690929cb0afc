package handler

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"legal-booking-api/internal/middleware"
	"legal-booking-api/internal/model"
	"legal-booking-api/internal/rpc"
	"legal-booking-api/internal/service"
)

const registeredMsg = "Registration successful. Please wait for admin approval."

// Handler serves LegalService on top of the three domain services.
type Handler struct {
	identity  *service.Identity
	directory *service.Directory
	booking   *service.Booking
}

var _ rpc.LegalServiceServer = (*Handler)(nil)

func New(identity *service.Identity, directory *service.Directory, booking *service.Booking) *Handler {
	return &Handler{identity: identity, directory: directory, booking: booking}
}

func caller(ctx context.Context) (middleware.Caller, error) {
	c, ok := middleware.CallerFrom(ctx)
	if !ok {
		return c, status.Error(codes.Unauthenticated, "no token")
	}
	return c, nil
}

// toStatus maps service errors onto gRPC codes. Storage and unknown failures are
// logged here and reach the caller without detail.
func toStatus(method string, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidAge),
		errors.Is(err, service.ErrInvalidGender),
		errors.Is(err, service.ErrInvalidField),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrInvalidStatus):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrSlotConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, service.ErrPendingApproval),
		errors.Is(err, service.ErrInvalidSignupKey):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, service.ErrNotFoundOrForbidden),
		errors.Is(err, service.ErrLawyerNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrStorageUnavailable):
		log.Error().Err(err).Str("method", method).Msg("storage failure")
		return status.Error(codes.Unavailable, service.ErrStorageUnavailable.Error())
	default:
		log.Error().Err(err).Str("method", method).Msg("unexpected error")
		return status.Error(codes.Internal, "internal error")
	}
}

func principalPB(p model.Principal) *rpc.Principal {
	return &rpc.Principal{
		ID:        p.ID,
		Role:      string(p.Role),
		Name:      p.Name,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}
}

func sessionPB(s *service.Session) *rpc.AuthResponse {
	return &rpc.AuthResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		Principal:    principalPB(s.Principal),
	}
}

func userPB(u *model.User) *rpc.User {
	return &rpc.User{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Age:        int64(u.Age),
		Gender:     string(u.Gender),
		IsApproved: u.IsApproved,
		CreatedAt:  u.CreatedAt,
	}
}

// lawyerPB never carries the password hash.
func lawyerPB(l *model.Lawyer) *rpc.Lawyer {
	return &rpc.Lawyer{
		ID:              l.ID,
		Name:            l.Name,
		Gender:          string(l.Gender),
		Email:           l.Email,
		Specialization:  l.Specialization,
		ExperienceYears: int64(l.ExperienceYears),
		HourlyRate:      l.HourlyRate,
		Bio:             l.Bio,
		Status:          string(l.Status),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func lawyersPB(ls []model.Lawyer) *rpc.ListLawyersResponse {
	out := make([]*rpc.Lawyer, len(ls))
	for i := range ls {
		out[i] = lawyerPB(&ls[i])
	}
	return &rpc.ListLawyersResponse{Lawyers: out}
}

func appointmentPB(a *model.Appointment) *rpc.Appointment {
	return &rpc.Appointment{
		ID:              a.ID,
		ClientID:        a.ClientID,
		LawyerID:        a.LawyerID,
		ScheduledAt:     a.ScheduledAt,
		DurationMinutes: int64(a.DurationMinutes),
		Notes:           a.Notes,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
	}
}

func appointmentsPB(vs []model.AppointmentView) *rpc.ListAppointmentsResponse {
	out := make([]*rpc.Appointment, len(vs))
	for i := range vs {
		p := appointmentPB(&vs[i].Appointment)
		p.ClientName = vs[i].ClientName
		p.ClientEmail = vs[i].ClientEmail
		p.LawyerName = vs[i].LawyerName
		p.LawyerEmail = vs[i].LawyerEmail
		p.Specialization = vs[i].Specialization
		out[i] = p
	}
	return &rpc.ListAppointmentsResponse{Appointments: out}
}
