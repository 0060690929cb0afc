package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"legal-booking-api/internal/metrics"
	"legal-booking-api/internal/model"
	"legal-booking-api/internal/store"
)

// compare-and-swap attempts for a status change; the state machine has at most two moves
const maxStatusAttempts = 3

type Booking struct {
	appts   AppointmentStore
	lawyers LawyerStore
}

func NewBooking(appts AppointmentStore, lawyers LawyerStore) *Booking {
	return &Booking{appts: appts, lawyers: lawyers}
}

type BookingInput struct {
	LawyerID        string
	ScheduledAt     time.Time
	DurationMinutes int
	Notes           string
}

// CreateAppointment books a pending appointment. Two live bookings of one lawyer at the
// same instant are impossible; the second gets ErrSlotConflict.
func (b *Booking) CreateAppointment(ctx context.Context, clientID string, in BookingInput) (*model.Appointment, error) {
	a, err := b.create(ctx, clientID, in)
	metrics.BookingsTotal.WithLabelValues(outcome(err)).Inc()
	return a, err
}

func (b *Booking) create(ctx context.Context, clientID string, in BookingInput) (*model.Appointment, error) {
	if in.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if in.ScheduledAt.IsZero() {
		return nil, ErrMissingFields
	}
	if !validID(in.LawyerID) {
		return nil, ErrLawyerNotFound
	}
	// postgres keeps microseconds; equality must hold after the round trip
	at := in.ScheduledAt.UTC().Truncate(time.Microsecond)

	if _, err := b.lawyers.LawyerByID(ctx, in.LawyerID, true); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLawyerNotFound
		}
		return nil, storageErr("lawyer by id", err)
	}

	taken, err := b.appts.SlotTaken(ctx, in.LawyerID, at)
	if err != nil {
		return nil, storageErr("slot taken", err)
	}
	if taken {
		return nil, ErrSlotConflict
	}

	a := &model.Appointment{
		ID:              uuid.New().String(),
		ClientID:        clientID,
		LawyerID:        in.LawyerID,
		ScheduledAt:     at,
		DurationMinutes: in.DurationMinutes,
		Notes:           in.Notes,
		Status:          model.StatusPending,
	}
	if err := b.appts.CreateAppointment(ctx, a); err != nil {
		// the partial unique index caught a concurrent booking
		if errors.Is(err, store.ErrSlotTaken) {
			return nil, ErrSlotConflict
		}
		return nil, storageErr("create appointment", err)
	}
	return a, nil
}

// CancelAppointment cancels the client's own live appointment. Missing, foreign and
// already cancelled appointments all give ErrNotFoundOrForbidden.
func (b *Booking) CancelAppointment(ctx context.Context, appointmentID, clientID string) error {
	if !validID(appointmentID) {
		return ErrNotFoundOrForbidden
	}
	ok, err := b.appts.CancelAppointment(ctx, appointmentID, clientID)
	if err != nil {
		return storageErr("cancel appointment", err)
	}
	if !ok {
		return ErrNotFoundOrForbidden
	}
	return nil
}

// UpdateStatus applies a status change. A non-empty lawyerID restricts the change to that
// lawyer's appointments; admins pass "". Ownership is checked before legality so a foreign
// lawyer only ever sees ErrNotFoundOrForbidden.
func (b *Booking) UpdateStatus(ctx context.Context, appointmentID, lawyerID, newStatus string) (*model.Appointment, error) {
	target, err := model.ParseStatus(newStatus)
	if err != nil {
		return nil, ErrInvalidStatus
	}
	if !validID(appointmentID) {
		return nil, ErrNotFoundOrForbidden
	}

	for attempt := 0; attempt < maxStatusAttempts; attempt++ {
		a, err := b.appts.AppointmentByID(ctx, appointmentID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		if err != nil {
			return nil, storageErr("appointment by id", err)
		}
		if lawyerID != "" && a.LawyerID != lawyerID {
			return nil, ErrNotFoundOrForbidden
		}

		next, err := a.Status.Transition(target)
		if err != nil {
			return nil, ErrInvalidTransition
		}
		if next == a.Status {
			return a, nil
		}
		ok, err := b.appts.SetAppointmentStatus(ctx, appointmentID, lawyerID, a.Status, next)
		if err != nil {
			return nil, storageErr("set appointment status", err)
		}
		if ok {
			metrics.StatusTransitionsTotal.WithLabelValues(string(a.Status), string(next)).Inc()
			a.Status = next
			return a, nil
		}
		log.Debug().Str("appointment", appointmentID).Int("attempt", attempt).Msg("status changed concurrently, retrying")
	}
	return nil, ErrInvalidTransition
}

// ListForClient returns the client's live appointments, newest first.
func (b *Booking) ListForClient(ctx context.Context, clientID string) ([]model.AppointmentView, error) {
	out, err := b.appts.ListClientAppointments(ctx, clientID)
	if err != nil {
		return nil, storageErr("list client appointments", err)
	}
	return out, nil
}

// ListForLawyer returns the lawyer's live appointments, newest first.
func (b *Booking) ListForLawyer(ctx context.Context, lawyerID string) ([]model.AppointmentView, error) {
	out, err := b.appts.ListLawyerAppointments(ctx, lawyerID, false)
	if err != nil {
		return nil, storageErr("list lawyer appointments", err)
	}
	return out, nil
}

// ListLawyerAppointments is the admin view of one lawyer's bookings, cancelled ones included.
func (b *Booking) ListLawyerAppointments(ctx context.Context, lawyerID string) ([]model.AppointmentView, error) {
	if !validID(lawyerID) {
		return nil, ErrLawyerNotFound
	}
	if _, err := b.lawyers.LawyerByID(ctx, lawyerID, false); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLawyerNotFound
		}
		return nil, storageErr("lawyer by id", err)
	}
	out, err := b.appts.ListLawyerAppointments(ctx, lawyerID, true)
	if err != nil {
		return nil, storageErr("list lawyer appointments", err)
	}
	return out, nil
}

// ListAll returns the newest appointments across all lawyers. limit <= 0 means no limit.
func (b *Booking) ListAll(ctx context.Context, limit int) ([]model.AppointmentView, error) {
	out, err := b.appts.ListAllAppointments(ctx, limit)
	if err != nil {
		return nil, storageErr("list appointments", err)
	}
	return out, nil
}
