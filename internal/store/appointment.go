package store

import (
	"context"
	"time"

	"legal-booking-api/internal/model"
)

// SlotTaken reports whether the lawyer already has a live booking starting at exactly at.
func (s *Store) SlotTaken(ctx context.Context, lawyerID string, at time.Time) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE lawyer_id = $1
			  AND appointment_date = $2
			  AND status <> 'cancelled')`, lawyerID, at,
	).Scan(&exists)
	return exists, err
}

// CreateAppointment inserts a. A concurrent booking of the same slot surfaces as ErrSlotTaken.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO appointments (id, client_id, lawyer_id, appointment_date, duration, notes, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING created_at`,
		a.ID, a.ClientID, a.LawyerID, a.ScheduledAt, a.DurationMinutes, a.Notes, string(a.Status),
	).Scan(&a.CreatedAt)
	return mapErr(err)
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, client_id, lawyer_id, appointment_date, duration, notes, status, created_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.ClientID, &a.LawyerID, &a.ScheduledAt, &a.DurationMinutes, &a.Notes, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

// CancelAppointment cancels a live appointment owned by clientID.
// It reports false when no such appointment exists.
func (s *Store) CancelAppointment(ctx context.Context, id, clientID string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments SET status = 'cancelled', updated_at = NOW()
		 WHERE id = $1 AND client_id = $2 AND status <> 'cancelled'`, id, clientID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// SetAppointmentStatus moves the appointment from one status to another only if it is
// still in from. A non-empty lawyerID also requires the appointment to be assigned to
// that lawyer. False means no row matched.
func (s *Store) SetAppointmentStatus(ctx context.Context, id, lawyerID string, from, to model.Status) (bool, error) {
	q := `UPDATE appointments SET status = $3, updated_at = NOW()
		 WHERE id = $1 AND status = $2`
	args := []any{id, string(from), string(to)}
	if lawyerID != "" {
		q += ` AND lawyer_id = $4`
		args = append(args, lawyerID)
	}

	tag, err := s.pool.Exec(ctx, q, args...)
	if err != nil {
		return false, mapErr(err)
	}
	return tag.RowsAffected() == 1, nil
}

const (
	apptCols       = `a.id, a.client_id, a.lawyer_id, a.appointment_date, a.duration, a.notes, a.status, a.created_at`
	clientJoinCols = `u.name, u.email`
	lawyerJoinCols = `l.name, l.email, l.specialization`
	noClient       = `'', ''`
	noLawyer       = `'', '', ''`
)

func (s *Store) queryViews(ctx context.Context, q string, args ...any) ([]model.AppointmentView, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AppointmentView
	for rows.Next() {
		var v model.AppointmentView
		if err := rows.Scan(
			&v.ID, &v.ClientID, &v.LawyerID, &v.ScheduledAt, &v.DurationMinutes, &v.Notes, &v.Status, &v.CreatedAt,
			&v.ClientName, &v.ClientEmail,
			&v.LawyerName, &v.LawyerEmail, &v.Specialization,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListClientAppointments returns the client's live appointments with lawyer details, newest first.
func (s *Store) ListClientAppointments(ctx context.Context, clientID string) ([]model.AppointmentView, error) {
	return s.queryViews(ctx,
		`SELECT `+apptCols+`, `+noClient+`, `+lawyerJoinCols+`
		 FROM appointments a
		 JOIN lawyers l ON l.id = a.lawyer_id
		 WHERE a.client_id = $1 AND a.status <> 'cancelled'
		 ORDER BY a.appointment_date DESC`, clientID)
}

// ListLawyerAppointments returns the lawyer's appointments with client details, newest first.
func (s *Store) ListLawyerAppointments(ctx context.Context, lawyerID string, includeCancelled bool) ([]model.AppointmentView, error) {
	q := `SELECT ` + apptCols + `, ` + clientJoinCols + `, ` + noLawyer + `
		 FROM appointments a
		 JOIN users u ON u.id = a.client_id
		 WHERE a.lawyer_id = $1`
	if !includeCancelled {
		q += ` AND a.status <> 'cancelled'`
	}
	q += ` ORDER BY a.appointment_date DESC`
	return s.queryViews(ctx, q, lawyerID)
}

// ListAllAppointments returns the most recent appointments across the platform.
// A limit of zero or less returns everything.
func (s *Store) ListAllAppointments(ctx context.Context, limit int) ([]model.AppointmentView, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	return s.queryViews(ctx,
		`SELECT `+apptCols+`, `+clientJoinCols+`, `+lawyerJoinCols+`
		 FROM appointments a
		 JOIN users u ON u.id = a.client_id
		 JOIN lawyers l ON l.id = a.lawyer_id
		 ORDER BY a.appointment_date DESC
		 LIMIT $1`, lim)
}
