package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"legal-booking-api/internal/model"
	"legal-booking-api/internal/rpc"
	"legal-booking-api/internal/service"
)

func (h *Handler) CreateAppointment(ctx context.Context, req *rpc.CreateAppointmentRequest) (*rpc.AppointmentResponse, error) {
	c, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	a, err := h.booking.CreateAppointment(ctx, c.ID, service.BookingInput{
		LawyerID:        req.LawyerID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: int(req.DurationMinutes),
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, toStatus("CreateAppointment", err)
	}
	return &rpc.AppointmentResponse{Appointment: appointmentPB(a)}, nil
}

func (h *Handler) CancelAppointment(ctx context.Context, req *rpc.AppointmentIDRequest) (*rpc.Empty, error) {
	c, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.booking.CancelAppointment(ctx, req.AppointmentID, c.ID); err != nil {
		return nil, toStatus("CancelAppointment", err)
	}
	return &rpc.Empty{}, nil
}

func (h *Handler) UpdateAppointmentStatus(ctx context.Context, req *rpc.UpdateStatusRequest) (*rpc.AppointmentResponse, error) {
	c, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	// admins may move any appointment
	lawyerID := c.ID
	if c.Role == model.RoleAdmin {
		lawyerID = ""
	}
	a, err := h.booking.UpdateStatus(ctx, req.AppointmentID, lawyerID, req.Status)
	if err != nil {
		return nil, toStatus("UpdateAppointmentStatus", err)
	}
	return &rpc.AppointmentResponse{Appointment: appointmentPB(a)}, nil
}

func (h *Handler) ListMyAppointments(ctx context.Context, _ *rpc.Empty) (*rpc.ListAppointmentsResponse, error) {
	c, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	var vs []model.AppointmentView
	switch c.Role {
	case model.RoleClient:
		vs, err = h.booking.ListForClient(ctx, c.ID)
	case model.RoleLawyer:
		vs, err = h.booking.ListForLawyer(ctx, c.ID)
	default:
		return nil, status.Error(codes.PermissionDenied, "forbidden")
	}
	if err != nil {
		return nil, toStatus("ListMyAppointments", err)
	}
	return appointmentsPB(vs), nil
}

func (h *Handler) ListAllAppointments(ctx context.Context, req *rpc.ListAllAppointmentsRequest) (*rpc.ListAppointmentsResponse, error) {
	vs, err := h.booking.ListAll(ctx, int(req.Limit))
	if err != nil {
		return nil, toStatus("ListAllAppointments", err)
	}
	return appointmentsPB(vs), nil
}

func (h *Handler) ListLawyerAppointments(ctx context.Context, req *rpc.LawyerIDRequest) (*rpc.ListAppointmentsResponse, error) {
	vs, err := h.booking.ListLawyerAppointments(ctx, req.LawyerID)
	if err != nil {
		return nil, toStatus("ListLawyerAppointments", err)
	}
	return appointmentsPB(vs), nil
}
