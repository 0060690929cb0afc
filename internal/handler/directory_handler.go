package handler

import (
	"context"

	"legal-booking-api/internal/rpc"
	"legal-booking-api/internal/service"
)

func (h *Handler) ListActiveLawyers(ctx context.Context, _ *rpc.Empty) (*rpc.ListLawyersResponse, error) {
	ls, err := h.directory.ListActiveLawyers(ctx)
	if err != nil {
		return nil, toStatus("ListActiveLawyers", err)
	}
	return lawyersPB(ls), nil
}

func (h *Handler) GetLawyer(ctx context.Context, req *rpc.LawyerIDRequest) (*rpc.LawyerResponse, error) {
	l, err := h.directory.GetLawyer(ctx, req.LawyerID)
	if err != nil {
		return nil, toStatus("GetLawyer", err)
	}
	return &rpc.LawyerResponse{Lawyer: lawyerPB(l)}, nil
}

func (h *Handler) ListAllLawyers(ctx context.Context, _ *rpc.Empty) (*rpc.ListLawyersResponse, error) {
	ls, err := h.directory.ListAllLawyers(ctx)
	if err != nil {
		return nil, toStatus("ListAllLawyers", err)
	}
	return lawyersPB(ls), nil
}

func (h *Handler) CreateLawyer(ctx context.Context, req *rpc.LawyerRequest) (*rpc.LawyerResponse, error) {
	l, err := h.directory.CreateLawyer(ctx, lawyerInput(req))
	if err != nil {
		return nil, toStatus("CreateLawyer", err)
	}
	return &rpc.LawyerResponse{Lawyer: lawyerPB(l)}, nil
}

func (h *Handler) UpdateLawyer(ctx context.Context, req *rpc.LawyerRequest) (*rpc.LawyerResponse, error) {
	l, err := h.directory.UpdateLawyer(ctx, req.LawyerID, lawyerInput(req))
	if err != nil {
		return nil, toStatus("UpdateLawyer", err)
	}
	return &rpc.LawyerResponse{Lawyer: lawyerPB(l)}, nil
}

func lawyerInput(req *rpc.LawyerRequest) service.LawyerInput {
	return service.LawyerInput{
		Name:            req.Name,
		Gender:          req.Gender,
		Email:           req.Email,
		Password:        req.Password,
		Specialization:  req.Specialization,
		ExperienceYears: int(req.ExperienceYears),
		HourlyRate:      req.HourlyRate,
		Bio:             req.Bio,
		Status:          req.Status,
	}
}
