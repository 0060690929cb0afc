package handler

import (
	"context"

	"legal-booking-api/internal/rpc"
	"legal-booking-api/internal/service"
)

func (h *Handler) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.RegisterResponse, error) {
	u, err := h.identity.Register(ctx, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      int(req.Age),
		Gender:   req.Gender,
	})
	if err != nil {
		return nil, toStatus("Register", err)
	}
	// no token until an admin approves the account
	return &rpc.RegisterResponse{UserID: u.ID, Message: registeredMsg}, nil
}

func (h *Handler) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.AuthResponse, error) {
	s, err := h.identity.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus("Login", err)
	}
	return sessionPB(s), nil
}

func (h *Handler) LawyerLogin(ctx context.Context, req *rpc.LoginRequest) (*rpc.AuthResponse, error) {
	s, err := h.identity.LawyerLogin(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus("LawyerLogin", err)
	}
	return sessionPB(s), nil
}

func (h *Handler) AdminLogin(ctx context.Context, req *rpc.LoginRequest) (*rpc.AuthResponse, error) {
	s, err := h.identity.AdminLogin(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus("AdminLogin", err)
	}
	return sessionPB(s), nil
}

func (h *Handler) AdminRegister(ctx context.Context, req *rpc.AdminRegisterRequest) (*rpc.AdminRegisterResponse, error) {
	a, err := h.identity.RegisterAdmin(ctx, service.AdminInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		SignupKey: req.SignupKey,
	})
	if err != nil {
		return nil, toStatus("AdminRegister", err)
	}
	return &rpc.AdminRegisterResponse{AdminID: a.ID}, nil
}

func (h *Handler) Refresh(ctx context.Context, req *rpc.RefreshRequest) (*rpc.AuthResponse, error) {
	s, err := h.identity.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus("Refresh", err)
	}
	return sessionPB(s), nil
}

func (h *Handler) ListPendingUsers(ctx context.Context, _ *rpc.Empty) (*rpc.ListUsersResponse, error) {
	users, err := h.identity.ListPendingUsers(ctx)
	if err != nil {
		return nil, toStatus("ListPendingUsers", err)
	}
	out := make([]*rpc.User, len(users))
	for i := range users {
		out[i] = userPB(&users[i])
	}
	return &rpc.ListUsersResponse{Users: out}, nil
}

func (h *Handler) ListUsers(ctx context.Context, _ *rpc.Empty) (*rpc.ListUsersResponse, error) {
	users, stats, err := h.identity.ListUsers(ctx)
	if err != nil {
		return nil, toStatus("ListUsers", err)
	}
	out := make([]*rpc.User, len(users))
	for i := range users {
		out[i] = userPB(&users[i])
	}
	return &rpc.ListUsersResponse{
		Users: out,
		Stats: &rpc.UserStats{
			Total:        int64(stats.Total),
			Approved:     int64(stats.Approved),
			Pending:      int64(stats.Pending),
			NewThisMonth: int64(stats.NewThisMonth),
		},
	}, nil
}

func (h *Handler) ApproveUser(ctx context.Context, req *rpc.UserIDRequest) (*rpc.Empty, error) {
	if err := h.identity.Approve(ctx, req.UserID); err != nil {
		return nil, toStatus("ApproveUser", err)
	}
	return &rpc.Empty{}, nil
}

func (h *Handler) RejectUser(ctx context.Context, req *rpc.UserIDRequest) (*rpc.Empty, error) {
	if err := h.identity.Reject(ctx, req.UserID); err != nil {
		return nil, toStatus("RejectUser", err)
	}
	return &rpc.Empty{}, nil
}
