package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Client calls LegalService over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any, PResp interface {
	*Resp
	Message
}](ctx context.Context, c *Client, name string, in Message, opts ...grpc.CallOption) (PResp, error) {
	out := PResp(new(Resp))
	opts = append(opts, grpc.ForceCodec(Codec()))
	if err := c.cc.Invoke(ctx, FullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c, "Register", in, opts...)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c, "Login", in, opts...)
}

func (c *Client) LawyerLogin(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c, "LawyerLogin", in, opts...)
}

func (c *Client) AdminLogin(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c, "AdminLogin", in, opts...)
}

func (c *Client) AdminRegister(ctx context.Context, in *AdminRegisterRequest, opts ...grpc.CallOption) (*AdminRegisterResponse, error) {
	return invoke[AdminRegisterResponse](ctx, c, "AdminRegister", in, opts...)
}

func (c *Client) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c, "Refresh", in, opts...)
}

func (c *Client) ListPendingUsers(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c, "ListPendingUsers", in, opts...)
}

func (c *Client) ListUsers(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c, "ListUsers", in, opts...)
}

func (c *Client) ApproveUser(ctx context.Context, in *UserIDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "ApproveUser", in, opts...)
}

func (c *Client) RejectUser(ctx context.Context, in *UserIDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "RejectUser", in, opts...)
}

func (c *Client) ListActiveLawyers(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListLawyersResponse, error) {
	return invoke[ListLawyersResponse](ctx, c, "ListActiveLawyers", in, opts...)
}

func (c *Client) GetLawyer(ctx context.Context, in *LawyerIDRequest, opts ...grpc.CallOption) (*LawyerResponse, error) {
	return invoke[LawyerResponse](ctx, c, "GetLawyer", in, opts...)
}

func (c *Client) ListAllLawyers(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListLawyersResponse, error) {
	return invoke[ListLawyersResponse](ctx, c, "ListAllLawyers", in, opts...)
}

func (c *Client) CreateLawyer(ctx context.Context, in *LawyerRequest, opts ...grpc.CallOption) (*LawyerResponse, error) {
	return invoke[LawyerResponse](ctx, c, "CreateLawyer", in, opts...)
}

func (c *Client) UpdateLawyer(ctx context.Context, in *LawyerRequest, opts ...grpc.CallOption) (*LawyerResponse, error) {
	return invoke[LawyerResponse](ctx, c, "UpdateLawyer", in, opts...)
}

func (c *Client) CreateAppointment(ctx context.Context, in *CreateAppointmentRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	return invoke[AppointmentResponse](ctx, c, "CreateAppointment", in, opts...)
}

func (c *Client) CancelAppointment(ctx context.Context, in *AppointmentIDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "CancelAppointment", in, opts...)
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, in *UpdateStatusRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	return invoke[AppointmentResponse](ctx, c, "UpdateAppointmentStatus", in, opts...)
}

func (c *Client) ListMyAppointments(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	return invoke[ListAppointmentsResponse](ctx, c, "ListMyAppointments", in, opts...)
}

func (c *Client) ListAllAppointments(ctx context.Context, in *ListAllAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	return invoke[ListAppointmentsResponse](ctx, c, "ListAllAppointments", in, opts...)
}

func (c *Client) ListLawyerAppointments(ctx context.Context, in *LawyerIDRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	return invoke[ListAppointmentsResponse](ctx, c, "ListLawyerAppointments", in, opts...)
}
