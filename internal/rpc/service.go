package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "legal.v1.LegalService"

// FullMethod returns the gRPC path of a LegalService method.
func FullMethod(name string) string { return "/" + ServiceName + "/" + name }

type LegalServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	LawyerLogin(context.Context, *LoginRequest) (*AuthResponse, error)
	AdminLogin(context.Context, *LoginRequest) (*AuthResponse, error)
	AdminRegister(context.Context, *AdminRegisterRequest) (*AdminRegisterResponse, error)
	Refresh(context.Context, *RefreshRequest) (*AuthResponse, error)

	ListPendingUsers(context.Context, *Empty) (*ListUsersResponse, error)
	ListUsers(context.Context, *Empty) (*ListUsersResponse, error)
	ApproveUser(context.Context, *UserIDRequest) (*Empty, error)
	RejectUser(context.Context, *UserIDRequest) (*Empty, error)

	ListActiveLawyers(context.Context, *Empty) (*ListLawyersResponse, error)
	GetLawyer(context.Context, *LawyerIDRequest) (*LawyerResponse, error)
	ListAllLawyers(context.Context, *Empty) (*ListLawyersResponse, error)
	CreateLawyer(context.Context, *LawyerRequest) (*LawyerResponse, error)
	UpdateLawyer(context.Context, *LawyerRequest) (*LawyerResponse, error)

	CreateAppointment(context.Context, *CreateAppointmentRequest) (*AppointmentResponse, error)
	CancelAppointment(context.Context, *AppointmentIDRequest) (*Empty, error)
	UpdateAppointmentStatus(context.Context, *UpdateStatusRequest) (*AppointmentResponse, error)
	ListMyAppointments(context.Context, *Empty) (*ListAppointmentsResponse, error)
	ListAllAppointments(context.Context, *ListAllAppointmentsRequest) (*ListAppointmentsResponse, error)
	ListLawyerAppointments(context.Context, *LawyerIDRequest) (*ListAppointmentsResponse, error)
}

// unary builds the method descriptor for one RPC the way protoc-gen-go-grpc would.
func unary[Req any, PReq interface {
	*Req
	Message
}, Resp Message](name string, call func(LegalServiceServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LegalServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(LegalServiceServer), ctx, req.(PReq))
			})
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LegalServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", LegalServiceServer.Register),
		unary("Login", LegalServiceServer.Login),
		unary("LawyerLogin", LegalServiceServer.LawyerLogin),
		unary("AdminLogin", LegalServiceServer.AdminLogin),
		unary("AdminRegister", LegalServiceServer.AdminRegister),
		unary("Refresh", LegalServiceServer.Refresh),
		unary("ListPendingUsers", LegalServiceServer.ListPendingUsers),
		unary("ListUsers", LegalServiceServer.ListUsers),
		unary("ApproveUser", LegalServiceServer.ApproveUser),
		unary("RejectUser", LegalServiceServer.RejectUser),
		unary("ListActiveLawyers", LegalServiceServer.ListActiveLawyers),
		unary("GetLawyer", LegalServiceServer.GetLawyer),
		unary("ListAllLawyers", LegalServiceServer.ListAllLawyers),
		unary("CreateLawyer", LegalServiceServer.CreateLawyer),
		unary("UpdateLawyer", LegalServiceServer.UpdateLawyer),
		unary("CreateAppointment", LegalServiceServer.CreateAppointment),
		unary("CancelAppointment", LegalServiceServer.CancelAppointment),
		unary("UpdateAppointmentStatus", LegalServiceServer.UpdateAppointmentStatus),
		unary("ListMyAppointments", LegalServiceServer.ListMyAppointments),
		unary("ListAllAppointments", LegalServiceServer.ListAllAppointments),
		unary("ListLawyerAppointments", LegalServiceServer.ListLawyerAppointments),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "legal/v1/legal.proto",
}

func RegisterLegalServiceServer(s grpc.ServiceRegistrar, srv LegalServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
