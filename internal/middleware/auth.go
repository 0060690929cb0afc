package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"legal-booking-api/internal/auth"
	"legal-booking-api/internal/model"
	"legal-booking-api/internal/rpc"
)

type ctxKey struct{}

// Caller is the authenticated principal of a request.
type Caller struct {
	ID   string
	Role model.Role
}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(ctxKey{}).(Caller)
	return c, ok
}

// skip auth for these
var open = methodSet(
	"Register",
	"Login",
	"LawyerLogin",
	"AdminLogin",
	"AdminRegister",
	"Refresh",
	"ListActiveLawyers",
	"GetLawyer",
)

var (
	clientOnly     = roles(model.RoleClient)
	adminOnly      = roles(model.RoleAdmin)
	lawyerOrAdmin  = roles(model.RoleLawyer, model.RoleAdmin)
	clientOrLawyer = roles(model.RoleClient, model.RoleLawyer)
)

// allowed lists the roles that may call each protected method. Methods missing
// from both tables are refused.
var allowed = map[string]map[model.Role]bool{
	rpc.FullMethod("CreateAppointment"):       clientOnly,
	rpc.FullMethod("CancelAppointment"):       clientOnly,
	rpc.FullMethod("UpdateAppointmentStatus"): lawyerOrAdmin,
	rpc.FullMethod("ListMyAppointments"):      clientOrLawyer,
	rpc.FullMethod("ListPendingUsers"):        adminOnly,
	rpc.FullMethod("ListUsers"):               adminOnly,
	rpc.FullMethod("ApproveUser"):             adminOnly,
	rpc.FullMethod("RejectUser"):              adminOnly,
	rpc.FullMethod("ListAllLawyers"):          adminOnly,
	rpc.FullMethod("CreateLawyer"):            adminOnly,
	rpc.FullMethod("UpdateLawyer"):            adminOnly,
	rpc.FullMethod("ListAllAppointments"):     adminOnly,
	rpc.FullMethod("ListLawyerAppointments"):  adminOnly,
}

func Auth(secret string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] {
			return next(ctx, req)
		}
		who, ok := allowed[info.FullMethod]
		if !ok {
			return nil, status.Error(codes.PermissionDenied, "forbidden")
		}

		raw := bearer(ctx)
		if raw == "" {
			return nil, status.Error(codes.Unauthenticated, "no token")
		}
		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token")
		}
		if !who[claims.Role] {
			return nil, status.Error(codes.PermissionDenied, "forbidden")
		}

		return next(WithCaller(ctx, Caller{ID: claims.UserID, Role: claims.Role}), req)
	}
}

// token from Authorization: Bearer <jwt>
func bearer(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return ""
	}
	raw, found := strings.CutPrefix(vals[0], "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(raw)
}

func methodSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[rpc.FullMethod(n)] = true
	}
	return m
}

func roles(rs ...model.Role) map[model.Role]bool {
	m := make(map[model.Role]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}
