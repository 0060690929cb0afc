package middleware

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"legal-booking-api/internal/auth"
	"legal-booking-api/internal/model"
	"legal-booking-api/internal/rpc"
)

const secret = "test-secret-that-is-at-least-32-bytes"

func withToken(t *testing.T, uid string, role model.Role) context.Context {
	t.Helper()
	tok, err := auth.Issuer{Secret: secret}.MakeToken(uid, role)
	require.NoError(t, err)
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+tok))
}

func callAuth(ctx context.Context, method string) (Caller, error) {
	var got Caller
	_, err := Auth(secret)(ctx, nil, &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod(method)},
		func(ctx context.Context, _ any) (any, error) {
			got, _ = CallerFrom(ctx)
			return nil, nil
		})
	return got, err
}

func TestAuthOpenMethods(t *testing.T) {
	for _, m := range []string{"Register", "Login", "ListActiveLawyers", "GetLawyer", "Refresh"} {
		_, err := callAuth(context.Background(), m)
		assert.NoError(t, err, m)
	}
}

func TestAuthRequiresToken(t *testing.T) {
	_, err := callAuth(context.Background(), "CreateAppointment")
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer nope"))
	_, err = callAuth(ctx, "CreateAppointment")
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Basic abc"))
	_, err = callAuth(ctx, "CreateAppointment")
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestAuthRoles(t *testing.T) {
	cases := []struct {
		method string
		role   model.Role
		ok     bool
	}{
		{"CreateAppointment", model.RoleClient, true},
		{"CreateAppointment", model.RoleLawyer, false},
		{"CancelAppointment", model.RoleAdmin, false},
		{"UpdateAppointmentStatus", model.RoleLawyer, true},
		{"UpdateAppointmentStatus", model.RoleAdmin, true},
		{"UpdateAppointmentStatus", model.RoleClient, false},
		{"ListMyAppointments", model.RoleClient, true},
		{"ListMyAppointments", model.RoleLawyer, true},
		{"ListMyAppointments", model.RoleAdmin, false},
		{"ApproveUser", model.RoleAdmin, true},
		{"ApproveUser", model.RoleLawyer, false},
		{"ListAllAppointments", model.RoleClient, false},
	}
	for _, c := range cases {
		got, err := callAuth(withToken(t, "u-1", c.role), c.method)
		if c.ok {
			require.NoError(t, err, "%s as %s", c.method, c.role)
			assert.Equal(t, Caller{ID: "u-1", Role: c.role}, got)
		} else {
			assert.Equal(t, codes.PermissionDenied, status.Code(err), "%s as %s", c.method, c.role)
		}
	}
}

func TestAuthUnknownMethodRefused(t *testing.T) {
	_, err := callAuth(withToken(t, "u-1", model.RoleAdmin), "DropTables")
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func peerCtx(addr string) context.Context {
	tcp, _ := net.ResolveTCPAddr("tcp", addr)
	return peer.NewContext(context.Background(), &peer.Peer{Addr: tcp})
}

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	ic := RateLimit(rl)
	ok := func(context.Context, any) (any, error) { return "ok", nil }
	login := &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod("Login")}

	ctx := peerCtx("10.0.0.1:4000")
	for i := 0; i < 2; i++ {
		_, err := ic(ctx, nil, login, ok)
		require.NoError(t, err)
	}
	_, err := ic(ctx, nil, login, ok)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	// another port on the same host shares the bucket
	_, err = ic(peerCtx("10.0.0.1:5000"), nil, login, ok)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	_, err = ic(peerCtx("10.0.0.2:4000"), nil, login, ok)
	assert.NoError(t, err)

	// unlimited methods pass
	_, err = ic(ctx, nil, &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod("ListActiveLawyers")}, ok)
	assert.NoError(t, err)
}

func TestClientIPForwardedOnlyFromLoopback(t *testing.T) {
	md := metadata.Pairs("x-forwarded-for", "203.0.113.7, 10.0.0.1")

	ctx := metadata.NewIncomingContext(peerCtx("127.0.0.1:9000"), md)
	assert.Equal(t, "203.0.113.7", clientIP(ctx))

	ctx = metadata.NewIncomingContext(peerCtx("198.51.100.4:9000"), md)
	assert.Equal(t, "198.51.100.4", clientIP(ctx))

	assert.Equal(t, "unknown", clientIP(context.Background()))
}

func TestSweepDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Now()
	rl.now = func() time.Time { return now }
	rl.Allow("a")

	now = now.Add(staleAfter + time.Second)
	rl.Allow("b")
	rl.sweep()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "a")
	assert.Contains(t, rl.clients, "b")
}

func TestRecover(t *testing.T) {
	_, err := Recover()(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/x/y"},
		func(context.Context, any) (any, error) { panic("boom") })
	assert.Equal(t, codes.Internal, status.Code(err))
}
