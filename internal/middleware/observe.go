package middleware

import (
	"context"
	"path"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"legal-booking-api/internal/metrics"
)

// Observe records the RPC counters and writes one log line per call.
// It runs outermost so rejected calls are counted too.
func Observe() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		elapsed := time.Since(start)

		method := path.Base(info.FullMethod)
		code := status.Code(err)
		metrics.RPCRequestsTotal.WithLabelValues(method, code.String()).Inc()
		metrics.RPCDurationSeconds.WithLabelValues(method).Observe(elapsed.Seconds())

		ev := log.Info()
		switch code {
		case codes.ResourceExhausted:
			ev = log.Warn()
		case codes.Internal, codes.Unavailable, codes.Unknown, codes.DeadlineExceeded:
			ev = log.Error()
		}
		ev.Str("method", method).
			Str("code", code.String()).
			Str("ip", clientIP(ctx)).
			Dur("elapsed", elapsed).
			Msg("rpc")
		return resp, err
	}
}

// Recover turns a handler panic into codes.Internal.
func Recover() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("method", info.FullMethod).
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("handler panic")
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return next(ctx, req)
	}
}
