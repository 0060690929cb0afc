package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"

	"legal-booking-api/internal/auth"
	"legal-booking-api/internal/cache"
	"legal-booking-api/internal/config"
	gweb "legal-booking-api/internal/grpcweb"
	"legal-booking-api/internal/handler"
	"legal-booking-api/internal/logger"
	"legal-booking-api/internal/metrics"
	"legal-booking-api/internal/middleware"
	"legal-booking-api/internal/notify"
	"legal-booking-api/internal/platform/postgres"
	"legal-booking-api/internal/platform/redis"
	"legal-booking-api/internal/rpc"
	"legal-booking-api/internal/service"
	"legal-booking-api/internal/store"
)

const serviceName = "legal-booking-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger.Init(serviceName, cfg.Debug, cfg.LogConsole)
	metrics.MustRegister(prometheus.DefaultRegisterer, serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// database
	pool, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool, cfg.MigrationPath); err != nil {
		log.Fatal().Err(err).Msg("migration")
	}
	st := store.New(pool)

	// redis is optional: without it mail goes out inline and the directory is uncached
	var (
		notifier    notify.Notifier = notify.Direct{Mailer: notify.LogMailer{}}
		lawyerCache service.LawyerCache
		rdb         *goredis.Client
	)
	if rdb, err = redis.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, running without cache and queue")
	} else {
		defer rdb.Close()
		notifier = notify.NewStreamPublisher(rdb, cfg.NotifyStream)
		lawyerCache = cache.NewLawyers(rdb, cfg.LawyerCacheTTL)

		host, _ := os.Hostname()
		worker := notify.NewWorker(rdb, cfg.NotifyStream, host, notify.LogMailer{})
		go worker.Run(ctx)
	}

	identity := service.NewIdentity(st, st, st, st, notifier, service.IdentityConfig{
		Issuer:     auth.Issuer{Secret: cfg.Auth.JWTSecret, TTL: cfg.Auth.AccessTokenTTL},
		RefreshTTL: cfg.Auth.RefreshTokenTTL,
		AdminEmail: cfg.AdminEmail,
		SignupKey:  cfg.Auth.AdminSignupKey,
	})
	directory := service.NewDirectory(st, st, lawyerCache)
	booking := service.NewBooking(st, st)
	h := handler.New(identity, directory, booking)

	// grpc server
	rl := middleware.NewRateLimiter(cfg.Server.RateRPS, cfg.Server.RateBurst)
	go rl.Run(ctx)
	srv := grpc.NewServer(
		grpc.ForceServerCodec(rpc.Codec()),
		grpc.ChainUnaryInterceptor(
			middleware.Observe(),
			middleware.Recover(),
			middleware.RateLimit(rl),
			middleware.Auth(cfg.Auth.JWTSecret),
		),
	)
	rpc.RegisterLegalServiceServer(srv, h)

	lis, err := net.Listen("tcp", ":"+cfg.Server.GRPCPort)
	if err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
	go func() {
		log.Info().Str("port", cfg.Server.GRPCPort).Msg("grpc listening")
		if err := srv.Serve(lis); err != nil {
			log.Error().Err(err).Msg("grpc")
		}
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := gweb.Dial("localhost:" + cfg.Server.GRPCPort)
	if err != nil {
		log.Fatal().Err(err).Msg("bridge")
	}
	defer bridge.Close()

	proxies, err := gweb.ParseProxies(cfg.Server.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("trusted proxies")
	}
	checks := map[string]gweb.Check{"postgres": st.Ping}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	router := gweb.Router(bridge, gweb.RouterConfig{
		Service:           rpc.ServiceName,
		CORSOrigins:       cfg.Server.CORSOrigins,
		TrustedProxies:    proxies,
		RequestsPerMinute: cfg.Server.WebRateLimit,
		Checks:            checks,
		Gatherer:          prometheus.DefaultGatherer,
	})
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Server.WebPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.Server.WebPort).Msg("grpc-web listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http")
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	srv.GracefulStop()
}
