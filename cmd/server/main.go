// @title                       Marketing Site Lead API
// @version                     1.0
// @description                 Account registration, token login and contact form lead management.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/leadsite/marketing-api/internal/api"
	"github.com/leadsite/marketing-api/internal/core/service"
	"github.com/leadsite/marketing-api/internal/infrastructure/config"
	"github.com/leadsite/marketing-api/internal/infrastructure/db"
	"github.com/leadsite/marketing-api/internal/infrastructure/db/redis"
	"github.com/leadsite/marketing-api/internal/infrastructure/http/handlers"
	"github.com/leadsite/marketing-api/internal/pkg/password"
	"github.com/leadsite/marketing-api/internal/pkg/token"
	"github.com/leadsite/marketing-api/pkg/logger"
)

func main() {
	startedAt := time.Now()
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.New(logger.Options{})
		l.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "marketing-api",
	})

	if cfg.UsingDevSecret() {
		log.Warn().Msg("JWT_SECRET is not set, signing tokens with the development fallback secret")
	}
	if cfg.Auth.AdminAPIKey == "" {
		log.Info().Msg("ADMIN_API_KEY is not set, operational key bypass disabled")
	}

	store, err := db.Open(ctx, cfg.Store, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("open store")
	}
	defer store.Close(context.Background())

	probes := make([]handlers.Pinger, 0, len(store.Pingers)+1)
	for _, p := range store.Pingers {
		probes = append(probes, p)
	}

	tokens := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	deps := api.Dependencies{
		Log:         log,
		Auth:        service.NewAuthService(store.Users, password.NewHasher(cfg.Auth.BcryptCost), tokens, log),
		Contacts:    service.NewContactService(store.Contacts, log),
		Tokens:      tokens,
		AdminAPIKey: cfg.Auth.AdminAPIKey,
		StartedAt:   startedAt,
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect redis")
		}
		defer rdb.Close()

		deps.Limiter = redis.NewFixedWindowLimiter(rdb, "contacts", cfg.Redis.ContactRateLimit, cfg.Redis.ContactRateWindow)
		deps.Probes = append(probes, redis.NewPinger(rdb))
		log.Info().
			Int("limit", cfg.Redis.ContactRateLimit).
			Dur("window", cfg.Redis.ContactRateWindow).
			Msg("contact submission rate limit enabled")
	} else {
		deps.Probes = probes
	}

	e := api.NewRouter(deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	shutdown(srv, log)
}

func shutdown(srv *http.Server, log zerolog.Logger) {
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
}
