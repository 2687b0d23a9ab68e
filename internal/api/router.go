package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/leadsite/marketing-api/docs"
	"github.com/leadsite/marketing-api/internal/api/handler"
	"github.com/leadsite/marketing-api/internal/api/middleware"
	"github.com/leadsite/marketing-api/internal/core/ports"
	"github.com/leadsite/marketing-api/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router needs. Limiter and Probes are optional.
type Dependencies struct {
	Log         zerolog.Logger
	Auth        ports.AuthService
	Contacts    ports.ContactService
	Tokens      ports.TokenIssuer
	AdminAPIKey string
	Limiter     middleware.Limiter
	Probes      []handlers.Pinger
	StartedAt   time.Time
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// HTTP metrics get their own registry so several routers can coexist
	// in one process; /metrics serves both it and the default registry.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "leads",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Ops endpoints (outside the gate) ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	contactHandler := handler.NewContactHandler(deps.Contacts)
	healthHandler := handlers.NewHealthHandler(deps.StartedAt)
	readinessHandler := handlers.NewReadinessHandler(deps.Probes...)

	gate := middleware.NewGate(deps.Tokens, deps.AdminAPIKey)

	api := e.Group("/api", gate.Middleware())

	api.GET("/health", healthHandler.Liveness)
	api.GET("/health/ready", readinessHandler.Readiness)

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me)

	submit := []echo.MiddlewareFunc{}
	if deps.Limiter != nil {
		submit = append(submit, middleware.RateLimit(deps.Limiter, deps.Log))
	}
	api.POST("/contacts", contactHandler.Create, submit...)
	api.GET("/contacts", contactHandler.List)
	api.GET("/contacts/:id", contactHandler.Get)
	api.PUT("/contacts/:id", contactHandler.Update)
	api.DELETE("/contacts/:id", contactHandler.Delete)

	// The dashboard is rendered elsewhere; the gate still guards the prefix.
	e.Group("/dashboard", gate.Middleware())

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
