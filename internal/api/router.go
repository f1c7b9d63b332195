package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/andesmarket/storefront-gateway/internal/api/handler"
	"github.com/andesmarket/storefront-gateway/internal/api/middleware"
	"github.com/andesmarket/storefront-gateway/internal/core/domain"
	"github.com/andesmarket/storefront-gateway/internal/core/service"
	"github.com/andesmarket/storefront-gateway/internal/infrastructure/backend"
	redisdb "github.com/andesmarket/storefront-gateway/internal/infrastructure/db/redis"
	"github.com/andesmarket/storefront-gateway/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	store := redisdb.NewSessionStore(rdb)
	client := backend.NewClient(cfg.Backend.BaseURL, store, log)

	negotiator := service.NewSessionNegotiator(client, store, cfg.Auth.RedirectDelay, cfg.Auth.ReloginDelay, log)
	conversion := service.NewConversionService(client, cfg.Exchange.ReferenceCurrency, log)
	contact := service.NewContactService(client, log)
	payment := service.NewPaymentService(client, log)

	authHandler := handler.NewAuthHandler(negotiator, store)
	conversionHandler := handler.NewConversionHandler(conversion)
	contactHandler := handler.NewContactHandler(contact)
	paymentHandler := handler.NewPaymentHandler(payment)

	sessionRequired := middleware.Session(store)

	// --- Auth routes ---
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/logout", authHandler.Logout)
	e.GET("/v1/auth/session", authHandler.Session, sessionRequired)

	// --- Storefront routes (session required) ---
	e.GET("/v1/convert", conversionHandler.Convert, sessionRequired)
	e.POST("/v1/contact", contactHandler.Send, sessionRequired)
	// Checkout is a customer surface; employees manage orders elsewhere.
	e.POST("/v1/payments", paymentHandler.Initiate, sessionRequired,
		middleware.RBAC(domain.RoleCustomer))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(rdb, client)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
