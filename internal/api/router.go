// Package api is an in-memory HTTP implementation of the remote catalog
// contract: auth, product listing and admin-only product management. It backs
// local development and the integration tests of the storefront client.
package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/api/handler"
	"github.com/99minutos/storefront/internal/api/middleware"
	"github.com/99minutos/storefront/internal/api/store"
)

// Config carries the settings of the fake server.
type Config struct {
	JWTSecret   string
	TokenTTL    time.Duration
	AdminSecret string
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Each router owns its Prometheus registry so several can live in one process.
func NewRouter(cfg Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "catalog_mock",
		Registerer: reg,
	}))

	// --- Dependencies ---
	users := store.NewUsers()
	products := store.NewProducts()
	images := store.NewImages()

	authHandler := handler.NewAuthHandler(users, handler.AuthConfig{
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		AdminSecret: cfg.AdminSecret,
	}, log)
	productHandler := handler.NewProductHandler(products, images, log)
	adminOnly := []echo.MiddlewareFunc{middleware.Auth(cfg.JWTSecret), middleware.RBAC("admin")}

	// --- Auth routes ---
	e.POST("/api/auth/signup", authHandler.Signup)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Catalog routes ---
	e.GET("/api/products", productHandler.List)
	e.POST("/api/products", productHandler.Create, adminOnly...)
	e.PUT("/api/products/:id", productHandler.Update, adminOnly...)
	e.DELETE("/api/products/:id", productHandler.Delete, adminOnly...)
	e.GET(store.UploadPrefix+":name", productHandler.Image)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
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
				Msg("request")
			return nil
		},
	})
}
