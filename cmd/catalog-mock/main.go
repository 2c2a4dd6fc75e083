package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/api"
	"github.com/99minutos/storefront/internal/infrastructure/config"
	"github.com/99minutos/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadMock(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Component: "catalog-mock"})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:     cfg.LogLevel,
		Pretty:    cfg.LogPretty,
		Output:    os.Stdout,
		Component: "catalog-mock",
	})

	e := newServer(cfg, log)
	log.Info().Str("port", cfg.Port).Msg("catalog mock listening")
	if err := serve(ctx, e, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("catalog mock stopped")
}

func newServer(cfg *config.MockConfig, log zerolog.Logger) *echo.Echo {
	if cfg.AdminSecret == "" {
		log.Warn().Msg("ADMIN_SECRET is empty, admin signup is disabled")
	}
	return api.NewRouter(api.Config{
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		AdminSecret: cfg.AdminSecret,
	}, log)
}

// serve runs e on addr until ctx is done, then shuts it down gracefully.
// A listener failure is returned as soon as it happens.
func serve(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
