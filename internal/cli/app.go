package cli

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/service"
	"github.com/99minutos/storefront/internal/infrastructure/config"
	"github.com/99minutos/storefront/internal/infrastructure/credstore"
	"github.com/99minutos/storefront/internal/infrastructure/httpapi"
)

// App is the wired storefront core shared by every command.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Store    ports.CredentialStore
	Resolver *service.SessionResolver
	Gate     *service.AuthorizationGate
	API      *httpapi.Client
	Auth     *service.AuthService
	Catalog  *service.CatalogService

	closers []func() error
}

// NewApp builds the core from cfg. One AuthorizationGate instance is shared by
// the catalog service and the navigation view.
func NewApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	store, closeStore, err := newCredentialStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	resolver := service.NewSessionResolver(store, log)
	gate := service.NewAuthorizationGate(resolver)
	api := httpapi.New(
		httpapi.Options{APIBaseURL: cfg.APIBaseURL},
		&http.Client{Timeout: cfg.HTTPTimeout},
		log,
	)

	app := &App{
		Config:   cfg,
		Logger:   log,
		Store:    store,
		Resolver: resolver,
		Gate:     gate,
		API:      api,
		Auth:     service.NewAuthService(api, store, resolver, log),
		Catalog:  service.NewCatalogService(api, gate, resolver, log),
	}
	if closeStore != nil {
		app.closers = append(app.closers, closeStore)
	}
	return app, nil
}

// Close releases backend connections.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func newCredentialStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.CredentialStore, func() error, error) {
	cc := cfg.Credentials
	switch strings.ToLower(cc.Backend) {
	case "", "file":
		store, err := credstore.NewFileStore(cc.Path, log)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("path", store.Path()).Msg("using file credential store")
		return store, nil, nil
	case "redis":
		client, err := credstore.ConnectRedis(ctx, credstore.RedisConfig{
			Addr:    cc.RedisAddr,
			DB:      cc.RedisDB,
			Prefix:  cc.RedisPrefix,
			Timeout: cfg.HTTPTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("credential store: %w", err)
		}
		log.Debug().Str("addr", cc.RedisAddr).Msg("using redis credential store")
		return credstore.NewRedisStore(client, cc.RedisPrefix, log), client.Close, nil
	case "memory":
		return credstore.NewMemoryStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("credential store: unknown backend %q (want file, redis or memory)", cc.Backend)
	}
}
