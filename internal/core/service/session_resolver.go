package service

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/infrastructure/metrics"
)

// SessionResolver derives the session from the stored credential. It only
// reads the store and never writes to it.
//
// Claims are decoded without signature verification: the client trusts the
// token it was handed, and the remote service verifies it on every request.
type SessionResolver struct {
	store  ports.CredentialStore
	parser *jwt.Parser
	logger zerolog.Logger
}

func NewSessionResolver(store ports.CredentialStore, logger zerolog.Logger) *SessionResolver {
	return &SessionResolver{
		store:  store,
		parser: jwt.NewParser(),
		logger: logger,
	}
}

// ResolveRole returns the role embedded in credential. An empty credential is
// a guest; an undecodable one is logged and treated as a guest; a decodable one
// without a recognised role claim is a user.
func (r *SessionResolver) ResolveRole(credential string) domain.Role {
	if credential == "" {
		return domain.RoleGuest
	}

	claims := jwt.MapClaims{}
	if _, _, err := r.parser.ParseUnverified(credential, claims); err != nil {
		metrics.SessionDecodeFailuresTotal.Inc()
		r.logger.Warn().Err(err).Msg("credential claims could not be decoded, falling back to guest")
		return domain.RoleGuest
	}

	raw, _ := claims["role"].(string)
	if role, ok := domain.ParseRole(raw); ok {
		return role
	}
	return domain.RoleUser
}

// Current recomputes the session from whatever credential is stored right now.
func (r *SessionResolver) Current(ctx context.Context) domain.Session {
	credential, ok := r.store.Read(ctx)
	if !ok || credential == "" {
		return domain.GuestSession
	}
	return domain.Session{
		Role:          r.ResolveRole(credential),
		Authenticated: true,
	}
}

// Credential returns the stored credential for request signing.
func (r *SessionResolver) Credential(ctx context.Context) (string, bool) {
	credential, ok := r.store.Read(ctx)
	return credential, ok && credential != ""
}
