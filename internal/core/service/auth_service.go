package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/pkg/validation"
)

// User-facing fallbacks when the server gives no message of its own.
const (
	MsgLoginFailed  = "Login failed. Please try again."
	MsgSignupFailed = "Signup failed. Please try again."
)

var _ ports.AuthService = (*AuthService)(nil)

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// AuthService implements login, signup and logout on top of the remote auth
// endpoints and the credential store.
type AuthService struct {
	api      ports.AuthAPI
	store    ports.CredentialStore
	resolver *SessionResolver
	logger   zerolog.Logger
}

func NewAuthService(api ports.AuthAPI, store ports.CredentialStore, resolver *SessionResolver, logger zerolog.Logger) *AuthService {
	return &AuthService{api: api, store: store, resolver: resolver, logger: logger}
}

// Login exchanges email and password for a credential and stores it. The
// returned session is derived from the stored token, not from any role field
// in the response.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if err := validation.Struct(loginInput{Email: email, Password: password}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("login failed")
		return nil, err
	}
	if resp.Token == "" {
		return nil, &domain.ServerRejection{Message: "Authentication failed: No token received"}
	}

	if err := s.store.Save(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("store credential: %w", err)
	}

	role := s.resolver.ResolveRole(resp.Token)
	if resp.ServerRole != "" && resp.ServerRole != role.String() {
		s.logger.Warn().
			Str("token_role", role.String()).
			Str("response_role", resp.ServerRole).
			Msg("login response role disagrees with token claim, using token claim")
	}

	s.logger.Info().Str("email", email).Str("role", role.String()).Msg("logged in")

	return &ports.LoginResult{
		Token:   resp.Token,
		Session: domain.Session{Role: role, Authenticated: true},
	}, nil
}

// Signup registers an account. Role defaults to user. The server's reply is
// returned untouched because its shape is server-defined.
func (s *AuthService) Signup(ctx context.Context, req ports.SignupRequest) (json.RawMessage, error) {
	if req.Role == "" {
		req.Role = domain.RoleUser.String()
	}
	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	out, err := s.api.Signup(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("signup failed")
		return nil, err
	}

	s.logger.Info().Str("email", req.Email).Str("role", req.Role).Msg("signed up")
	return out, nil
}

// Logout forgets the credential.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	s.logger.Info().Msg("logged out")
	return nil
}

// Session returns the session derived from the stored credential.
func (s *AuthService) Session(ctx context.Context) domain.Session {
	return s.resolver.Current(ctx)
}
