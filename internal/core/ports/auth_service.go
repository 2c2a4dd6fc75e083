package ports

import (
	"context"
	"encoding/json"

	"github.com/99minutos/storefront/internal/core/domain"
)

// LoginResult is returned to the front end after a successful login.
type LoginResult struct {
	Token   string
	Session domain.Session
}

// AuthService covers login, signup, logout and session inspection.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Signup(ctx context.Context, req SignupRequest) (json.RawMessage, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) domain.Session
}
