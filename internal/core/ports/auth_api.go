package ports

import (
	"context"
	"encoding/json"
)

// LoginResponse is what the remote service returns on a successful login.
// ServerRole is informational only; the role is always read from the token.
type LoginResponse struct {
	Token      string
	ServerRole string
}

// SignupRequest carries the fields of POST /api/auth/signup.
type SignupRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role" validate:"required,oneof=user admin"`
	AdminSecret string `json:"adminSecret,omitempty"`
}

// AuthAPI is the remote authentication endpoint.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Signup(ctx context.Context, req SignupRequest) (json.RawMessage, error)
}
