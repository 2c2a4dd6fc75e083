package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/99minutos/storefront/internal/core/ports"
)

var _ ports.AuthAPI = (*Client)(nil)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role,omitempty"`
	User  *struct {
		Role string `json:"role"`
	} `json:"user,omitempty"`
}

// Login calls POST /api/auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResponse, error) {
	var out loginResponse
	if err := c.doJSON(ctx, "login", http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}

	role := out.Role
	if role == "" && out.User != nil {
		role = out.User.Role
	}
	return &ports.LoginResponse{Token: out.Token, ServerRole: role}, nil
}

// Signup calls POST /api/auth/signup and returns the reply body as is.
func (c *Client) Signup(ctx context.Context, req ports.SignupRequest) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, "signup", http.MethodPost, "/api/auth/signup", "", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}
