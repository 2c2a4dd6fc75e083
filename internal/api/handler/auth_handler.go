package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/storefront/internal/api/store"
)

// AuthConfig controls token issuance and admin self-registration.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	// AdminSecret must accompany signups requesting the admin role. Empty
	// disables admin signup.
	AdminSecret string
}

type AuthHandler struct {
	users  *store.Users
	cfg    AuthConfig
	logger zerolog.Logger
}

func NewAuthHandler(users *store.Users, cfg AuthConfig, logger zerolog.Logger) *AuthHandler {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &AuthHandler{users: users, cfg: cfg, logger: logger}
}

type signupRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role" validate:"omitempty,oneof=user admin"`
	AdminSecret string `json:"adminSecret"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string     `json:"token"`
	Role  string     `json:"role"`
	User  store.User `json:"user"`
}

// Signup registers an account. The admin role requires the configured admin
// secret.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Role == "" {
		req.Role = "user"
	}

	if req.Role == "admin" && !h.adminSecretMatches(req.AdminSecret) {
		return echo.NewHTTPError(http.StatusForbidden, "Invalid admin secret")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user, err := h.users.Create(c.Request().Context(), store.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}

	h.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login checks the password and returns a signed token carrying the id and
// role claims.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.FindByEmail(c.Request().Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := h.generateToken(user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, Role: user.Role, User: user})
}

func (h *AuthHandler) generateToken(user store.User) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(h.cfg.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(h.cfg.JWTSecret))
}

func (h *AuthHandler) adminSecretMatches(given string) bool {
	if h.cfg.AdminSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(h.cfg.AdminSecret)) == 1
}
