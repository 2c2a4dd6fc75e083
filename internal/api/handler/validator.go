package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/pkg/validation"
)

// echoValidator wraps the shared validator so Echo can call c.Validate(req).
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() echo.Validator {
	return echoValidator{}
}

// Validate satisfies the echo.Validator interface. Failures become 400s
// carrying the joined field messages.
func (echoValidator) Validate(i any) error {
	if err := validation.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
