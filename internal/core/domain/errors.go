package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthorizationRefused is returned when the local gate blocks a catalog
	// mutation before any request is issued.
	ErrAuthorizationRefused = errors.New("you do not have permission to manage products")
	// ErrNotAuthenticated is returned when a request needs a credential and
	// none is stored.
	ErrNotAuthenticated = errors.New("authentication error. please log in")
	// ErrNetwork marks requests that produced no usable response.
	ErrNetwork = errors.New("network failure")
	// ErrInvalidProduct is returned when a draft or patch fails local validation.
	ErrInvalidProduct = errors.New("please fill in all required fields")
	// ErrInvalidInput is returned when login or signup input fails local validation.
	ErrInvalidInput = errors.New("invalid input")
)

// ServerRejection is a response from the remote service carrying an error
// status. Message holds the payload's embedded message, if any.
type ServerRejection struct {
	Status  int
	Message string
}

func (e *ServerRejection) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request rejected: %d %s", e.Status, http.StatusText(e.Status))
}

// UserMessage turns err into the text shown to the user. Server messages are
// surfaced verbatim, local refusals keep their own wording, everything else
// collapses to fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var rej *ServerRejection
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message
	}

	switch {
	case errors.Is(err, ErrAuthorizationRefused):
		return "You do not have permission to manage products."
	case errors.Is(err, ErrNotAuthenticated):
		return "Authentication error. Please log in."
	case errors.Is(err, ErrInvalidProduct):
		return "Please fill in all required fields."
	case errors.Is(err, ErrInvalidInput):
		return err.Error()
	}
	return fallback
}
