// Package store holds the in-memory state of the catalog contract fake:
// registered accounts, products and uploaded images.
package store

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrUserExists = errors.New("user already exists")
)
