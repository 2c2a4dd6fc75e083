package ports

import "context"

// CredentialStore persists the bearer credential across process restarts. It
// is the only component that touches durable storage.
type CredentialStore interface {
	// Save overwrites any previously stored credential.
	Save(ctx context.Context, credential string) error
	// Clear removes the credential and the legacy role marker. Clearing an
	// empty store is not an error.
	Clear(ctx context.Context) error
	// Read returns the stored credential. ok is false when nothing is stored
	// or the backend could not be read.
	Read(ctx context.Context) (credential string, ok bool)
}
