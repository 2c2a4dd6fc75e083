package credstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// fileDocument is the on-disk layout. Role is the legacy shadow marker: it is
// read so it can be cleared, and never written.
type fileDocument struct {
	Token string `yaml:"token,omitempty"`
	Role  string `yaml:"role,omitempty"`
}

// FileStore persists the credential as a small YAML document. Writes go to a
// temporary file that is renamed over the target, so a crash never leaves a
// half-written credential behind.
//
// The file is protected by permissions only. It is not encrypted.
type FileStore struct {
	path   string
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewFileStore returns a store backed by path. An empty path resolves to
// DefaultPath().
func NewFileStore(path string, logger zerolog.Logger) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FileStore{path: path, logger: logger}, nil
}

// DefaultPath is <user config dir>/storefront/credentials.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "storefront", "credentials.yaml"), nil
}

// Path returns the backing file.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Save(_ context.Context, credential string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(fileDocument{Token: credential})
}

func (f *FileStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}

func (f *FileStore) Read(_ context.Context) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.logger.Warn().Err(err).Str("path", f.path).Msg("credential file unreadable")
		}
		return "", false
	}

	var doc fileDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		f.logger.Warn().Err(err).Str("path", f.path).Msg("credential file malformed")
		return "", false
	}
	return doc.Token, doc.Token != ""
}

func (f *FileStore) write(doc fileDocument) error {
	if err := os.MkdirAll(filepath.Dir(f.path), dirMode); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".credentials-*")
	if err != nil {
		return fmt.Errorf("create temp credential file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write credential: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod credential: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close credential: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace credential file: %w", err)
	}
	return nil
}
