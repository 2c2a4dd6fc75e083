package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash is a bcrypt hash.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// Users is a concurrency-safe account registry keyed by lower-cased email.
type Users struct {
	mu      sync.RWMutex
	byEmail map[string]User
}

func NewUsers() *Users {
	return &Users{byEmail: make(map[string]User)}
}

// Create stores u and assigns its id.
func (r *Users) Create(_ context.Context, u User) (User, error) {
	key := strings.ToLower(u.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[key]; exists {
		return User{}, ErrUserExists
	}
	u.ID = uuid.NewString()
	r.byEmail[key] = u
	return u, nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}
