package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
)

func TestSessionResolver_ResolveRole(t *testing.T) {
	r := NewSessionResolver(&stubStore{}, zerolog.Nop())

	cases := []struct {
		name       string
		credential string
		want       domain.Role
	}{
		{"absent", "", domain.RoleGuest},
		{"malformed", "not.a.jwt", domain.RoleGuest},
		{"garbage", "garbage", domain.RoleGuest},
		{"admin claim", roleToken(t, "admin"), domain.RoleAdmin},
		{"user claim", roleToken(t, "user"), domain.RoleUser},
		{"upper case claim", roleToken(t, "ADMIN"), domain.RoleUser},
		{"padded claim", roleToken(t, " admin"), domain.RoleUser},
		{"no role claim", signToken(t, jwt.MapClaims{"id": "u1"}), domain.RoleUser},
		{"unknown role", roleToken(t, "superuser"), domain.RoleUser},
		{"non-string role", signToken(t, jwt.MapClaims{"role": 7}), domain.RoleUser},
	}

	for _, tc := range cases {
		if got := r.ResolveRole(tc.credential); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestSessionResolver_SignatureNotVerified(t *testing.T) {
	r := NewSessionResolver(&stubStore{}, zerolog.Nop())

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"}).
		SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if got := r.ResolveRole(foreign); got != domain.RoleAdmin {
		t.Fatalf("expected claims to be trusted without verification, got %s", got)
	}
}

func TestSessionResolver_Current(t *testing.T) {
	store := &stubStore{}
	r := NewSessionResolver(store, zerolog.Nop())
	ctx := context.Background()

	if s := r.Current(ctx); s != domain.GuestSession {
		t.Fatalf("expected guest session, got %+v", s)
	}

	_ = store.Save(ctx, roleToken(t, "admin"))
	if s := r.Current(ctx); s.Role != domain.RoleAdmin || !s.Authenticated {
		t.Fatalf("expected authenticated admin, got %+v", s)
	}

	// A stored but undecodable credential is still a credential.
	_ = store.Save(ctx, "broken")
	if s := r.Current(ctx); s.Role != domain.RoleGuest || !s.Authenticated {
		t.Fatalf("expected authenticated guest, got %+v", s)
	}

	_ = store.Clear(ctx)
	if _, ok := r.Credential(ctx); ok {
		t.Fatalf("expected no credential after clear")
	}
}

func TestSessionResolver_NeverWrites(t *testing.T) {
	store := &stubStore{credential: "broken"}
	r := NewSessionResolver(store, zerolog.Nop())

	_ = r.Current(context.Background())
	if store.credential != "broken" || store.clears != 0 {
		t.Fatalf("resolver must not modify the store")
	}
}
