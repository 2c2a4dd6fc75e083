package service

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// CanMutateCatalog reports whether role may create, update or delete products.
func CanMutateCatalog(role domain.Role) bool {
	return role == domain.RoleAdmin
}

// AuthorizationGate answers role-gated questions for every front-end action.
// A single instance is shared by all of them so they cannot disagree.
//
// The gate only hides controls. The remote service is the enforcement point.
type AuthorizationGate struct {
	resolver *SessionResolver
}

func NewAuthorizationGate(resolver *SessionResolver) *AuthorizationGate {
	return &AuthorizationGate{resolver: resolver}
}

// Session returns the current session.
func (g *AuthorizationGate) Session(ctx context.Context) domain.Session {
	return g.resolver.Current(ctx)
}

// MayMutateCatalog evaluates CanMutateCatalog against the current session.
func (g *AuthorizationGate) MayMutateCatalog(ctx context.Context) bool {
	return CanMutateCatalog(g.resolver.Current(ctx).Role)
}

// NavLink is an entry of the navigation bar.
type NavLink struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Navigation returns the links visible to the current session.
func (g *AuthorizationGate) Navigation(ctx context.Context) []NavLink {
	s := g.resolver.Current(ctx)
	if !s.Authenticated {
		return []NavLink{
			{Title: "Login", Path: "/login"},
			{Title: "Sign Up", Path: "/signup"},
		}
	}

	links := make([]NavLink, 0, 3)
	if CanMutateCatalog(s.Role) {
		links = append(links, NavLink{Title: "Admin Panel", Path: "/admin-dashboard"})
	}
	links = append(links,
		NavLink{Title: "Products", Path: "/products"},
		NavLink{Title: "Logout", Path: "/logout"},
	)
	return links
}
