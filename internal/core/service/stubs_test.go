package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

type stubStore struct {
	mu         sync.Mutex
	credential string
	clears     int
}

func (s *stubStore) Save(_ context.Context, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = credential
	return nil
}

func (s *stubStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = ""
	s.clears++
	return nil
}

func (s *stubStore) Read(_ context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential, s.credential != ""
}

type stubCatalogAPI struct {
	mu      sync.Mutex
	calls   map[string]int
	tokens  []string
	listFn  func(ctx context.Context) ([]domain.Product, error)
	errFor  map[string]error
	created []domain.ProductDraft
	patched map[string]domain.ProductPatch
	deleted []string
}

func newStubCatalogAPI(products []domain.Product) *stubCatalogAPI {
	return &stubCatalogAPI{
		calls:   make(map[string]int),
		errFor:  make(map[string]error),
		patched: make(map[string]domain.ProductPatch),
		listFn: func(context.Context) ([]domain.Product, error) {
			return append([]domain.Product(nil), products...), nil
		},
	}
}

func (a *stubCatalogAPI) record(op, token string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls[op]++
	if token != "" {
		a.tokens = append(a.tokens, token)
	}
	return a.errFor[op]
}

func (a *stubCatalogAPI) count(op string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[op]
}

func (a *stubCatalogAPI) totalCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.calls {
		n += c
	}
	return n
}

func (a *stubCatalogAPI) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := a.record("list", ""); err != nil {
		return nil, err
	}
	return a.listFn(ctx)
}

func (a *stubCatalogAPI) CreateProduct(_ context.Context, token string, draft domain.ProductDraft, _ *domain.Attachment) (*domain.Product, error) {
	if err := a.record("create", token); err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.created = append(a.created, draft)
	a.mu.Unlock()
	return &domain.Product{ID: "new", Name: draft.Name}, nil
}

func (a *stubCatalogAPI) UpdateProduct(_ context.Context, token, id string, patch domain.ProductPatch, _ *domain.Attachment) (*domain.Product, error) {
	if err := a.record("update", token); err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.patched[id] = patch
	a.mu.Unlock()
	return &domain.Product{ID: id}, nil
}

func (a *stubCatalogAPI) DeleteProduct(_ context.Context, token, id string) error {
	if err := a.record("delete", token); err != nil {
		return err
	}
	a.mu.Lock()
	a.deleted = append(a.deleted, id)
	a.mu.Unlock()
	return nil
}

type stubAuthAPI struct {
	resp      *ports.LoginResponse
	err       error
	signupErr error
	signups   []ports.SignupRequest
}

func (a *stubAuthAPI) Login(context.Context, string, string) (*ports.LoginResponse, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.resp, nil
}

func (a *stubAuthAPI) Signup(_ context.Context, req ports.SignupRequest) (json.RawMessage, error) {
	if a.signupErr != nil {
		return nil, a.signupErr
	}
	a.signups = append(a.signups, req)
	return json.RawMessage(`{"message":"User registered successfully"}`), nil
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func roleToken(t *testing.T, role string) string {
	t.Helper()
	return signToken(t, jwt.MapClaims{"id": "u1", "role": role})
}

// newCatalog wires a catalog service whose store holds credential.
func newCatalog(t *testing.T, credential string, api *stubCatalogAPI) (*CatalogService, *stubStore) {
	t.Helper()
	store := &stubStore{credential: credential}
	resolver := NewSessionResolver(store, zerolog.Nop())
	gate := NewAuthorizationGate(resolver)
	return NewCatalogService(api, gate, resolver, zerolog.Nop()), store
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Linen Shirt", Description: "breathable", Price: 40, Category: domain.CategoryClothing, Stock: 5},
		{ID: "2", Name: "Trail Runner", Description: "grippy sole", Price: 120, Category: domain.CategoryFootwear, Stock: 2},
		{ID: "3", Name: "Canvas Tote", Description: "everyday bag", Price: 25, Category: domain.CategoryBags, Stock: 10},
		{ID: "4", Name: "Leather Boot", Description: "Waterproof", Price: 180, Category: domain.CategoryFootwear, Stock: 1},
		{ID: "5", Name: "Wool Socks", Description: "warm", Price: 12, Category: domain.CategoryEssentials, Stock: 30},
	}
}
