package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/infrastructure/metrics"
	"github.com/99minutos/storefront/internal/pkg/validation"
)

// User-facing fallbacks for catalog failures without a server message.
const (
	MsgFetchFailed  = "Failed to fetch products. Please try again."
	MsgCreateFailed = "Failed to add product."
	MsgUpdateFailed = "Failed to update product."
	MsgDeleteFailed = "Failed to delete product."

	MsgLoginToCreate = "Please log in to add products."
)

var _ ports.CatalogService = (*CatalogService)(nil)

// ReloadFunc is invoked after a successful update, before the catalog is
// refetched. Front ends use it to drop any unsaved local state.
type ReloadFunc func()

// CatalogService caches the remote catalog and runs the mutation protocol:
//
//   - Create: gate, request, then full refetch.
//   - Update: gate, request, then reload hook and full refetch.
//   - Remove: gate, local removal, then request. A failed request is
//     reported but the local removal is not rolled back.
//
// Only the most recently issued FetchAll may apply its response. A fetch that
// completes after a newer one was issued is dropped.
type CatalogService struct {
	api      ports.CatalogAPI
	gate     *AuthorizationGate
	resolver *SessionResolver
	logger   zerolog.Logger

	mu        sync.Mutex
	products  []domain.Product
	loading   bool
	lastError string
	gen       uint64
	onReload  ReloadFunc
}

func NewCatalogService(api ports.CatalogAPI, gate *AuthorizationGate, resolver *SessionResolver, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		api:      api,
		gate:     gate,
		resolver: resolver,
		logger:   logger,
	}
}

// OnReload registers the hook fired by a successful Update.
func (s *CatalogService) OnReload(fn ReloadFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = fn
}

// FetchAll replaces the cached catalog with the remote one. Failures are only
// recorded in LastError.
func (s *CatalogService) FetchAll(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	products, err := s.api.ListProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		metrics.CatalogStaleFetchesTotal.Inc()
		s.logger.Debug().Uint64("generation", gen).Uint64("latest", s.gen).Msg("discarding stale catalog response")
		return
	}

	s.loading = false
	if err != nil {
		s.lastError = domain.UserMessage(err, MsgFetchFailed)
		s.logger.Error().Err(err).Msg("failed to fetch products")
		return
	}

	if products == nil {
		products = []domain.Product{}
	}
	s.products = products
	s.logger.Debug().Int("count", len(products)).Msg("catalog fetched")
}

// Create submits a new product and resynchronises the whole catalog on success
// instead of guessing server-assigned fields locally.
func (s *CatalogService) Create(ctx context.Context, draft domain.ProductDraft, image *domain.Attachment) error {
	token, err := s.authorize(ctx, "create")
	if err != nil {
		return err
	}

	if err := validation.Struct(draft); err != nil {
		invalid := fmt.Errorf("%w: %v", domain.ErrInvalidProduct, err)
		s.fail(invalid, MsgCreateFailed)
		return invalid
	}

	created, err := s.api.CreateProduct(ctx, token, draft, image)
	if err != nil {
		s.fail(err, MsgCreateFailed)
		s.logger.Error().Err(err).Str("name", draft.Name).Msg("failed to create product")
		return err
	}

	ev := s.logger.Info().Str("name", draft.Name)
	if created != nil && created.ID != "" {
		ev = ev.Str("id", created.ID)
	}
	ev.Msg("product created")

	s.FetchAll(ctx)
	return nil
}

// Update applies patch to product id. On success the whole view is reloaded:
// the reload hook fires, the cache is dropped and refetched.
func (s *CatalogService) Update(ctx context.Context, id string, patch domain.ProductPatch, image *domain.Attachment) error {
	token, err := s.authorize(ctx, "update")
	if err != nil {
		return err
	}

	if patch.Empty() && image == nil {
		invalid := fmt.Errorf("%w: nothing to update", domain.ErrInvalidProduct)
		s.fail(invalid, MsgUpdateFailed)
		return invalid
	}
	if err := validation.Struct(patch); err != nil {
		invalid := fmt.Errorf("%w: %v", domain.ErrInvalidProduct, err)
		s.fail(invalid, MsgUpdateFailed)
		return invalid
	}

	if _, err := s.api.UpdateProduct(ctx, token, id, patch, image); err != nil {
		s.fail(err, MsgUpdateFailed)
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update product")
		return err
	}

	s.logger.Info().Str("id", id).Msg("product updated")
	s.reload(ctx)
	return nil
}

// Remove drops product id from the cache and then asks the remote service to
// delete it. The local removal stands even if the request fails.
func (s *CatalogService) Remove(ctx context.Context, id string) error {
	token, err := s.authorize(ctx, "delete")
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.products = slices.DeleteFunc(slices.Clone(s.products), func(p domain.Product) bool {
		return p.ID == id
	})
	s.mu.Unlock()

	if err := s.api.DeleteProduct(ctx, token, id); err != nil {
		s.fail(err, MsgDeleteFailed)
		s.logger.Error().Err(err).Str("id", id).Msg("failed to delete product")
		return err
	}

	s.logger.Info().Str("id", id).Msg("product deleted")
	return nil
}

// State returns a copy of the cache state.
func (s *CatalogService) State() ports.CatalogState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ports.CatalogState{
		Products:  slices.Clone(s.products),
		Loading:   s.loading,
		LastError: s.lastError,
	}
}

// Visible is the filtered, windowed view of the cache.
func (s *CatalogService) Visible(criteria domain.FilterCriteria, expanded bool) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Window(Apply(s.products, criteria), expanded)
}

// authorize runs the gate and fetches the credential to sign the request
// with. Refusals are recorded as the user-visible notice.
func (s *CatalogService) authorize(ctx context.Context, op string) (string, error) {
	if !s.gate.MayMutateCatalog(ctx) {
		metrics.CatalogRefusalsTotal.WithLabelValues(op).Inc()
		s.fail(domain.ErrAuthorizationRefused, "")
		s.logger.Warn().Str("op", op).Msg("catalog mutation refused for current role")
		return "", domain.ErrAuthorizationRefused
	}

	token, ok := s.resolver.Credential(ctx)
	if !ok {
		if op == "create" {
			s.setError(MsgLoginToCreate)
		} else {
			s.fail(domain.ErrNotAuthenticated, "")
		}
		return "", domain.ErrNotAuthenticated
	}
	return token, nil
}

func (s *CatalogService) fail(err error, fallback string) {
	msg := domain.UserMessage(err, fallback)
	if msg == "" {
		msg = err.Error()
	}
	s.setError(msg)
}

func (s *CatalogService) setError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
}

func (s *CatalogService) reload(ctx context.Context) {
	s.mu.Lock()
	s.products = nil
	s.lastError = ""
	hook := s.onReload
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	s.FetchAll(ctx)
}
