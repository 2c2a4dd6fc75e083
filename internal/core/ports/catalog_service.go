package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// CatalogState is a snapshot of the client-side catalog cache.
type CatalogState struct {
	Products  []domain.Product
	Loading   bool
	LastError string
}

// CatalogService owns the cached catalog and the mutation protocol.
type CatalogService interface {
	FetchAll(ctx context.Context)
	Create(ctx context.Context, draft domain.ProductDraft, image *domain.Attachment) error
	Update(ctx context.Context, id string, patch domain.ProductPatch, image *domain.Attachment) error
	Remove(ctx context.Context, id string) error
	State() CatalogState
	Visible(criteria domain.FilterCriteria, expanded bool) []domain.Product
}
