package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// CatalogAPI is the remote product catalog. An empty token sends no
// Authorization header.
//
// CreateProduct and UpdateProduct never return a nil record with a nil error.
// When an accepted reply carries no decodable product the record is empty
// (zero ID), and callers resync from ListProducts.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, token string, draft domain.ProductDraft, image *domain.Attachment) (*domain.Product, error)
	UpdateProduct(ctx context.Context, token, id string, patch domain.ProductPatch, image *domain.Attachment) (*domain.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error
}
