package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/99minutos/storefront/internal/core/domain"
)

// ProductChanges lists the fields an update replaces. Nil fields are kept.
type ProductChanges struct {
	Name     *string
	Price    *float64
	Category *string
	Stock    *int
	ImageRef *string
}

// Products keeps the catalog in insertion order.
type Products struct {
	mu    sync.RWMutex
	items []domain.Product
}

func NewProducts() *Products {
	return &Products{}
}

func (r *Products) List(_ context.Context) []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items)
}

// Create appends p under a fresh id.
func (r *Products) Create(_ context.Context, p domain.Product) domain.Product {
	p.ID = uuid.NewString()
	p.Sizes = slices.Clone(p.Sizes)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, p)
	return p
}

func (r *Products) Update(_ context.Context, id string, ch ProductChanges) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return domain.Product{}, ErrNotFound
	}

	p := &r.items[i]
	if ch.Name != nil {
		p.Name = *ch.Name
	}
	if ch.Price != nil {
		p.Price = *ch.Price
	}
	if ch.Category != nil {
		p.Category = *ch.Category
	}
	if ch.Stock != nil {
		p.Stock = *ch.Stock
	}
	if ch.ImageRef != nil {
		p.ImageRef = *ch.ImageRef
	}
	return *p, nil
}

func (r *Products) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return ErrNotFound
	}
	r.items = slices.Delete(r.items, i, i+1)
	return nil
}

func (r *Products) index(id string) int {
	return slices.IndexFunc(r.items, func(p domain.Product) bool { return p.ID == id })
}
