package catalog

import (
	"context"
	"sync"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// MemoryStore implements Store over a slice kept in insertion order.
type MemoryStore struct {
	mu       sync.RWMutex
	products []domain.Product
	byID     map[int64]int // productID -> index into products
}

// NewMemoryStore creates a store holding the given products. Later duplicates
// of an id are ignored.
func NewMemoryStore(products []domain.Product) *MemoryStore {
	s := &MemoryStore{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	for _, p := range products {
		if _, exists := s.byID[p.ID]; exists {
			continue
		}
		s.byID[p.ID] = len(s.products)
		s.products = append(s.products, p.Clone())
	}
	return s
}

func (s *MemoryStore) GetAll(ctx context.Context) ([]domain.Product, error) {
	return s.Find(ctx, domain.ProductFilter{})
}

func (s *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, exists := s.byID[id]
	if !exists {
		return nil, domain.ErrProductNotFound
	}
	p := s.products[idx].Clone()
	return &p, nil
}

func (s *MemoryStore) GetByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.Find(ctx, domain.ProductFilter{Category: category})
}

func (s *MemoryStore) Find(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter.Matches(p) {
			result = append(result, p.Clone())
		}
	}
	return result, nil
}
