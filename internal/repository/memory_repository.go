package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// MemoryCartRepository implements CartRepository with the same version
// semantics as the MongoDB repository.
type MemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart // userID -> cart
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: make(map[string]*domain.Cart)}
}

func (r *MemoryCartRepository) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, exists := r.carts[userID]
	if !exists {
		return nil, domain.ErrCartNotFound
	}
	return cart.Clone(), nil
}

func (r *MemoryCartRepository) SaveCart(ctx context.Context, cart *domain.Cart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var stored int64
	if existing, exists := r.carts[cart.UserID]; exists {
		stored = existing.Version
	}
	if stored != cart.Version {
		return domain.ErrVersionConflict
	}

	now := time.Now().UTC()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now
	cart.Version++

	r.carts[cart.UserID] = cart.Clone()
	return nil
}

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewMemoryUserRepository(users ...domain.User) *MemoryUserRepository {
	r := &MemoryUserRepository{users: make(map[string]*domain.User, len(users))}
	for _, u := range users {
		r.users[u.ID] = cloneUser(u)
	}
	return r
}

func (r *MemoryUserRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(*u), nil
}

func (r *MemoryUserRepository) UpdatePreferences(ctx context.Context, id string, prefs domain.Preferences) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.users[id]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	u.Preferences = clonePreferences(prefs)
	return cloneUser(*u), nil
}

func (r *MemoryUserRepository) EnsureUser(ctx context.Context, user domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; !exists {
		r.users[user.ID] = cloneUser(user)
	}
	return nil
}

func cloneUser(u domain.User) *domain.User {
	u.Preferences = clonePreferences(u.Preferences)
	u.Wishlist = slices.Clone(u.Wishlist)
	return &u
}

func clonePreferences(p domain.Preferences) domain.Preferences {
	if p.PriceRange != nil {
		r := *p.PriceRange
		p.PriceRange = &r
	}
	return p
}
