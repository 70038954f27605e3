package service

import (
	"context"
	"sync"

	"github.com/fjod/go_cart/storefront/internal/cache"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/events"
)

// mockCartRepository wraps a version-checked map and can inject failures.
type mockCartRepository struct {
	m         sync.RWMutex
	carts     map[string]*domain.Cart
	getErr    error
	saveErr   error
	conflicts int // number of SaveCart calls to fail with ErrVersionConflict
	gets      int
	saves     int
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{carts: make(map[string]*domain.Cart)}
}

func (m *mockCartRepository) GetCart(_ context.Context, userID string) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	c, ok := m.carts[userID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return c.Clone(), nil
}

func (m *mockCartRepository) SaveCart(_ context.Context, c *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.conflicts > 0 {
		m.conflicts--
		return domain.ErrVersionConflict
	}
	var stored int64
	if existing, ok := m.carts[c.UserID]; ok {
		stored = existing.Version
	}
	if stored != c.Version {
		return domain.ErrVersionConflict
	}
	c.Version++
	m.carts[c.UserID] = c.Clone()
	return nil
}

func (m *mockCartRepository) put(c *domain.Cart) {
	m.m.Lock()
	defer m.m.Unlock()
	m.carts[c.UserID] = c.Clone()
}

func (m *mockCartRepository) stats() (gets, saves int) {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.gets, m.saves
}

type mockCache struct {
	m       sync.RWMutex
	data    map[string]*domain.Cart
	getErr  error
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]*domain.Cart)}
}

func (c *mockCache) Get(_ context.Context, userID string) (*domain.Cart, error) {
	c.m.RLock()
	defer c.m.RUnlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	cart, ok := c.data[userID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return cart.Clone(), nil
}

func (c *mockCache) Set(_ context.Context, userID string, cart *domain.Cart) error {
	c.m.Lock()
	defer c.m.Unlock()
	c.data[userID] = cart.Clone()
	return nil
}

func (c *mockCache) Delete(_ context.Context, userID string) error {
	c.m.Lock()
	defer c.m.Unlock()
	delete(c.data, userID)
	c.deleted = append(c.deleted, userID)
	return nil
}

func (c *mockCache) has(userID string) bool {
	c.m.RLock()
	defer c.m.RUnlock()
	_, ok := c.data[userID]
	return ok
}

type mockPublisher struct {
	m      sync.RWMutex
	events []events.CartEvent
	err    error
}

func (p *mockPublisher) Publish(_ context.Context, e events.CartEvent) error {
	p.m.Lock()
	defer p.m.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *mockPublisher) Close() error { return nil }

func (p *mockPublisher) published() []events.CartEvent {
	p.m.RLock()
	defer p.m.RUnlock()
	return append([]events.CartEvent(nil), p.events...)
}

type mockUserRepository struct {
	m     sync.RWMutex
	users map[string]domain.User
	err   error
}

func newMockUserRepository(users ...domain.User) *mockUserRepository {
	r := &mockUserRepository{users: make(map[string]domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *mockUserRepository) GetUser(_ context.Context, id string) (*domain.User, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *mockUserRepository) UpdatePreferences(_ context.Context, id string, prefs domain.Preferences) (*domain.User, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Preferences = prefs
	r.users[id] = u
	return &u, nil
}

func (r *mockUserRepository) EnsureUser(_ context.Context, u domain.User) error {
	r.m.Lock()
	defer r.m.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		r.users[u.ID] = u
	}
	return nil
}

// blockingPublisher holds Publish until release is closed or its context ends.
type blockingPublisher struct {
	started chan struct{}
	release chan struct{}
	onStart func()

	once   sync.Once
	ctxErr chan error
}

func newBlockingPublisher() *blockingPublisher {
	return &blockingPublisher{
		started: make(chan struct{}),
		release: make(chan struct{}),
		ctxErr:  make(chan error, 1),
	}
}

func (p *blockingPublisher) Publish(ctx context.Context, _ events.CartEvent) error {
	p.once.Do(func() { close(p.started) })
	if p.onStart != nil {
		p.onStart()
	}
	select {
	case <-p.release:
		return nil
	case <-ctx.Done():
		p.ctxErr <- ctx.Err()
		return ctx.Err()
	}
}

func (p *blockingPublisher) Close() error { return nil }
