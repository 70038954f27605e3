package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_cart/storefront/internal/cache"
	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/events"
	"github.com/fjod/go_cart/storefront/internal/repository"
	"github.com/fjod/go_cart/storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// maxSaveAttempts bounds how often a mutation is re-applied after a version conflict.
const maxSaveAttempts = 3

// defaultPublishTimeout bounds event delivery after a mutation has committed.
const defaultPublishTimeout = 2 * time.Second

type CartService struct {
	repo    repository.CartRepository
	catalog catalog.Store
	cache   cache.CartCache
	events  events.Publisher
	log     *zap.Logger
	sfg     singleflight.Group // Prevents cache stampede
	locks   keyedMutex
	newID   func() string
	now     func() time.Time

	publishTimeout time.Duration
}

func NewCartService(
	repo repository.CartRepository,
	products catalog.Store,
	cartCache cache.CartCache,
	publisher events.Publisher,
	log *zap.Logger,
) *CartService {
	if cartCache == nil {
		cartCache = cache.NopCache{}
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CartService{
		repo:    repo,
		catalog: products,
		cache:   cartCache,
		events:  publisher,
		log:     log,
		newID:   uuid.NewString,
		now:     func() time.Time { return time.Now().UTC() },

		publishTimeout: defaultPublishTimeout,
	}
}

// GetCart returns the user's cart with totals. A user without a cart gets an
// empty view.
func (s *CartService) GetCart(ctx context.Context, userID string) (domain.CartView, error) {
	cart, err := s.loadCart(ctx, userID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return domain.EmptyCartView(), nil
	}
	if err != nil {
		return domain.CartView{}, err
	}
	return s.ComputeTotals(ctx, cart)
}

func (s *CartService) loadCart(ctx context.Context, userID string) (*domain.Cart, error) {
	log := logger.FromContext(ctx, s.log)

	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn("cache get failed", zap.String("user_id", userID), zap.Error(err))
		}

		cart, err = s.repo.GetCart(ctx, userID)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(ctx, userID, cart); err != nil {
			log.Warn("cache set failed", zap.String("user_id", userID), zap.Error(err))
		}
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	// Callers sharing a flight must not share the cart.
	return v.(*domain.Cart).Clone(), nil
}

// AddItem adds quantity units of productID to the user's cart, creating the
// cart on first use. A nil quantity means one unit. An existing line for the
// product is incremented and keeps its original price snapshot.
func (s *CartService) AddItem(ctx context.Context, userID string, productID int64, quantity *int) (domain.CartView, error) {
	qty := 1
	if quantity != nil {
		qty = *quantity
	}
	if !domain.ValidQuantity(qty) {
		return domain.CartView{}, domain.ErrInvalidQuantity
	}

	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return domain.CartView{}, err
	}

	return s.mutate(ctx, userID, true, func(cart *domain.Cart) (events.CartEvent, error) {
		if i := cart.FindByProduct(productID); i >= 0 {
			// Compared by subtraction so an oversized stored quantity cannot wrap.
			if cart.Items[i].Quantity > domain.MaxQuantity-qty {
				return events.CartEvent{}, domain.ErrInvalidQuantity
			}
			cart.Items[i].Quantity += qty
			return cartEvent(events.ItemAdded, cart.Items[i]), nil
		}
		item := domain.CartItem{
			ID:              s.newID(),
			ProductID:       productID,
			Quantity:        qty,
			PriceAtAddition: product.Price,
			AddedAt:         s.now(),
		}
		cart.Items = append(cart.Items, item)
		return cartEvent(events.ItemAdded, item), nil
	})
}

// UpdateItemQuantity replaces the quantity of one line. The price snapshot is
// left untouched.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (domain.CartView, error) {
	if !domain.ValidQuantity(quantity) {
		return domain.CartView{}, domain.ErrInvalidQuantity
	}

	return s.mutate(ctx, userID, false, func(cart *domain.Cart) (events.CartEvent, error) {
		i := cart.FindItem(itemID)
		if i < 0 {
			return events.CartEvent{}, domain.ErrItemNotFound
		}
		cart.Items[i].Quantity = quantity
		return cartEvent(events.ItemUpdated, cart.Items[i]), nil
	})
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (domain.CartView, error) {
	return s.mutate(ctx, userID, false, func(cart *domain.Cart) (events.CartEvent, error) {
		i := cart.FindItem(itemID)
		if i < 0 {
			return events.CartEvent{}, domain.ErrItemNotFound
		}
		removed := cart.Items[i]
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

		ev := cartEvent(events.ItemRemoved, removed)
		ev.Quantity = 0
		return ev, nil
	})
}

// ComputeTotals joins every line with its current catalog entry for display.
// Subtotal uses the price snapshots; the total is not floored at zero.
// Lines whose product has left the catalog stay in the totals with a nil Product.
func (s *CartService) ComputeTotals(ctx context.Context, cart *domain.Cart) (domain.CartView, error) {
	view := domain.EmptyCartView()
	if cart == nil {
		return view, nil
	}

	for _, item := range cart.Items {
		line := domain.CartViewItem{CartItem: item}

		product, err := s.catalog.GetByID(ctx, item.ProductID)
		switch {
		case err == nil:
			line.Product = &domain.ProductSummary{
				ID:    product.ID,
				Name:  product.Name,
				Price: product.Price,
				Image: product.Image,
			}
		case errors.Is(err, domain.ErrProductNotFound):
			logger.FromContext(ctx, s.log).Debug("cart line references unknown product",
				zap.String("user_id", cart.UserID), zap.Int64("product_id", item.ProductID))
		default:
			return domain.CartView{}, err
		}

		view.Items = append(view.Items, line)
		view.Subtotal = view.Subtotal.Add(item.PriceAtAddition.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	view.Discount = cart.Discount
	view.Total = view.Subtotal.Sub(view.Discount)
	return view, nil
}

type mutation func(cart *domain.Cart) (events.CartEvent, error)

// mutate commits fn under the user's lock, then refreshes the cache, builds
// the view and publishes the change. The lock is not held while publishing,
// and a slow or failing broker never fails a committed mutation.
func (s *CartService) mutate(ctx context.Context, userID string, create bool, fn mutation) (domain.CartView, error) {
	cart, event, err := s.commit(ctx, userID, create, fn)
	if err != nil {
		return domain.CartView{}, err
	}

	s.invalidateCache(ctx, userID)
	view, viewErr := s.ComputeTotals(ctx, cart)

	event.UserID = userID
	event.Version = cart.Version
	event.OccurredAt = s.now()
	s.publish(ctx, event)

	return view, viewErr
}

// commit applies fn to a fresh copy of the user's cart and saves it, re-reading
// and re-applying on version conflicts. create controls whether a missing cart
// is started empty or reported as not found.
func (s *CartService) commit(ctx context.Context, userID string, create bool, fn mutation) (*domain.Cart, events.CartEvent, error) {
	log := logger.FromContext(ctx, s.log).With(zap.String("user_id", userID))

	unlock := s.locks.Lock(userID)
	defer unlock()

	for attempt := 1; ; attempt++ {
		cart, err := s.repo.GetCart(ctx, userID)
		if errors.Is(err, domain.ErrCartNotFound) && create {
			cart, err = domain.NewCart(userID), nil
		}
		if err != nil {
			return nil, events.CartEvent{}, err
		}

		event, err := fn(cart)
		if err != nil {
			return nil, events.CartEvent{}, err
		}

		err = s.repo.SaveCart(ctx, cart)
		if err == nil {
			return cart, event, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			log.Error("failed to save cart", zap.Error(err))
			return nil, events.CartEvent{}, err
		}
		if attempt == maxSaveAttempts {
			log.Warn("giving up after repeated version conflicts", zap.Int("attempts", attempt))
			return nil, events.CartEvent{}, fmt.Errorf("save cart after %d attempts: %w", attempt, err)
		}
		log.Debug("version conflict, retrying", zap.Int("attempt", attempt))
	}
}

// publish delivers event on a context detached from the request, so the
// request deadline neither cuts delivery short nor waits on the broker.
func (s *CartService) publish(ctx context.Context, event events.CartEvent) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()
	if err := s.events.Publish(pubCtx, event); err != nil {
		logger.FromContext(ctx, s.log).Warn("failed to publish cart event",
			zap.String("user_id", event.UserID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}

func (s *CartService) invalidateCache(ctx context.Context, userID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		logger.FromContext(ctx, s.log).Warn("cache invalidate failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func cartEvent(t events.EventType, item domain.CartItem) events.CartEvent {
	return events.CartEvent{
		Type:      t,
		ItemID:    item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
}
