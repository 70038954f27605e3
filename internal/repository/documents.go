package repository

import (
	"fmt"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type cartDocument struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	UserID     string               `bson:"user_id"`
	Items      []cartItemDocument   `bson:"items"`
	Discount   primitive.Decimal128 `bson:"discount"`
	CouponCode string               `bson:"coupon_code,omitempty"`
	Version    int64                `bson:"version"`
	CreatedAt  time.Time            `bson:"created_at"`
	UpdatedAt  time.Time            `bson:"updated_at"`
}

type cartItemDocument struct {
	ID              string               `bson:"id"`
	ProductID       int64                `bson:"product_id"`
	Quantity        int                  `bson:"quantity"`
	PriceAtAddition primitive.Decimal128 `bson:"price_at_addition"`
	AddedAt         time.Time            `bson:"added_at"`
}

type userDocument struct {
	ID          string              `bson:"_id"`
	Name        string              `bson:"name"`
	Preferences preferencesDocument `bson:"preferences"`
	Wishlist    []int64             `bson:"wishlist"`
}

type preferencesDocument struct {
	Style         string              `bson:"style"`
	PriceRange    *priceRangeDocument `bson:"price_range,omitempty"`
	EcoPreference string              `bson:"eco_preference"`
}

type priceRangeDocument struct {
	Min primitive.Decimal128 `bson:"min"`
	Max primitive.Decimal128 `bson:"max"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("decimal %s out of range: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	if v.IsZero() {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid stored decimal %s: %w", v, err)
	}
	return d, nil
}

func toCartDocument(c *domain.Cart) (cartDocument, error) {
	discount, err := toDecimal128(c.Discount)
	if err != nil {
		return cartDocument{}, err
	}
	doc := cartDocument{
		UserID:     c.UserID,
		Items:      make([]cartItemDocument, len(c.Items)),
		Discount:   discount,
		CouponCode: c.CouponCode,
		Version:    c.Version,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	for i, item := range c.Items {
		price, err := toDecimal128(item.PriceAtAddition)
		if err != nil {
			return cartDocument{}, err
		}
		doc.Items[i] = cartItemDocument{
			ID:              item.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtAddition: price,
			AddedAt:         item.AddedAt,
		}
	}
	return doc, nil
}

func (d cartDocument) toDomain() (*domain.Cart, error) {
	discount, err := fromDecimal128(d.Discount)
	if err != nil {
		return nil, err
	}
	cart := &domain.Cart{
		UserID:     d.UserID,
		Items:      make([]domain.CartItem, len(d.Items)),
		Discount:   discount,
		CouponCode: d.CouponCode,
		Version:    d.Version,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
	for i, item := range d.Items {
		price, err := fromDecimal128(item.PriceAtAddition)
		if err != nil {
			return nil, err
		}
		cart.Items[i] = domain.CartItem{
			ID:              item.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtAddition: price,
			AddedAt:         item.AddedAt,
		}
	}
	return cart, nil
}

func toPreferencesDocument(p domain.Preferences) (preferencesDocument, error) {
	doc := preferencesDocument{
		Style:         p.Style,
		EcoPreference: string(p.EcoPreference),
	}
	if p.PriceRange != nil {
		lo, err := toDecimal128(p.PriceRange.Min)
		if err != nil {
			return preferencesDocument{}, err
		}
		hi, err := toDecimal128(p.PriceRange.Max)
		if err != nil {
			return preferencesDocument{}, err
		}
		doc.PriceRange = &priceRangeDocument{Min: lo, Max: hi}
	}
	return doc, nil
}

func toUserDocument(u domain.User) (userDocument, error) {
	prefs, err := toPreferencesDocument(u.Preferences)
	if err != nil {
		return userDocument{}, err
	}
	wishlist := u.Wishlist
	if wishlist == nil {
		wishlist = []int64{}
	}
	return userDocument{
		ID:          u.ID,
		Name:        u.Name,
		Preferences: prefs,
		Wishlist:    wishlist,
	}, nil
}

func (d userDocument) toDomain() (*domain.User, error) {
	user := &domain.User{
		ID:   d.ID,
		Name: d.Name,
		Preferences: domain.Preferences{
			Style:         d.Preferences.Style,
			EcoPreference: domain.EcoPreference(d.Preferences.EcoPreference),
		},
		Wishlist: d.Wishlist,
	}
	if r := d.Preferences.PriceRange; r != nil {
		lo, err := fromDecimal128(r.Min)
		if err != nil {
			return nil, err
		}
		hi, err := fromDecimal128(r.Max)
		if err != nil {
			return nil, err
		}
		user.Preferences.PriceRange = &domain.PriceRange{Min: lo, Max: hi}
	}
	return user, nil
}
