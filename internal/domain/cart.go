package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	UserID     string          `json:"user_id"`
	Items      []CartItem      `json:"items"`
	Discount   decimal.Decimal `json:"discount"`
	CouponCode string          `json:"coupon_code,omitempty"`
	Version    int64           `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type CartItem struct {
	ID              string          `json:"id"`
	ProductID       int64           `json:"product_id"`
	Quantity        int             `json:"quantity"`
	PriceAtAddition decimal.Decimal `json:"price_at_addition"`
	AddedAt         time.Time       `json:"added_at"`
}

// MaxQuantity caps a single line, including quantity accumulated by repeated adds.
const MaxQuantity = 99

// ValidQuantity reports whether q is an allowed line quantity.
func ValidQuantity(q int) bool {
	return q > 0 && q <= MaxQuantity
}

func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}

// FindByProduct returns the index of the line holding productID, or -1.
func (c *Cart) FindByProduct(productID int64) int {
	return slices.IndexFunc(c.Items, func(it CartItem) bool { return it.ProductID == productID })
}

// FindItem returns the index of the line with the given item id, or -1.
func (c *Cart) FindItem(itemID string) int {
	return slices.IndexFunc(c.Items, func(it CartItem) bool { return it.ID == itemID })
}

func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Items = slices.Clone(c.Items)
	if cp.Items == nil {
		cp.Items = []CartItem{}
	}
	return &cp
}

// ProductSummary is the display projection attached to each line of a CartView.
type ProductSummary struct {
	ID    int64
	Name  string
	Price decimal.Decimal
	Image string
}

type CartViewItem struct {
	CartItem
	// Product is nil when the line's product is no longer in the catalog.
	Product *ProductSummary
}

type CartView struct {
	Items    []CartViewItem
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

func EmptyCartView() CartView {
	return CartView{
		Items:    []CartViewItem{},
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Total:    decimal.Zero,
	}
}
