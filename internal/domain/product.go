package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int64
	Name          string
	Brand         string
	Description   string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Image         string
	Category      string
	Tags          []string
	EcoScore      float64
}

// HasTag reports whether tag is one of the product's tags (exact match).
func (p Product) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	p.Tags = slices.Clone(p.Tags)
	return p
}

// ProductFilter narrows a catalog listing. Zero-valued fields do not filter.
type ProductFilter struct {
	Category string
	Tag      string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Matches reports whether p satisfies every criterion set on f.
func (f ProductFilter) Matches(p Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Tag != "" && !p.HasTag(f.Tag) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}
