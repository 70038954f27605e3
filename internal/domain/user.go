package domain

import "github.com/shopspring/decimal"

type EcoPreference string

const (
	EcoLow    EcoPreference = "low"
	EcoMedium EcoPreference = "medium"
	EcoHigh   EcoPreference = "high"
)

// MinEcoScore returns the ecoScore floor implied by the preference and whether
// one applies at all. Low, unset and unknown values do not filter.
func (e EcoPreference) MinEcoScore() (float64, bool) {
	switch e {
	case EcoHigh:
		return 8, true
	case EcoMedium:
		return 5, true
	default:
		return 0, false
	}
}

// PriceRange is an inclusive [Min, Max] price window.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

type Preferences struct {
	// Style is stored and returned but not used for ranking.
	Style         string
	PriceRange    *PriceRange
	EcoPreference EcoPreference
}

func (p Preferences) Validate() error {
	if r := p.PriceRange; r != nil {
		if r.Min.IsNegative() || r.Min.GreaterThan(r.Max) {
			return ErrInvalidPriceRange
		}
	}
	switch p.EcoPreference {
	case "", EcoLow, EcoMedium, EcoHigh:
		return nil
	default:
		return ErrInvalidEcoPref
	}
}

type User struct {
	ID          string
	Name        string
	Preferences Preferences
	Wishlist    []int64
}
