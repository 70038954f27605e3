package http

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/service"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	EcoScore      float64  `json:"ecoScore"`
}

func toProductDTO(p domain.Product) ProductDTO {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Brand:         p.Brand,
		Description:   p.Description,
		Price:         p.Price.InexactFloat64(),
		OriginalPrice: p.OriginalPrice.InexactFloat64(),
		Image:         p.Image,
		Category:      p.Category,
		Tags:          tags,
		EcoScore:      p.EcoScore,
	}
}

func toProductDTOs(products []domain.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	return out
}

type ProductSummaryDTO struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

type CartItemDTO struct {
	ID              string             `json:"id"`
	ProductID       int64              `json:"productId"`
	Quantity        int                `json:"quantity"`
	PriceAtAddition float64            `json:"priceAtAddition"`
	AddedAt         time.Time          `json:"addedAt"`
	Product         *ProductSummaryDTO `json:"product"`
}

type CartViewDTO struct {
	Items    []CartItemDTO `json:"items"`
	Subtotal float64       `json:"subtotal"`
	Discount float64       `json:"discount"`
	Total    float64       `json:"total"`
}

func toCartViewDTO(v domain.CartView) CartViewDTO {
	dto := CartViewDTO{
		Items:    make([]CartItemDTO, 0, len(v.Items)),
		Subtotal: v.Subtotal.InexactFloat64(),
		Discount: v.Discount.InexactFloat64(),
		Total:    v.Total.InexactFloat64(),
	}
	for _, it := range v.Items {
		item := CartItemDTO{
			ID:              it.ID,
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			PriceAtAddition: it.PriceAtAddition.InexactFloat64(),
			AddedAt:         it.AddedAt,
		}
		if p := it.Product; p != nil {
			item.Product = &ProductSummaryDTO{ID: p.ID, Name: p.Name, Price: p.Price.InexactFloat64(), Image: p.Image}
		}
		dto.Items = append(dto.Items, item)
	}
	return dto
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	// Quantity is optional and defaults to one.
	Quantity *int `json:"quantity" validate:"omitempty,gt=0,lte=99"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity" validate:"gt=0,lte=99"`
}

type PreferencesDTO struct {
	Style         string    `json:"style" validate:"max=64"`
	PriceRange    []float64 `json:"priceRange,omitempty" validate:"omitempty,len=2,dive,gte=0"`
	EcoPreference string    `json:"ecoPreference" validate:"omitempty,oneof=low medium high"`
}

func (p PreferencesDTO) toDomain() domain.Preferences {
	prefs := domain.Preferences{
		Style:         p.Style,
		EcoPreference: domain.EcoPreference(p.EcoPreference),
	}
	if len(p.PriceRange) == 2 {
		prefs.PriceRange = &domain.PriceRange{
			Min: decimal.NewFromFloat(p.PriceRange[0]),
			Max: decimal.NewFromFloat(p.PriceRange[1]),
		}
	}
	return prefs
}

func toPreferencesDTO(p domain.Preferences) PreferencesDTO {
	dto := PreferencesDTO{Style: p.Style, EcoPreference: string(p.EcoPreference)}
	if r := p.PriceRange; r != nil {
		dto.PriceRange = []float64{r.Min.InexactFloat64(), r.Max.InexactFloat64()}
	}
	return dto
}

type UserDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Preferences PreferencesDTO `json:"preferences"`
	Wishlist    []int64        `json:"wishlist"`
}

func toUserDTO(u *domain.User) UserDTO {
	wishlist := u.Wishlist
	if wishlist == nil {
		wishlist = []int64{}
	}
	return UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Preferences: toPreferencesDTO(u.Preferences),
		Wishlist:    wishlist,
	}
}

type ClassifyRequestDTO struct {
	// Text is accepted for compatibility and not used for scoring.
	Text       string   `json:"text"`
	Categories []string `json:"categories" validate:"required,min=1,dive,required"`
}

type ClassifyResponseDTO struct {
	Results []ClassificationDTO `json:"results"`
}

type ClassificationDTO struct {
	Product string       `json:"product"`
	Scores  scoreMapJSON `json:"scores"`
}

// scoreMapJSON encodes as a JSON object whose keys keep slice order.
type scoreMapJSON []service.CategoryScore

func (s scoreMapJSON) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sc := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sc.Category)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(sc.Score)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func toClassifyResponseDTO(results []service.Classification) ClassifyResponseDTO {
	dto := ClassifyResponseDTO{Results: make([]ClassificationDTO, 0, len(results))}
	for _, r := range results {
		dto.Results = append(dto.Results, ClassificationDTO{Product: r.Product, Scores: scoreMapJSON(r.Scores)})
	}
	return dto
}

type AssistantRequestDTO struct {
	Message string `json:"message" validate:"max=4000"`
}

type AssistantResponseDTO struct {
	Response string `json:"response"`
}
