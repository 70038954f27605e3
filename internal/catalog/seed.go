package catalog

import (
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// SeedProducts is the sample catalog loaded at startup. The SQLite migrations
// insert the same rows.
func SeedProducts() []domain.Product {
	return []domain.Product{
		seed(1, "Wireless Noise-Cancelling Headphones", "SoundMaster", "299", "349", "headphones.jpg", "electronics", 4.2, "audio", "wireless", "premium"),
		seed(2, `Ultra HD Smart TV 55"`, "VisionPlus", "799", "899", "tv.jpg", "electronics", 3.8, "home", "entertainment"),
		seed(3, "Ergonomic Office Chair", "ComfortPro", "249", "299", "chair.jpg", "furniture", 7.1, "office", "comfort"),
		seed(4, "Smartphone Pro Max", "FruitPhone", "1099", "1199", "phone.jpg", "electronics", 5.5, "mobile", "premium"),
		seed(5, "Bamboo Toothbrush Set", "EcoLife", "12.99", "15.99", "toothbrush.jpg", "personal-care", 9.8, "eco", "sustainable"),
		seed(6, "Recycled Laptop Backpack", "GreenGear", "59.99", "69.99", "backpack.jpg", "accessories", 8.7, "eco", "travel"),
		seed(7, "Solar Powered Charger", "SunPower", "39.99", "49.99", "charger.jpg", "electronics", 9.2, "eco", "outdoor"),
		seed(8, "Organic Cotton T-Shirt", "PureWear", "24.99", "29.99", "tshirt.jpg", "clothing", 8.4, "eco", "fashion"),
	}
}

func seed(id int64, name, brand, price, original, image, category string, eco float64, tags ...string) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          name,
		Brand:         brand,
		Price:         decimal.RequireFromString(price),
		OriginalPrice: decimal.RequireFromString(original),
		Image:         image,
		Category:      category,
		Tags:          tags,
		EcoScore:      eco,
	}
}
