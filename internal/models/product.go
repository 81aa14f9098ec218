package models

type Product struct {
	ID           string        `json:"id"`
	Name         LocalizedName `json:"name"`
	Description  LocalizedName `json:"description"`
	UnitPrice    float64       `json:"unit_price"`
	DiscountRate float64       `json:"discount_rate"`
	Currency     string        `json:"currency"`
	Rating       float64       `json:"rating"`
	ImageURL     string        `json:"image_url"`
	InStock      bool          `json:"in_stock"`
}

// WishlistSnapshot maps a browsed product into the snapshot a wishlist entry
// carries.
func (p Product) WishlistSnapshot() WishlistItem {
	return WishlistItem{
		ProductID:    p.ID,
		Name:         p.Name,
		UnitPrice:    p.UnitPrice,
		DiscountRate: p.DiscountRate,
		Currency:     p.Currency,
		Rating:       p.Rating,
		ImageURL:     p.ImageURL,
	}
}
