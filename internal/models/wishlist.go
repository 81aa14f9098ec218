package models

import "sort"

// WishlistItem carries the full product snapshot. Unlike cart items there is
// no quantity: the wishlist has set semantics, a product id appears at most
// once.
type WishlistItem struct {
	ProductID    string        `json:"product_id"`
	Name         LocalizedName `json:"name"`
	UnitPrice    float64       `json:"unit_price"`
	DiscountRate float64       `json:"discount_rate"`
	Currency     string        `json:"currency"`
	Rating       float64       `json:"rating"`
	ImageURL     string        `json:"image_url"`
}

type Wishlist struct {
	Items map[string]WishlistItem `json:"items"`

	// Count is derived from Items. BadgeCount is the header-badge counter:
	// hydrated once per session from a server snapshot, then adjusted by
	// local add/remove deltas. Hydrated guards against a second, possibly
	// stale, hydration overwriting it.
	Count      int  `json:"count"`
	BadgeCount int  `json:"badge_count"`
	Hydrated   bool `json:"hydrated"`
}

func NewWishlist() *Wishlist {
	return &Wishlist{Items: make(map[string]WishlistItem)}
}

func (w *Wishlist) Recompute() {
	w.Count = len(w.Items)
}

func (w *Wishlist) SortedItems() []WishlistItem {
	items := make([]WishlistItem, 0, len(w.Items))
	for _, item := range w.Items {
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})

	return items
}

type AddWishlistItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}
