package models

import (
	"sort"
	"time"
)

// LocalizedName is the display-name pair the backend returns for every
// product. Which language the backend localizes messages in is selected by
// the lang field on mutating requests.
type LocalizedName struct {
	En string `json:"en"`
	Tr string `json:"tr"`
}

func (n LocalizedName) In(lang string) string {
	if lang == "tr" && n.Tr != "" {
		return n.Tr
	}

	return n.En
}

type CartItem struct {
	ProductID    string        `json:"product_id"`
	Quantity     int           `json:"quantity"`
	UnitPrice    float64       `json:"unit_price"`
	DiscountRate float64       `json:"discount_rate"`
	Currency     string        `json:"currency"`
	Name         LocalizedName `json:"name"`
	AddedAt      time.Time     `json:"added_at,omitzero"`
}

// DiscountedUnitPrice is the per-item display price. The discount rate is
// applied here only; aggregate totals sum the raw unit price (see
// Cart.Recompute).
func (i CartItem) DiscountedUnitPrice() float64 {
	return i.UnitPrice * (1 - i.DiscountRate/100)
}

func (i CartItem) LineTotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

type Cart struct {
	Items map[string]CartItem `json:"items"`

	// Derived from Items on every mutation, never written independently.
	TotalQuantity int     `json:"total_quantity"`
	DistinctCount int     `json:"distinct_count"`
	TotalAmount   float64 `json:"total_amount"`
}

func NewCart() *Cart {
	return &Cart{Items: make(map[string]CartItem)}
}

// Recompute rebuilds every derived attribute from the item collection. The
// total amount sums raw unit price x quantity; discount is a per-item display
// concern only.
func (c *Cart) Recompute() {
	c.TotalQuantity = 0
	c.DistinctCount = len(c.Items)
	c.TotalAmount = 0

	for _, item := range c.Items {
		c.TotalQuantity += item.Quantity
		c.TotalAmount += item.LineTotal()
	}
}

// SortedItems returns the items ordered by when they entered the cart, with
// product id as tiebreaker. Order matters only for display.
func (c *Cart) SortedItems() []CartItem {
	items := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].AddedAt.Equal(items[j].AddedAt) {
			return items[i].AddedAt.Before(items[j].AddedAt)
		}

		return items[i].ProductID < items[j].ProductID
	})

	return items
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
}

type RemoveCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
}
