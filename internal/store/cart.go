package store

import (
	"time"

	"github.com/trendmart/storefront-client/internal/models"
)

// SetCartItems replaces the local collection wholesale with a freshly
// paginated fetch. Used on mount and explicit refresh; an empty input yields
// an empty cart. This is the only operation through which items never seen
// locally can enter the cart.
func (s *Session) SetCartItems(serverItems []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()

	now := time.Now()
	items := make(map[string]models.CartItem, len(serverItems))

	for _, item := range serverItems {
		if item.Quantity < 1 {
			continue
		}

		if item.AddedAt.IsZero() {
			item.AddedAt = now
		}

		items[item.ProductID] = item
	}

	s.cart.Items = items
	s.cart.Recompute()
}

// ReconcileCart merges the authoritative item list returned by a single
// add/remove call into the local collection:
//
//   - locally held items whose product id appears in the response are kept,
//     with quantity, price and discount overwritten by the server's values;
//   - locally held items absent from the response are dropped (the server is
//     authoritative for membership);
//   - ids in the response that were never seen locally are not added; full
//     sync happens only through SetCartItems.
//
// An empty response therefore clears the cart and zeroes every derived total.
// The function is total: any input is valid and no error is possible.
func (s *Session) ReconcileCart(serverItems []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()

	serverByID := make(map[string]models.CartItem, len(serverItems))
	for _, item := range serverItems {
		serverByID[item.ProductID] = item
	}

	reconciled := make(map[string]models.CartItem, len(s.cart.Items))

	for id, local := range s.cart.Items {
		server, confirmed := serverByID[id]
		if !confirmed || server.Quantity < 1 {
			continue
		}

		local.Quantity = server.Quantity
		local.UnitPrice = server.UnitPrice
		local.DiscountRate = server.DiscountRate
		local.Currency = server.Currency
		reconciled[id] = local
	}

	s.cart.Items = reconciled
	s.cart.Recompute()
}
