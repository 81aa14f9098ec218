package store

import (
	"github.com/trendmart/storefront-client/internal/models"
)

// SetWishlistItems replaces the local set wholesale with a freshly paginated
// fetch, the wishlist counterpart of SetCartItems.
func (s *Session) SetWishlistItems(serverItems []models.WishlistItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()

	items := make(map[string]models.WishlistItem, len(serverItems))
	for _, item := range serverItems {
		items[item.ProductID] = item
	}

	s.wishlist.Items = items
	s.wishlist.Recompute()
}

// AddWishlistLocal appends the product snapshot once the add mutation
// succeeded. Idempotent by product id: adding an id already present leaves
// exactly one entry and does not bump the badge twice.
func (s *Session) AddWishlistLocal(item models.WishlistItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()

	if _, exists := s.wishlist.Items[item.ProductID]; exists {
		s.wishlist.Items[item.ProductID] = item

		return
	}

	s.wishlist.Items[item.ProductID] = item
	s.wishlist.BadgeCount++
	s.wishlist.Recompute()
}

// RemoveWishlistLocal filters the product out of the local set. Idempotent if
// already absent.
func (s *Session) RemoveWishlistLocal(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()

	if _, exists := s.wishlist.Items[productID]; !exists {
		return
	}

	delete(s.wishlist.Items, productID)

	if s.wishlist.BadgeCount > 0 {
		s.wishlist.BadgeCount--
	}

	s.wishlist.Recompute()
}

// MoveToCartLocal removes the product from the local wishlist only. The cart
// side is populated by its own reconciliation once the cart is next synced;
// the server performed the move atomically.
func (s *Session) MoveToCartLocal(productID string) {
	s.RemoveWishlistLocal(productID)
}

// HydrateWishlistCount initializes the badge counter from a server snapshot
// exactly once per session. Later calls are no-ops even when the snapshot
// differs, so a stale second hydration can never overwrite locally tracked
// state.
func (s *Session) HydrateWishlistCount(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()

	if s.wishlist.Hydrated {
		return
	}

	s.wishlist.BadgeCount = count
	s.wishlist.Hydrated = true
}
