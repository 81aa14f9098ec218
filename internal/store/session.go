// Package store owns the per-user client state: the cart and wishlist
// aggregates reconciled against the shop backend. The backend is always
// authoritative; this state is a session-scoped mirror, never a source of
// truth. All writes go through the enumerated entry points below; there is
// no ad hoc external mutation.
package store

import (
	"sync"
	"time"

	"github.com/trendmart/storefront-client/internal/models"
)

// Session holds one user's reconciled state. Handlers read snapshots; the
// dispatcher writes through the reconciliation entry points. Whole-aggregate
// recompute inside the lock means racing mutations resolve last-writer-wins,
// which is acceptable because the backend remains authoritative on the next
// full sync.
type Session struct {
	UserID string

	mu       sync.RWMutex
	cart     *models.Cart
	wishlist *models.Wishlist
	lastSeen time.Time
}

func NewSession(userID string) *Session {
	return &Session{
		UserID:   userID,
		cart:     models.NewCart(),
		wishlist: models.NewWishlist(),
		lastSeen: time.Now(),
	}
}

func (s *Session) touch() {
	s.lastSeen = time.Now()
}

// Cart returns a copy of the cart aggregate safe to hand to a renderer.
func (s *Session) Cart() models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := models.Cart{
		Items:         make(map[string]models.CartItem, len(s.cart.Items)),
		TotalQuantity: s.cart.TotalQuantity,
		DistinctCount: s.cart.DistinctCount,
		TotalAmount:   s.cart.TotalAmount,
	}

	for id, item := range s.cart.Items {
		snapshot.Items[id] = item
	}

	return snapshot
}

// Wishlist returns a copy of the wishlist aggregate.
func (s *Session) Wishlist() models.Wishlist {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := models.Wishlist{
		Items:      make(map[string]models.WishlistItem, len(s.wishlist.Items)),
		Count:      s.wishlist.Count,
		BadgeCount: s.wishlist.BadgeCount,
		Hydrated:   s.wishlist.Hydrated,
	}

	for id, item := range s.wishlist.Items {
		snapshot.Items[id] = item
	}

	return snapshot
}

// CartQuantity reports the locally held quantity for a product id, zero when
// absent. The dispatcher uses it for the decrement floor.
func (s *Session) CartQuantity(productID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cart.Items[productID].Quantity
}

func (s *Session) HasWishlistItem(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.wishlist.Items[productID]

	return ok
}
