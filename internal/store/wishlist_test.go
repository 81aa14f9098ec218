package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trendmart/storefront-client/internal/models"
	"github.com/trendmart/storefront-client/internal/store"
)

func wishlistItem(productID string, unitPrice float64) models.WishlistItem {
	return models.WishlistItem{
		ProductID: productID,
		UnitPrice: unitPrice,
		Currency:  "USD",
		Name:      models.LocalizedName{En: productID},
	}
}

func TestAddWishlistLocal(t *testing.T) {
	t.Run("Idempotence - Double Add Keeps One Entry", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")

		// Act
		sess.AddWishlistLocal(wishlistItem("P1", 20))
		sess.AddWishlistLocal(wishlistItem("P1", 20))

		// Assert
		wishlist := sess.Wishlist()
		assert.Len(t, wishlist.Items, 1)
		assert.Equal(t, 1, wishlist.Count)
		assert.Equal(t, 1, wishlist.BadgeCount)
	})

	t.Run("Re-Add Refreshes The Snapshot", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")
		sess.AddWishlistLocal(wishlistItem("P1", 20))

		// Act
		sess.AddWishlistLocal(wishlistItem("P1", 25))

		// Assert
		wishlist := sess.Wishlist()
		assert.Len(t, wishlist.Items, 1)
		assert.InDelta(t, 25.0, wishlist.Items["P1"].UnitPrice, 1e-9)
	})
}

func TestRemoveWishlistLocal(t *testing.T) {
	t.Run("End To End - Add, Remove, Remove Again", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")

		// Act & Assert
		sess.AddWishlistLocal(wishlistItem("P1", 20))
		assert.Equal(t, 1, sess.Wishlist().Count)

		sess.RemoveWishlistLocal("P1")
		assert.Zero(t, sess.Wishlist().Count)

		// Removing an absent id is a no-op, not an error.
		sess.RemoveWishlistLocal("P1")
		assert.Zero(t, sess.Wishlist().Count)
		assert.Empty(t, sess.Wishlist().Items)
	})
}

func TestMoveToCartLocal(t *testing.T) {
	t.Run("Removes From Wishlist Only", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")
		sess.AddWishlistLocal(wishlistItem("P1", 20))

		// Act
		sess.MoveToCartLocal("P1")

		// Assert: the cart side is populated by its own sync, never here.
		assert.Empty(t, sess.Wishlist().Items)
		assert.Empty(t, sess.Cart().Items)
	})
}

func TestHydrateWishlistCount(t *testing.T) {
	t.Run("Hydration Runs Once", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")

		// Act
		sess.HydrateWishlistCount(5)
		sess.HydrateWishlistCount(9)

		// Assert
		wishlist := sess.Wishlist()
		assert.True(t, wishlist.Hydrated)
		assert.Equal(t, 5, wishlist.BadgeCount)
	})

	t.Run("Badge Tracks Local Deltas After Hydration", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")
		sess.HydrateWishlistCount(5)

		// Act
		sess.AddWishlistLocal(wishlistItem("P1", 20))
		sess.RemoveWishlistLocal("P1")
		sess.RemoveWishlistLocal("P1")

		// Assert
		assert.Equal(t, 5, sess.Wishlist().BadgeCount)
	})
}

func TestSetWishlistItems(t *testing.T) {
	t.Run("Full Sync Replaces The Set", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")
		sess.AddWishlistLocal(wishlistItem("P1", 20))

		// Act
		sess.SetWishlistItems([]models.WishlistItem{
			wishlistItem("P2", 10),
			wishlistItem("P3", 30),
		})

		// Assert
		wishlist := sess.Wishlist()
		assert.Len(t, wishlist.Items, 2)
		assert.NotContains(t, wishlist.Items, "P1")
		assert.Equal(t, 2, wishlist.Count)
	})
}
