package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trendmart/storefront-client/internal/models"
	"github.com/trendmart/storefront-client/internal/store"
)

func cartItem(productID string, quantity int, unitPrice float64) models.CartItem {
	return models.CartItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Currency:  "USD",
		Name:      models.LocalizedName{En: productID},
	}
}

func TestSetCartItems(t *testing.T) {
	t.Run("Success - Full List Replaces Local State", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")
		sess.SetCartItems([]models.CartItem{cartItem("A", 2, 10)})

		// Act
		sess.SetCartItems([]models.CartItem{
			cartItem("B", 1, 5),
			cartItem("C", 3, 2),
		})

		// Assert
		cart := sess.Cart()
		assert.Len(t, cart.Items, 2)
		assert.NotContains(t, cart.Items, "A")
		assert.Equal(t, 4, cart.TotalQuantity)
		assert.Equal(t, 2, cart.DistinctCount)
		assert.InDelta(t, 11.0, cart.TotalAmount, 1e-9)
	})

	t.Run("Success - Empty Input Yields Empty Cart", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")
		sess.SetCartItems([]models.CartItem{cartItem("A", 2, 10)})

		// Act
		sess.SetCartItems(nil)

		// Assert
		cart := sess.Cart()
		assert.Empty(t, cart.Items)
		assert.Zero(t, cart.TotalQuantity)
		assert.Zero(t, cart.TotalAmount)
	})

	t.Run("Invariant - Zero Quantity Items Never Retained", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")

		// Act
		sess.SetCartItems([]models.CartItem{
			cartItem("A", 0, 10),
			cartItem("B", 1, 10),
		})

		// Assert
		cart := sess.Cart()
		assert.Len(t, cart.Items, 1)
		assert.NotContains(t, cart.Items, "A")
	})
}

func TestReconcileCart(t *testing.T) {
	t.Run("Drop Rule - Absent Items Dropped And Quantities Overwritten", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")
		sess.SetCartItems([]models.CartItem{
			cartItem("A", 2, 10),
			cartItem("B", 1, 7),
		})

		// Act
		sess.ReconcileCart([]models.CartItem{cartItem("A", 3, 10)})

		// Assert
		cart := sess.Cart()
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, 3, cart.Items["A"].Quantity)
		assert.NotContains(t, cart.Items, "B")

		// The total must lose B's contribution entirely.
		assert.InDelta(t, 30.0, cart.TotalAmount, 1e-9)
		assert.Equal(t, 3, cart.TotalQuantity)
		assert.Equal(t, 1, cart.DistinctCount)
	})

	t.Run("Drop Rule - Unseen Server Items Are Not Invented", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")
		sess.SetCartItems([]models.CartItem{cartItem("A", 1, 10)})

		// Act
		sess.ReconcileCart([]models.CartItem{
			cartItem("A", 1, 10),
			cartItem("Z", 5, 99),
		})

		// Assert
		cart := sess.Cart()
		assert.Len(t, cart.Items, 1)
		assert.NotContains(t, cart.Items, "Z")
	})

	t.Run("Empty Response Clears Cart", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")
		sess.SetCartItems([]models.CartItem{
			cartItem("A", 2, 10),
			cartItem("B", 1, 7),
		})

		// Act
		sess.ReconcileCart(nil)

		// Assert
		cart := sess.Cart()
		assert.Empty(t, cart.Items)
		assert.Zero(t, cart.TotalQuantity)
		assert.Zero(t, cart.DistinctCount)
		assert.Zero(t, cart.TotalAmount)
	})

	t.Run("Server Price Overwrites Local Price", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")
		sess.SetCartItems([]models.CartItem{cartItem("A", 2, 10)})

		// Act
		updated := cartItem("A", 2, 12.5)
		updated.DiscountRate = 20
		sess.ReconcileCart([]models.CartItem{updated})

		// Assert
		cart := sess.Cart()
		assert.InDelta(t, 12.5, cart.Items["A"].UnitPrice, 1e-9)
		assert.InDelta(t, 20.0, cart.Items["A"].DiscountRate, 1e-9)
		assert.InDelta(t, 25.0, cart.TotalAmount, 1e-9)
	})

	t.Run("Server Quantity Zero Removes The Item", func(t *testing.T) {
		// Arrange
		sess := store.NewSession("user-1")
		sess.SetCartItems([]models.CartItem{cartItem("A", 2, 10)})

		// Act
		sess.ReconcileCart([]models.CartItem{cartItem("A", 0, 10)})

		// Assert
		assert.Empty(t, sess.Cart().Items)
	})
}

func TestCartDerivedAttributes(t *testing.T) {
	t.Run("Discount Applies To Display Price Only", func(t *testing.T) {
		// Arrange
		item := cartItem("A", 2, 100)
		item.DiscountRate = 25

		sess := store.NewSession("user-1")
		sess.SetCartItems([]models.CartItem{item})

		// Assert
		cart := sess.Cart()
		assert.InDelta(t, 75.0, cart.Items["A"].DiscountedUnitPrice(), 1e-9)
		assert.InDelta(t, 200.0, cart.TotalAmount, 1e-9)
	})

	t.Run("CartQuantity Reports Zero For Absent Items", func(t *testing.T) {
		sess := store.NewSession("user-1")

		assert.Zero(t, sess.CartQuantity("missing"))
	})
}
