package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/trendmart/storefront-client/internal/api/middleware"
	"github.com/trendmart/storefront-client/internal/dispatch"
	appErrors "github.com/trendmart/storefront-client/internal/errors"
	"github.com/trendmart/storefront-client/internal/models"
	"github.com/trendmart/storefront-client/internal/query"
	"github.com/trendmart/storefront-client/internal/store"
	"github.com/trendmart/storefront-client/internal/utils"
	"github.com/trendmart/storefront-client/internal/utils/response"
)

// cartView is the render-ready cart: items in display order plus the derived
// totals.
type cartView struct {
	Items         []models.CartItem `json:"items"`
	TotalQuantity int               `json:"total_quantity"`
	DistinctCount int               `json:"distinct_count"`
	TotalAmount   float64           `json:"total_amount"`
}

func newCartView(cart models.Cart) cartView {
	return cartView{
		Items:         cart.SortedItems(),
		TotalQuantity: cart.TotalQuantity,
		DistinctCount: cart.DistinctCount,
		TotalAmount:   cart.TotalAmount,
	}
}

// actionResult pairs the action's toast with the state the UI re-renders
// from.
type actionResult struct {
	Toast models.Toast `json:"toast"`
	Cart  cartView     `json:"cart"`
}

type CartHandler struct {
	sessions   *store.Manager
	dispatcher *dispatch.Dispatcher
	pages      *query.Registry[models.CartItem]
	validator  *validator.Validate
}

func NewCartHandler(sessions *store.Manager, dispatcher *dispatch.Dispatcher, pages *query.Registry[models.CartItem]) *CartHandler {
	return &CartHandler{
		sessions:   sessions,
		dispatcher: dispatcher,
		pages:      pages,
		validator:  validator.New(),
	}
}

// GetCart returns the locally reconciled cart without touching the backend.
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, appErrors.UnauthenticatedError("Authentication required"))

			return
		}

		sess := h.sessions.Get(claims.UserID)

		response.Success(w, http.StatusOK, newCartView(sess.Cart()))
	}
}

// RefreshCart performs a full sync: drains the backend's cart pages through
// the query layer and replaces the local collection wholesale.
func (h *CartHandler) RefreshCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, appErrors.UnauthenticatedError("Authentication required"))

			return
		}

		pages := h.pages.For(claims.UserID)

		// An explicit refetch must not serve a stale first page; later
		// cursors chain from the fresh one.
		if err := pages.Invalidate(r.Context(), ""); err != nil {
			logger.Warn("Could not invalidate cart page cache", "error", err.Error())
		}

		items, err := pages.FetchAll(r.Context(), 0)
		if err != nil {
			logger.Error("Cart refresh failed", "error", err.Error())
			response.Error(w, err)

			return
		}

		sess := h.sessions.Get(claims.UserID)
		sess.SetCartItems(items)

		response.Success(w, http.StatusOK, newCartView(sess.Cart()))
	}
}

// AddItem dispatches "add N units of a product" and responds with the toast
// plus the reconciled cart.
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, appErrors.UnauthenticatedError("Authentication required"))

			return
		}

		var req models.AddCartItemRequest
		if err := utils.DecodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !utils.ValidateStruct(w, h.validator, req) {
			return
		}

		sess := h.sessions.Get(claims.UserID)
		token := middleware.TokenFromContext(r.Context())
		lang := r.URL.Query().Get("lang")

		toast, err := h.dispatcher.AddCartItem(r.Context(), sess, token, req.ProductID, req.Quantity, lang)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, actionResult{Toast: toast, Cart: newCartView(sess.Cart())})
	}
}

// RemoveItem dispatches "remove N units of a product".
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, appErrors.UnauthenticatedError("Authentication required"))

			return
		}

		var req models.RemoveCartItemRequest
		if err := utils.DecodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !utils.ValidateStruct(w, h.validator, req) {
			return
		}

		sess := h.sessions.Get(claims.UserID)
		token := middleware.TokenFromContext(r.Context())
		lang := r.URL.Query().Get("lang")

		toast, err := h.dispatcher.RemoveCartItem(r.Context(), sess, token, req.ProductID, req.Quantity, lang)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, actionResult{Toast: toast, Cart: newCartView(sess.Cart())})
	}
}

// DecrementItem removes one unit of a product, never dispatching below
// quantity 1.
func (h *CartHandler) DecrementItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, appErrors.UnauthenticatedError("Authentication required"))

			return
		}

		productID := r.PathValue("id")
		if productID == "" {
			response.Error(w, appErrors.BadRequestError("Product ID is required"))

			return
		}

		sess := h.sessions.Get(claims.UserID)
		token := middleware.TokenFromContext(r.Context())
		lang := r.URL.Query().Get("lang")

		toast, err := h.dispatcher.DecrementQuantity(r.Context(), sess, token, productID, lang)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, actionResult{Toast: toast, Cart: newCartView(sess.Cart())})
	}
}
