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

type wishlistView struct {
	Items      []models.WishlistItem `json:"items"`
	Count      int                   `json:"count"`
	BadgeCount int                   `json:"badge_count"`
}

func newWishlistView(wishlist models.Wishlist) wishlistView {
	return wishlistView{
		Items:      wishlist.SortedItems(),
		Count:      wishlist.Count,
		BadgeCount: wishlist.BadgeCount,
	}
}

type wishlistActionResult struct {
	Toast    models.Toast `json:"toast"`
	Wishlist wishlistView `json:"wishlist"`
}

// addWishlistItemRequest carries the product snapshot the browsing UI already
// holds, so the local set can store it without a catalog round trip.
type addWishlistItemRequest struct {
	ProductID    string               `json:"productId" validate:"required"`
	Name         models.LocalizedName `json:"name"`
	UnitPrice    float64              `json:"unitPrice" validate:"min=0"`
	DiscountRate float64              `json:"discountRate" validate:"min=0,max=100"`
	Currency     string               `json:"currency"`
	Rating       float64              `json:"rating"`
	ImageURL     string               `json:"imageUrl"`
}

type WishlistHandler struct {
	sessions   *store.Manager
	dispatcher *dispatch.Dispatcher
	pages      *query.Registry[models.WishlistItem]
	validator  *validator.Validate
}

func NewWishlistHandler(sessions *store.Manager, dispatcher *dispatch.Dispatcher, pages *query.Registry[models.WishlistItem]) *WishlistHandler {
	return &WishlistHandler{
		sessions:   sessions,
		dispatcher: dispatcher,
		pages:      pages,
		validator:  validator.New(),
	}
}

func (h *WishlistHandler) GetWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, appErrors.UnauthenticatedError("Authentication required"))

			return
		}

		sess := h.sessions.Get(claims.UserID)

		response.Success(w, http.StatusOK, newWishlistView(sess.Wishlist()))
	}
}

func (h *WishlistHandler) RefreshWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, appErrors.UnauthenticatedError("Authentication required"))

			return
		}

		pages := h.pages.For(claims.UserID)

		if err := pages.Invalidate(r.Context(), ""); err != nil {
			logger.Warn("Could not invalidate wishlist page cache", "error", err.Error())
		}

		items, err := pages.FetchAll(r.Context(), 0)
		if err != nil {
			logger.Error("Wishlist refresh failed", "error", err.Error())
			response.Error(w, err)

			return
		}

		sess := h.sessions.Get(claims.UserID)
		sess.SetWishlistItems(items)

		response.Success(w, http.StatusOK, newWishlistView(sess.Wishlist()))
	}
}

// GetCount serves the header badge. The first call per session hydrates the
// counter from the backend snapshot; afterwards it is derived locally.
func (h *WishlistHandler) GetCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, appErrors.UnauthenticatedError("Authentication required"))

			return
		}

		sess := h.sessions.Get(claims.UserID)
		token := middleware.TokenFromContext(r.Context())

		if !sess.Wishlist().Hydrated {
			if err := h.dispatcher.HydrateWishlistCount(r.Context(), sess, token); err != nil {
				// The badge falls back to the locally derived count.
				logger.Warn("Badge hydration failed", "error", err.Error())
			}
		}

		wishlist := sess.Wishlist()

		response.Success(w, http.StatusOK, map[string]int{"count": wishlist.BadgeCount})
	}
}

func (h *WishlistHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, appErrors.UnauthenticatedError("Authentication required"))

			return
		}

		var req addWishlistItemRequest
		if err := utils.DecodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !utils.ValidateStruct(w, h.validator, req) {
			return
		}

		product := models.Product{
			ID:           req.ProductID,
			Name:         req.Name,
			UnitPrice:    req.UnitPrice,
			DiscountRate: req.DiscountRate,
			Currency:     req.Currency,
			Rating:       req.Rating,
			ImageURL:     req.ImageURL,
		}

		sess := h.sessions.Get(claims.UserID)
		token := middleware.TokenFromContext(r.Context())
		lang := r.URL.Query().Get("lang")

		toast, err := h.dispatcher.AddWishlistItem(r.Context(), sess, token, product, lang)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, wishlistActionResult{Toast: toast, Wishlist: newWishlistView(sess.Wishlist())})
	}
}

func (h *WishlistHandler) RemoveItem() http.HandlerFunc {
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

		toast, err := h.dispatcher.RemoveWishlistItem(r.Context(), sess, token, productID, lang)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, wishlistActionResult{Toast: toast, Wishlist: newWishlistView(sess.Wishlist())})
	}
}

// MoveToCart removes the product from the wishlist; the cart picks it up on
// its next sync.
func (h *WishlistHandler) MoveToCart() http.HandlerFunc {
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

		toast, err := h.dispatcher.MoveWishlistItemToCart(r.Context(), sess, token, productID, lang)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, wishlistActionResult{Toast: toast, Wishlist: newWishlistView(sess.Wishlist())})
	}
}
