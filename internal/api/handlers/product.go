package handlers

import (
	"net/http"

	"github.com/trendmart/storefront-client/internal/api/middleware"
	"github.com/trendmart/storefront-client/internal/models"
	"github.com/trendmart/storefront-client/internal/query"
	"github.com/trendmart/storefront-client/internal/utils/response"
)

type ProductHandler struct {
	pages *query.Paginator[models.Product]
}

func NewProductHandler(pages *query.Paginator[models.Product]) *ProductHandler {
	return &ProductHandler{pages: pages}
}

// ListProducts serves one catalog page per request; the front end's infinite
// scroll follows nextCursor.
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cursor := r.URL.Query().Get("cursor")

		page, err := h.pages.Page(r.Context(), cursor)
		if err != nil {
			logger.Error("Product page fetch failed", "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:       page.Items,
			NextCursor: page.NextCursor,
		})
	}
}
