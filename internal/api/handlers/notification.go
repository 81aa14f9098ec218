package handlers

import (
	"net/http"

	"github.com/trendmart/storefront-client/internal/api/middleware"
	appErrors "github.com/trendmart/storefront-client/internal/errors"
	"github.com/trendmart/storefront-client/internal/notify"
	"github.com/trendmart/storefront-client/internal/utils/response"
)

type NotificationHandler struct {
	notifier *notify.Notifier
}

func NewNotificationHandler(notifier *notify.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// ListNotifications returns the user's recent toasts, oldest first.
func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, appErrors.UnauthenticatedError("Authentication required"))

			return
		}

		response.Success(w, http.StatusOK, h.notifier.Recent(claims.UserID))
	}
}
