// Package dispatch wraps every mutating cart/wishlist action in the
// pending -> success/failure cycle the UI observes. Each action instance runs
// idle -> pending -> (success | failure) and is terminal; a new user action
// starts a new instance. Every dispatched action ends in exactly one toast.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"

	appErrors "github.com/trendmart/storefront-client/internal/errors"
	"github.com/trendmart/storefront-client/internal/metrics"
	"github.com/trendmart/storefront-client/internal/models"
	"github.com/trendmart/storefront-client/internal/notify"
	"github.com/trendmart/storefront-client/internal/store"
	"github.com/trendmart/storefront-client/pkg/shopapi"
)

const (
	loginRequiredMessage = "Please log in to continue"
	genericErrorMessage  = "Something went wrong. Please try again"
	rateLimitedMessage   = "Too many actions. Please slow down"
	inFlightMessage      = "This item is still being updated"
)

// CartAPI and WishlistAPI are the backend calls the dispatcher issues,
// satisfied by *shopapi.Client and mocked in tests.
type CartAPI interface {
	AddCartItem(ctx context.Context, token, productID string, quantity int, lang string) (*shopapi.CartResult, error)
	RemoveCartItem(ctx context.Context, token, productID string, quantity int, lang string) (*shopapi.CartResult, error)
}

type WishlistAPI interface {
	AddWishlistItem(ctx context.Context, token, productID, lang string) (*shopapi.WishlistResult, error)
	RemoveWishlistItem(ctx context.Context, token, productID, lang string) (*shopapi.WishlistResult, error)
	MoveWishlistItemToCart(ctx context.Context, token, productID, lang string) (*shopapi.WishlistResult, error)
	FetchWishlistCount(ctx context.Context, token string) (int, error)
}

// Limiter is the sliding-window action guard. A nil limiter disables the
// guard.
type Limiter interface {
	Allow(ctx context.Context, userID string) (bool, int64, int, error)
}

type Dispatcher struct {
	cartAPI     CartAPI
	wishlistAPI WishlistAPI
	notifier    *notify.Notifier
	limiter     Limiter
	jwtKey      []byte
	pending     *pendingSet
}

func New(cartAPI CartAPI, wishlistAPI WishlistAPI, notifier *notify.Notifier, limiter Limiter, jwtKey []byte) *Dispatcher {
	return &Dispatcher{
		cartAPI:     cartAPI,
		wishlistAPI: wishlistAPI,
		notifier:    notifier,
		limiter:     limiter,
		jwtKey:      jwtKey,
		pending:     newPendingSet(),
	}
}

// IsPending reports whether an action for this user's product is in flight,
// so the UI can disable only that item's control.
func (d *Dispatcher) IsPending(userID, productID string) bool {
	return d.pending.has(userID, productID)
}

// hasValidToken is the client-side guard: a missing, malformed or expired
// token short-circuits the action before any network traffic.
func (d *Dispatcher) hasValidToken(token string) bool {
	if token == "" {
		return false
	}

	claims := &models.Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}

		return d.jwtKey, nil
	})

	return err == nil && parsed.Valid
}

// guard runs the pre-dispatch checks shared by every mutating action. A
// non-nil error means the action was refused before entering pending; the
// matching toast has already been emitted.
func (d *Dispatcher) guard(ctx context.Context, userID, token, action string) error {

	if !d.hasValidToken(token) {
		d.notifier.Warning(userID, loginRequiredMessage)
		metrics.ObserveAction(action, metrics.OutcomeRefused)

		return appErrors.UnauthenticatedError(loginRequiredMessage)
	}

	if d.limiter != nil {

		allowed, _, retryAfter, err := d.limiter.Allow(ctx, userID)
		if err != nil {
			// A broken limiter must not block shopping.
			slog.Warn("Rate limiter unavailable", slog.String("error", err.Error()))
		} else if !allowed {
			d.notifier.Warning(userID, rateLimitedMessage)
			metrics.ObserveAction(action, metrics.OutcomeRefused)

			return appErrors.TooManyRequestsError(rateLimitedMessage).
				WithDetail(fmt.Sprintf("Retry after %d seconds", retryAfter))
		}
	}

	return nil
}

// finish converts an action outcome into its single visible toast.
func (d *Dispatcher) finish(userID, action, serverMessage string, err error) (models.Toast, error) {

	if err != nil {
		metrics.ObserveAction(action, metrics.OutcomeFailure)

		message := genericErrorMessage
		if appErr, ok := appErrors.IsAppError(err); ok && appErr.Message != "" {
			message = appErr.Message
		}

		return d.notifier.Error(userID, message), err
	}

	metrics.ObserveAction(action, metrics.OutcomeSuccess)

	if serverMessage == "" {
		serverMessage = "Done"
	}

	return d.notifier.Success(userID, serverMessage), nil
}

// AddCartItem dispatches "add N units of this product". On success the server
// response is reconciled into the session cart; on failure prior state is
// left untouched.
func (d *Dispatcher) AddCartItem(ctx context.Context, sess *store.Session, token, productID string, quantity int, lang string) (models.Toast, error) {

	const action = "cart_add"

	if err := d.guard(ctx, sess.UserID, token, action); err != nil {
		return models.Toast{}, err
	}

	if !d.pending.enter(sess.UserID, productID) {
		return models.Toast{}, appErrors.BadRequestError(inFlightMessage)
	}
	defer d.pending.exit(sess.UserID, productID)

	result, err := d.cartAPI.AddCartItem(ctx, token, productID, quantity, lang)
	if err != nil {
		return d.finish(sess.UserID, action, "", err)
	}

	sess.ReconcileCart(result.Items)

	return d.finish(sess.UserID, action, result.Message, nil)
}

// RemoveCartItem dispatches "remove N units of this product".
func (d *Dispatcher) RemoveCartItem(ctx context.Context, sess *store.Session, token, productID string, quantity int, lang string) (models.Toast, error) {

	const action = "cart_remove"

	if err := d.guard(ctx, sess.UserID, token, action); err != nil {
		return models.Toast{}, err
	}

	if !d.pending.enter(sess.UserID, productID) {
		return models.Toast{}, appErrors.BadRequestError(inFlightMessage)
	}
	defer d.pending.exit(sess.UserID, productID)

	result, err := d.cartAPI.RemoveCartItem(ctx, token, productID, quantity, lang)
	if err != nil {
		return d.finish(sess.UserID, action, "", err)
	}

	sess.ReconcileCart(result.Items)

	return d.finish(sess.UserID, action, result.Message, nil)
}

// IncrementQuantity adds one unit of an item already in the cart.
func (d *Dispatcher) IncrementQuantity(ctx context.Context, sess *store.Session, token, productID, lang string) (models.Toast, error) {
	return d.AddCartItem(ctx, sess, token, productID, 1, lang)
}

// DecrementQuantity removes one unit, refusing to drop below quantity 1. The
// refusal never dispatches and emits no toast: it mirrors the UI simply not
// offering the control at quantity 1.
func (d *Dispatcher) DecrementQuantity(ctx context.Context, sess *store.Session, token, productID, lang string) (models.Toast, error) {

	if sess.CartQuantity(productID) <= 1 {
		return models.Toast{}, appErrors.BadRequestError("Quantity cannot drop below 1")
	}

	return d.RemoveCartItem(ctx, sess, token, productID, 1, lang)
}

// AddWishlistItem dispatches a wishlist add and, on success, appends the
// product snapshot locally (idempotent by product id).
func (d *Dispatcher) AddWishlistItem(ctx context.Context, sess *store.Session, token string, product models.Product, lang string) (models.Toast, error) {

	const action = "wishlist_add"

	if err := d.guard(ctx, sess.UserID, token, action); err != nil {
		return models.Toast{}, err
	}

	if !d.pending.enter(sess.UserID, product.ID) {
		return models.Toast{}, appErrors.BadRequestError(inFlightMessage)
	}
	defer d.pending.exit(sess.UserID, product.ID)

	result, err := d.wishlistAPI.AddWishlistItem(ctx, token, product.ID, lang)
	if err != nil {
		return d.finish(sess.UserID, action, "", err)
	}

	sess.AddWishlistLocal(product.WishlistSnapshot())

	return d.finish(sess.UserID, action, result.Message, nil)
}

// RemoveWishlistItem dispatches a wishlist remove and filters the product out
// locally on success.
func (d *Dispatcher) RemoveWishlistItem(ctx context.Context, sess *store.Session, token, productID, lang string) (models.Toast, error) {

	const action = "wishlist_remove"

	if err := d.guard(ctx, sess.UserID, token, action); err != nil {
		return models.Toast{}, err
	}

	if !d.pending.enter(sess.UserID, productID) {
		return models.Toast{}, appErrors.BadRequestError(inFlightMessage)
	}
	defer d.pending.exit(sess.UserID, productID)

	result, err := d.wishlistAPI.RemoveWishlistItem(ctx, token, productID, lang)
	if err != nil {
		return d.finish(sess.UserID, action, "", err)
	}

	sess.RemoveWishlistLocal(productID)

	return d.finish(sess.UserID, action, result.Message, nil)
}

// MoveWishlistItemToCart models the server-atomic move as a single action
// with a single local removal; the cart side surfaces on its next sync.
func (d *Dispatcher) MoveWishlistItemToCart(ctx context.Context, sess *store.Session, token, productID, lang string) (models.Toast, error) {

	const action = "wishlist_move"

	if err := d.guard(ctx, sess.UserID, token, action); err != nil {
		return models.Toast{}, err
	}

	if !d.pending.enter(sess.UserID, productID) {
		return models.Toast{}, appErrors.BadRequestError(inFlightMessage)
	}
	defer d.pending.exit(sess.UserID, productID)

	result, err := d.wishlistAPI.MoveWishlistItemToCart(ctx, token, productID, lang)
	if err != nil {
		return d.finish(sess.UserID, action, "", err)
	}

	sess.MoveToCartLocal(productID)

	return d.finish(sess.UserID, action, result.Message, nil)
}

// HydrateWishlistCount fetches the badge counter snapshot and applies it to
// the session, where the one-shot guard lives. Not a mutating action: no
// pending state, no toast on failure beyond a log line.
func (d *Dispatcher) HydrateWishlistCount(ctx context.Context, sess *store.Session, token string) error {

	if !d.hasValidToken(token) {
		return appErrors.UnauthenticatedError(loginRequiredMessage)
	}

	count, err := d.wishlistAPI.FetchWishlistCount(ctx, token)
	if err != nil {
		slog.Warn("Wishlist count hydration failed", slog.String("error", err.Error()))

		return err
	}

	sess.HydrateWishlistCount(count)

	return nil
}
