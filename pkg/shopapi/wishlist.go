package shopapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/trendmart/storefront-client/internal/models"
)

type wishlistData struct {
	Items []models.WishlistItem `json:"items"`
}

type wishlistMutationResponse struct {
	IsSuccess bool         `json:"isSuccess"`
	Message   string       `json:"message"`
	Data      wishlistData `json:"data"`
}

type wishlistPageResponse struct {
	IsSuccess  bool                  `json:"isSuccess"`
	Message    string                `json:"message"`
	Data       []models.WishlistItem `json:"data"`
	NextCursor string                `json:"nextCursor"`
}

type wishlistCountResponse struct {
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
	Data      struct {
		Count int `json:"count"`
	} `json:"data"`
}

// WishlistResult is the authoritative outcome of one wishlist mutation.
type WishlistResult struct {
	Message string
	Items   []models.WishlistItem
}

type wishlistItemBody struct {
	ProductID string `json:"productId"`
	Lang      string `json:"lang"`
}

func (c *Client) FetchWishlistPage(ctx context.Context, token, cursor string) (models.Page[models.WishlistItem], error) {

	query := url.Values{}
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var resp wishlistPageResponse
	if err := c.call(ctx, http.MethodGet, "/wishlist", token, query, nil, &resp); err != nil {
		return models.Page[models.WishlistItem]{}, err
	}

	return models.Page[models.WishlistItem]{Items: resp.Data, NextCursor: resp.NextCursor}, nil
}

// FetchWishlistCount retrieves the counter snapshot used for one-shot badge
// hydration.
func (c *Client) FetchWishlistCount(ctx context.Context, token string) (int, error) {

	var resp wishlistCountResponse
	if err := c.call(ctx, http.MethodGet, "/wishlist/count", token, nil, nil, &resp); err != nil {
		return 0, err
	}

	return resp.Data.Count, nil
}

func (c *Client) AddWishlistItem(ctx context.Context, token, productID, lang string) (*WishlistResult, error) {
	return c.mutateWishlist(ctx, http.MethodPost, "/wishlist/add", token, productID, lang)
}

func (c *Client) RemoveWishlistItem(ctx context.Context, token, productID, lang string) (*WishlistResult, error) {
	return c.mutateWishlist(ctx, http.MethodDelete, "/wishlist/remove", token, productID, lang)
}

// MoveWishlistItemToCart is atomic on the server: remove-from-wishlist plus
// add-to-cart. The response data is the remaining wishlist; the cart side is
// picked up by the next cart sync.
func (c *Client) MoveWishlistItemToCart(ctx context.Context, token, productID, lang string) (*WishlistResult, error) {
	return c.mutateWishlist(ctx, http.MethodPost, "/wishlist/send-to-cart", token, productID, lang)
}

func (c *Client) mutateWishlist(ctx context.Context, method, path, token, productID, lang string) (*WishlistResult, error) {

	body := wishlistItemBody{ProductID: productID, Lang: c.lang(lang)}

	var resp wishlistMutationResponse
	if err := c.call(ctx, method, path, token, nil, body, &resp); err != nil {
		return nil, err
	}

	return &WishlistResult{Message: resp.Message, Items: resp.Data.Items}, nil
}
