package shopapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/trendmart/storefront-client/internal/models"
)

type cartData struct {
	Items []models.CartItem `json:"items"`
}

type cartMutationResponse struct {
	IsSuccess bool     `json:"isSuccess"`
	Message   string   `json:"message"`
	Data      cartData `json:"data"`
}

type cartPageResponse struct {
	IsSuccess  bool              `json:"isSuccess"`
	Message    string            `json:"message"`
	Data       []models.CartItem `json:"data"`
	NextCursor string            `json:"nextCursor"`
}

// CartResult is the authoritative outcome of one cart mutation: the
// server-localized message plus the entire current cart.
type CartResult struct {
	Message string
	Items   []models.CartItem
}

type cartItemBody struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Lang      string `json:"lang"`
}

// FetchCartPage retrieves one cursor page of the user's cart.
func (c *Client) FetchCartPage(ctx context.Context, token, cursor string) (models.Page[models.CartItem], error) {

	query := url.Values{}
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var resp cartPageResponse
	if err := c.call(ctx, http.MethodGet, "/cart", token, query, nil, &resp); err != nil {
		return models.Page[models.CartItem]{}, err
	}

	return models.Page[models.CartItem]{Items: resp.Data, NextCursor: resp.NextCursor}, nil
}

func (c *Client) AddCartItem(ctx context.Context, token, productID string, quantity int, lang string) (*CartResult, error) {
	return c.mutateCart(ctx, http.MethodPost, "/cart/add", token, productID, quantity, lang)
}

func (c *Client) RemoveCartItem(ctx context.Context, token, productID string, quantity int, lang string) (*CartResult, error) {
	return c.mutateCart(ctx, http.MethodDelete, "/cart/remove", token, productID, quantity, lang)
}

func (c *Client) mutateCart(ctx context.Context, method, path, token, productID string, quantity int, lang string) (*CartResult, error) {

	body := cartItemBody{ProductID: productID, Quantity: quantity, Lang: c.lang(lang)}

	var resp cartMutationResponse
	if err := c.call(ctx, method, path, token, nil, body, &resp); err != nil {
		return nil, err
	}

	return &CartResult{Message: resp.Message, Items: resp.Data.Items}, nil
}
