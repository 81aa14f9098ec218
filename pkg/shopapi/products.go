package shopapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/trendmart/storefront-client/internal/models"
)

type productPageResponse struct {
	IsSuccess  bool             `json:"isSuccess"`
	Message    string           `json:"message"`
	Data       []models.Product `json:"data"`
	NextCursor string           `json:"nextCursor"`
}

// FetchProductsPage retrieves one cursor page of the catalog. Browsing does
// not require a session token.
func (c *Client) FetchProductsPage(ctx context.Context, cursor string) (models.Page[models.Product], error) {

	query := url.Values{}
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var resp productPageResponse
	if err := c.call(ctx, http.MethodGet, "/products", "", query, nil, &resp); err != nil {
		return models.Page[models.Product]{}, err
	}

	return models.Page[models.Product]{Items: resp.Data, NextCursor: resp.NextCursor}, nil
}
