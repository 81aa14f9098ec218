package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/trendmart/storefront-client/pkg/shopapi"
)

var testJWTKey = []byte("test-secret-key")

// nullCache always misses, so every page read exercises the fetcher.
type nullCache struct{}

func (nullCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (nullCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (nullCache) Delete(context.Context, string) error { return nil }

func (nullCache) Close() error { return nil }

type mockCartAPI struct {
	mock.Mock
}

func (m *mockCartAPI) AddCartItem(ctx context.Context, token, productID string, quantity int, lang string) (*shopapi.CartResult, error) {
	args := m.Called(ctx, token, productID, quantity, lang)

	if result := args.Get(0); result != nil {
		return result.(*shopapi.CartResult), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCartAPI) RemoveCartItem(ctx context.Context, token, productID string, quantity int, lang string) (*shopapi.CartResult, error) {
	args := m.Called(ctx, token, productID, quantity, lang)

	if result := args.Get(0); result != nil {
		return result.(*shopapi.CartResult), args.Error(1)
	}

	return nil, args.Error(1)
}

type mockWishlistAPI struct {
	mock.Mock
}

func (m *mockWishlistAPI) AddWishlistItem(ctx context.Context, token, productID, lang string) (*shopapi.WishlistResult, error) {
	args := m.Called(ctx, token, productID, lang)

	if result := args.Get(0); result != nil {
		return result.(*shopapi.WishlistResult), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockWishlistAPI) RemoveWishlistItem(ctx context.Context, token, productID, lang string) (*shopapi.WishlistResult, error) {
	args := m.Called(ctx, token, productID, lang)

	if result := args.Get(0); result != nil {
		return result.(*shopapi.WishlistResult), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockWishlistAPI) MoveWishlistItemToCart(ctx context.Context, token, productID, lang string) (*shopapi.WishlistResult, error) {
	args := m.Called(ctx, token, productID, lang)

	if result := args.Get(0); result != nil {
		return result.(*shopapi.WishlistResult), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockWishlistAPI) FetchWishlistCount(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)

	return args.Int(0), args.Error(1)
}
