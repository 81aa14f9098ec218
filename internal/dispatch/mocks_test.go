package dispatch_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/trendmart/storefront-client/pkg/shopapi"
)

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

type mockLimiter struct {
	mock.Mock
}

func (m *mockLimiter) Allow(ctx context.Context, userID string) (bool, int64, int, error) {
	args := m.Called(ctx, userID)

	return args.Bool(0), args.Get(1).(int64), args.Int(2), args.Error(3)
}
