package shopapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/trendmart/storefront-client/internal/errors"
	"github.com/trendmart/storefront-client/pkg/shopapi"
)

func testConfig(baseURL string) shopapi.Config {
	cfg := shopapi.DefaultConfig(baseURL)
	cfg.Timeout = 2 * time.Second
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 5 * time.Millisecond

	return cfg
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestAddCartItem(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Sends Token And Decodes The Envelope", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/cart/add", r.URL.Path)
			assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "p1", body["productId"])
			assert.Equal(t, float64(2), body["quantity"])
			assert.Equal(t, "tr", body["lang"])

			writeJSON(t, w, http.StatusOK, map[string]any{
				"isSuccess": true,
				"message":   "Sepete eklendi",
				"data": map[string]any{
					"items": []map[string]any{
						{"product_id": "p1", "quantity": 2, "unit_price": 10.0},
					},
				},
			})
		}))
		defer server.Close()

		client := shopapi.New(testConfig(server.URL))

		// Act
		result, err := client.AddCartItem(ctx, "token-123", "p1", 2, "tr")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Sepete eklendi", result.Message)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "p1", result.Items[0].ProductID)
		assert.Equal(t, 2, result.Items[0].Quantity)
	})

	t.Run("Success - Empty Lang Falls Back To Default", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "en", body["lang"])

			writeJSON(t, w, http.StatusOK, map[string]any{"isSuccess": true})
		}))
		defer server.Close()

		client := shopapi.New(testConfig(server.URL))

		// Act
		_, err := client.AddCartItem(ctx, "token-123", "p1", 1, "")

		// Assert
		require.NoError(t, err)
	})

	t.Run("Failure - Unauthorized Preserves The Server Message", func(t *testing.T) {
		// Arrange
		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			writeJSON(t, w, http.StatusUnauthorized, map[string]any{
				"isSuccess": false,
				"message":   "Your session has expired",
			})
		}))
		defer server.Close()

		client := shopapi.New(testConfig(server.URL))

		// Act
		_, err := client.AddCartItem(ctx, "stale-token", "p1", 1, "en")

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
		assert.Equal(t, "Your session has expired", appErr.Message)
		assert.Equal(t, int32(1), attempts.Load(), "4xx responses must not be retried")
	})

	t.Run("Failure - Bad Request Without Envelope Gets A Fallback Message", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		client := shopapi.New(testConfig(server.URL))

		// Act
		_, err := client.AddCartItem(ctx, "token-123", "p1", 1, "en")

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		assert.NotEmpty(t, appErr.Message)
	})
}

func TestClientRetries(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Transient 5xx Is Retried", func(t *testing.T) {
		// Arrange
		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if attempts.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)

				return
			}

			writeJSON(t, w, http.StatusOK, map[string]any{"isSuccess": true, "message": "Added to cart"})
		}))
		defer server.Close()

		client := shopapi.New(testConfig(server.URL))

		// Act
		result, err := client.AddCartItem(ctx, "token-123", "p1", 1, "en")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Added to cart", result.Message)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("Failure - Exhausted Retries Surface As Unavailable", func(t *testing.T) {
		// Arrange
		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		cfg := testConfig(server.URL)
		cfg.MaxRetries = 2

		client := shopapi.New(cfg)

		// Act
		_, err := client.AddCartItem(ctx, "token-123", "p1", 1, "en")

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnavailable, appErr.Code)
		assert.Equal(t, int32(3), attempts.Load(), "initial attempt plus two retries")
	})

	t.Run("Failure - Not Implemented Is A Contract Error Not Retried", func(t *testing.T) {
		// Arrange
		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusNotImplemented)
		}))
		defer server.Close()

		client := shopapi.New(testConfig(server.URL))

		// Act
		_, err := client.AddCartItem(ctx, "token-123", "p1", 1, "en")

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUpstream, appErr.Code)
		assert.Equal(t, int32(1), attempts.Load())
	})
}

func TestClientCircuitBreaker(t *testing.T) {
	ctx := t.Context()

	t.Run("Failure - Open Breaker Fails Fast", func(t *testing.T) {
		// Arrange
		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		cfg := testConfig(server.URL)
		cfg.MaxRetries = 0
		cfg.BreakerTimeout = time.Minute

		client := shopapi.New(cfg)

		for i := 0; i < 5; i++ {
			_, err := client.AddCartItem(ctx, "token-123", "p1", 1, "en")
			require.Error(t, err)
		}

		hitsBeforeOpen := attempts.Load()

		// Act
		_, err := client.AddCartItem(ctx, "token-123", "p1", 1, "en")

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnavailable, appErr.Code)
		assert.Equal(t, hitsBeforeOpen, attempts.Load(), "an open breaker must not reach the backend")
	})
}

func TestFetchCartPage(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Cursor Is Forwarded And Next Cursor Returned", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/cart", r.URL.Path)
			assert.Equal(t, "c2", r.URL.Query().Get("cursor"))

			writeJSON(t, w, http.StatusOK, map[string]any{
				"isSuccess":  true,
				"data":       []map[string]any{{"product_id": "p3", "quantity": 1, "unit_price": 5.0}},
				"nextCursor": "c3",
			})
		}))
		defer server.Close()

		client := shopapi.New(testConfig(server.URL))

		// Act
		page, err := client.FetchCartPage(ctx, "token-123", "c2")

		// Assert
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "p3", page.Items[0].ProductID)
		assert.Equal(t, "c3", page.NextCursor)
		assert.True(t, page.HasMore())
	})

	t.Run("Success - Last Page Has No Cursor", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("cursor"))

			writeJSON(t, w, http.StatusOK, map[string]any{"isSuccess": true, "data": []map[string]any{}})
		}))
		defer server.Close()

		client := shopapi.New(testConfig(server.URL))

		// Act
		page, err := client.FetchCartPage(ctx, "token-123", "")

		// Assert
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasMore())
	})
}

func TestFetchWishlistCount(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Returns The Counter Snapshot", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/wishlist/count", r.URL.Path)

			writeJSON(t, w, http.StatusOK, map[string]any{"isSuccess": true, "data": map[string]any{"count": 7}})
		}))
		defer server.Close()

		client := shopapi.New(testConfig(server.URL))

		// Act
		count, err := client.FetchWishlistCount(ctx, "token-123")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 7, count)
	})
}
