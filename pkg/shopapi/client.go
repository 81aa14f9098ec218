// Package shopapi is the HTTP client for the shop backend API. All business
// logic (pricing, inventory, payment, persistence) lives behind it; this
// package only fetches, mutates and translates errors.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	appErrors "github.com/trendmart/storefront-client/internal/errors"
)

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryWaitMin   time.Duration
	RetryWaitMax   time.Duration
	BreakerTimeout time.Duration
	DefaultLang    string
}

func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		Timeout:        10 * time.Second,
		MaxRetries:     3,
		RetryWaitMin:   500 * time.Millisecond,
		RetryWaitMax:   5 * time.Second,
		BreakerTimeout: 30 * time.Second,
		DefaultLang:    "en",
	}
}

type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	cfg        Config
}

func New(cfg Config) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	settings := gobreaker.Settings{
		Name:    "shop-backend",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}

			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
	}

	return &Client{
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   cfg.Timeout,
		},
		breaker: gobreaker.NewCircuitBreaker[*http.Response](settings),
		cfg:     cfg,
	}
}

func (c *Client) lang(lang string) string {
	if lang == "" {
		return c.cfg.DefaultLang
	}

	return lang
}

// do executes one request attempt through the circuit breaker with retries on
// network errors and 5xx responses. 4xx responses are never retried.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body any) (*http.Response, error) {

	var payload []byte

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}

		payload = data
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	operation := func() (*http.Response, error) {

		resp, err := c.breaker.Execute(func() (*http.Response, error) {

			var reader io.Reader
			if payload != nil {
				reader = bytes.NewReader(payload)
			}

			req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
			if err != nil {
				return nil, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
			}

			req.Header.Set("Accept", "application/json")

			if payload != nil {
				req.Header.Set("Content-Type", "application/json")
			}

			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return nil, err
			}

			// 501 is a contract bug, not a transient fault.
			if resp.StatusCode >= 500 && resp.StatusCode != http.StatusNotImplemented {
				resp.Body.Close()

				return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
			}

			return resp, nil
		})

		if err != nil {
			if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
				return nil, backoff.Permanent(appErrors.UnavailableError("Shop backend is temporarily unavailable").WithError(err))
			}

			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}

			return nil, err
		}

		return resp, nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = c.cfg.RetryWaitMin
	expo.MaxInterval = c.cfg.RetryWaitMax
	expo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(c.cfg.MaxRetries)), ctx)

	resp, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		if appErr, ok := appErrors.IsAppError(err); ok {
			return nil, appErr
		}

		return nil, appErrors.UnavailableError("Could not reach the shop backend").WithError(err)
	}

	return resp, nil
}

// call runs a request and decodes the success envelope into out. Non-2xx
// responses are translated to typed errors before any decoding of out.
func (c *Client) call(ctx context.Context, method, path, token string, query url.Values, body, out any) error {

	resp, err := c.do(ctx, method, path, token, query, body)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseResponseError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)

		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.UpstreamError("Shop backend returned a malformed response").WithError(err)
	}

	return nil
}
