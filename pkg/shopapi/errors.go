package shopapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	appErrors "github.com/trendmart/storefront-client/internal/errors"
)

// errorEnvelope mirrors the body the backend returns alongside non-2xx
// statuses.
type errorEnvelope struct {
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
}

// parseResponseError translates a non-2xx backend response into a typed
// AppError, preserving the server-provided message when one is present. The
// response body is fully consumed; the caller closes it.
func parseResponseError(resp *http.Response) error {

	bodyBytes, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	message := ""

	if readErr == nil {
		var envelope errorEnvelope
		if json.Unmarshal(bodyBytes, &envelope) == nil {
			message = envelope.Message
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return appErrors.UnauthorizedError(orDefault(message, "Session is no longer valid"))
	case resp.StatusCode == http.StatusNotFound:
		return appErrors.NotFoundError(orDefault(message, "Resource not found"))
	case resp.StatusCode == http.StatusTooManyRequests:
		return appErrors.TooManyRequestsError(orDefault(message, "Too many requests"))
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return appErrors.BadRequestError(orDefault(message, fmt.Sprintf("Backend rejected the request (status %d)", resp.StatusCode)))
	default:
		return appErrors.UpstreamError(orDefault(message, fmt.Sprintf("Backend request failed (status %d)", resp.StatusCode)))
	}
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}

	return message
}
