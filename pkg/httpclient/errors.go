package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/nuvoshop/wishlist-service/pkg/errors"
)

// UpstreamErrorResponse mirrors the error envelope returned by the wishlist
// backend, used to parse structured error bodies from non-2xx responses.
type UpstreamErrorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError reads the body of a non-2xx response and translates it
// into an AppError. Structured error bodies keep their code and message;
// anything else becomes a generic error with the status and raw body.
//
// The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, upstream string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", upstream, resp.StatusCode, err)
	}

	var parsed UpstreamErrorResponse
	if json.Unmarshal(bodyBytes, &parsed) == nil && parsed.Error != nil {
		return mapUpstreamError(resp.StatusCode, parsed.Error.Code, parsed.Error.Message, upstream)
	}

	return mapUpstreamError(resp.StatusCode, "", fmt.Sprintf("status %d: %s", resp.StatusCode, string(bodyBytes)), upstream)
}

// mapUpstreamError translates the backend's status code into the local error
// taxonomy so callers can branch with errors.Is.
func mapUpstreamError(status int, code, message, upstream string) error {
	qualified := fmt.Sprintf("%s: %s", upstream, message)

	switch {
	case status == http.StatusNotFound:
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: qualified,
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	case status == http.StatusConflict:
		return &apperrors.AppError{
			Code:    "CONFLICT",
			Message: qualified,
			Status:  http.StatusConflict,
			Err:     apperrors.ErrConflict,
		}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperrors.Unauthorized(qualified)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status >= 500:
		return apperrors.Unavailable(qualified)
	default:
		return &apperrors.AppError{
			Code:    code,
			Message: qualified,
			Status:  status,
		}
	}
}
