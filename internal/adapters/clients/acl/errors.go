package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quotevault/internal/adapters/clients"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// ErrInvalidOutput is returned when the model answered but the answer
// cannot be used.
var ErrInvalidOutput = errors.New("invalid model output")

// ErrorResponse is the API error envelope:
//
//	{"error": {"code": 400, "message": "...", "status": "INVALID_ARGUMENT"}}
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the body of an ErrorResponse.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// API status codes that change the mapping.
const (
	StatusInvalidArgument    = "INVALID_ARGUMENT"
	StatusFailedPrecondition = "FAILED_PRECONDITION"
	StatusPermissionDenied   = "PERMISSION_DENIED"
	StatusResourceExhausted  = "RESOURCE_EXHAUSTED"
)

// ParseErrorResponse decodes an error envelope, or returns nil when body
// holds none.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.Error.Message == "" && errResp.Error.Status == "" {
		return nil
	}

	return &errResp
}

// MapHTTPError maps a failed call onto a domain error. clientErr takes
// precedence; otherwise resp must be a non-2xx response.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, operation+": no response")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	var errResp *ErrorResponse
	if resp.Body != nil {
		errResp = ParseErrorResponse(resp.Body)
	}

	return mapStatusCode(resp.StatusCode, errResp, serviceName, operation)
}

func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", operation, err)
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName, operation+": circuit breaker open")
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName, operation+": retries exhausted")
	default:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s: %v", operation, err))
	}
}

func mapStatusCode(status int, errResp *ErrorResponse, serviceName, operation string) error {
	message := fmt.Sprintf("%s failed with status %d", operation, status)
	apiStatus := ""

	if errResp != nil {
		apiStatus = errResp.Error.Status

		if errResp.Error.Message != "" {
			message = errResp.Error.Message
		}
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden || apiStatus == StatusPermissionDenied:
		return domain.NewUnavailableError(serviceName, "credentials rejected: "+message)
	case status == http.StatusTooManyRequests || apiStatus == StatusResourceExhausted:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")
	case status >= http.StatusInternalServerError:
		return domain.NewUnavailableError(serviceName, message)
	case status == http.StatusNotFound:
		return domain.NewUnavailableError(serviceName, "model not found: "+message)
	case apiStatus == StatusFailedPrecondition:
		return domain.NewUnavailableError(serviceName, message)
	default:
		return domain.NewValidationError(operation, message)
	}
}
