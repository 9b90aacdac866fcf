// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

// ErrorResponse is the standard error envelope for all error responses.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "QUOTA_EXCEEDED").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details provides additional context about the error.
	// For validation errors, this contains field-level error messages.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	ErrorCodeNotFound    = "NOT_FOUND"
	ErrorCodeConflict    = "CONFLICT"
	ErrorCodeValidation  = "VALIDATION_ERROR"
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"
	ErrorCodeInternal    = "INTERNAL_ERROR"
	ErrorCodeTimeout     = "TIMEOUT"
	ErrorCodeBadRequest  = "BAD_REQUEST"

	// ErrorCodeQuotaExceeded means the free tier cannot hold the requested quotes.
	ErrorCodeQuotaExceeded = "QUOTA_EXCEEDED"

	// ErrorCodeAlreadyClaimed means today's reward was already taken.
	ErrorCodeAlreadyClaimed = "ALREADY_CLAIMED"

	// ErrorCodeExtractionFailed means the images could not be turned into quotes.
	ErrorCodeExtractionFailed = "EXTRACTION_FAILED"
)

// traceIDKey is the gin context key checked first by GetTraceID.
const traceIDKey = "trace_id"

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails creates an error response with additional details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeConflict, ErrorCodeAlreadyClaimed:
		return http.StatusConflict
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeQuotaExceeded:
		return http.StatusPaymentRequired
	case ErrorCodeExtractionFailed:
		return http.StatusUnprocessableEntity
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	var (
		quotaErr      *domain.QuotaExceededError
		validationErr *domain.ValidationError
		extractionErr *domain.ExtractionError
		unavailErr    *domain.UnavailableError
	)

	switch {
	case errors.As(err, &quotaErr):
		return http.StatusPaymentRequired, NewErrorResponseWithDetails(
			ErrorCodeQuotaExceeded,
			"free quote limit reached",
			map[string]string{
				"used":      strconv.Itoa(quotaErr.Used),
				"limit":     strconv.Itoa(quotaErr.Limit),
				"requested": strconv.Itoa(quotaErr.Requested),
			},
		)

	case domain.IsAlreadyClaimed(err):
		return http.StatusConflict, NewErrorResponse(ErrorCodeAlreadyClaimed, err.Error())

	case errors.As(err, &extractionErr):
		return http.StatusUnprocessableEntity, NewErrorResponse(ErrorCodeExtractionFailed, extractionErr.Message)

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsConflict(err):
		return http.StatusConflict, NewErrorResponse(ErrorCodeConflict, err.Error())

	case errors.As(err, &validationErr):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())
		if validationErr.Field != "" {
			resp.Error.Details = map[string]string{validationErr.Field: validationErr.Message}
		}

		return http.StatusBadRequest, resp

	case errors.As(err, &unavailErr):
		// The reason can carry file paths or upstream messages; keep it in logs only.
		return http.StatusServiceUnavailable, NewErrorResponse(
			ErrorCodeUnavailable,
			unavailErr.Service+" is temporarily unavailable",
		)

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, "service temporarily unavailable")

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, NewErrorResponse(ErrorCodeTimeout, "request timeout exceeded")

	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, NewErrorResponse(ErrorCodeTimeout, "request cancelled")

	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}
}

// GetTraceID returns the identifier used to correlate an error response with
// logs: an explicit trace_id context value, the active span's trace ID, or
// the request ID header, in that order.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(traceIDKey); ok {
		id, _ := v.(string)
		return id
	}

	if c.Request == nil {
		return ""
	}

	if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return c.Request.Header.Get("X-Request-ID")
}

// HandleError maps err and writes the JSON error response. Server-side
// failures are logged with the request-scoped logger.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			"status", status,
			"error", err.Error(),
			"trace_id", resp.TraceID,
		)
	}

	c.JSON(status, resp)
}
