// Package clients provides the resilient HTTP client used by downstream adapters.
package clients

import "errors"

// Transport-level failures. Adapters translate these into domain errors.
var (
	// ErrCircuitOpen is returned without sending when the breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last failure once attempts run out.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")

	// ErrRetryableStatus marks a 429 or 5xx response.
	ErrRetryableStatus = errors.New("retryable status")
)
