package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

const (
	// HeaderCorrelationID is the header name for correlation ID.
	// Unlike the request ID, a client may reuse it across a whole import
	// session: extract, accept, then link.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyCorrelationID is the gin context key for the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID returns middleware that propagates or originates a
// correlation ID the same way RequestID does.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderCorrelationID,
		contextKey: ContextKeyCorrelationID,
		enrichers:  enrichers(ContextWithCorrelationID, logging.WithCorrelationID),
	})
}

// GetCorrelationID returns the correlation ID from the gin.Context, or "".
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}

func enrichers(fns ...func(context.Context, string) context.Context) []func(context.Context, string) context.Context {
	return fns
}
