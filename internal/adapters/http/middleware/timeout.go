package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

// Deadline sets a request deadline. Handlers run on the request goroutine
// and must honor ctx; if the deadline passed and the handler wrote nothing,
// a 504 with code TIMEOUT is written.
func Deadline(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) || c.Writer.Written() {
			return
		}

		logging.FromContext(ctx).WarnContext(ctx, "request deadline exceeded",
			slog.String("path", c.Request.URL.Path),
			slog.Duration("timeout", timeout),
		)

		errResp := dto.NewErrorResponse(dto.ErrorCodeTimeout, "request timeout exceeded").WithTraceID(dto.GetTraceID(c))
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, errResp)
	}
}
