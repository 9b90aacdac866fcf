package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotevault/internal/platform/telemetry"
)

// Default deadlines for API requests.
const (
	DefaultRequestTimeout = 30 * time.Second

	// DefaultImportTimeout covers classifier retries on image extraction.
	DefaultImportTimeout = 2 * time.Minute
)

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	Logger      *slog.Logger
	ServiceName string

	HealthHandler *handlers.HealthHandler
	VaultHandler  *handlers.VaultHandler

	// Timeout bounds /api/v1 requests; ImportTimeout replaces it for
	// image extraction. Zero disables the deadline.
	Timeout       time.Duration
	ImportTimeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware order (first to last):
//  1. Recovery
//  2. Context logger
//  3. Request ID and correlation ID
//  4. OpenTelemetry tracing, HTTP metrics, then the trace id on the logger
//  5. Request logging (skips /-/)
//  6. Deadline, per route group
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.ContextLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.TraceLogger(),
		middleware.Logging(),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	if cfg.VaultHandler == nil {
		return
	}

	apiV1 := engine.Group("/api/v1", deadlines(cfg.Timeout, cfg.ImportTimeout))
	cfg.VaultHandler.RegisterRoutes(apiV1)
}

// imageImportRoute is the one route allowed the longer import deadline.
const imageImportRoute = "/api/v1/imports/images"

func deadlines(standard, imports time.Duration) gin.HandlerFunc {
	standardDeadline := middleware.Deadline(standard)
	importDeadline := middleware.Deadline(imports)

	return func(c *gin.Context) {
		if c.FullPath() == imageImportRoute {
			importDeadline(c)
			return
		}

		standardDeadline(c)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with default deadlines.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	serviceName string,
	health *handlers.HealthHandler,
	vault *handlers.VaultHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		ServiceName:   serviceName,
		HealthHandler: health,
		VaultHandler:  vault,
		Timeout:       DefaultRequestTimeout,
		ImportTimeout: DefaultImportTimeout,
	}
}
