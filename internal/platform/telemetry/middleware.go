package telemetry

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jsamuelsen/quotevault/telemetry"

// TraceHeader echoes the request's trace id back to the caller.
const TraceHeader = "X-Trace-ID"

// APIGroup names the resource family a route belongs to: "collections" for
// /api/v1/collections/:id, "ops" for the /-/ endpoints, "unmatched" for 404s.
func APIGroup(route string) string {
	if route == "" {
		return "unmatched"
	}

	if strings.HasPrefix(route, "/-/") {
		return "ops"
	}

	rest, ok := strings.CutPrefix(route, "/api/v1/")
	if !ok {
		return "other"
	}

	group, _, _ := strings.Cut(rest, "/")

	return group
}

type requestMetrics struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

func newRequestMetrics(meter metric.Meter) (*requestMetrics, error) {
	duration, err := meter.Float64Histogram("quotevault.api.request.duration",
		metric.WithDescription("API request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	total, err := meter.Int64Counter("quotevault.api.requests",
		metric.WithDescription("API requests served"),
	)
	if err != nil {
		return nil, err
	}

	inFlight, err := meter.Int64UpDownCounter("quotevault.api.requests.in_flight",
		metric.WithDescription("API requests being served"),
	)
	if err != nil {
		return nil, err
	}

	return &requestMetrics{duration: duration, total: total, inFlight: inFlight}, nil
}

// Middleware records per-route request metrics tagged with the API group and
// sets TraceHeader when the request is traced. It must run after
// TracingMiddleware.
func Middleware() gin.HandlerFunc {
	m, err := newRequestMetrics(otel.Meter(instrumentationName))
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()
		route := c.FullPath()

		base := []attribute.KeyValue{
			attribute.String("http.request.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.String("quotevault.api.group", APIGroup(route)),
		}

		if m != nil {
			m.inFlight.Add(ctx, 1, metric.WithAttributes(base...))
			defer m.inFlight.Add(ctx, -1, metric.WithAttributes(base...))
		}

		c.Next()

		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.HasTraceID() {
			c.Header(TraceHeader, sc.TraceID().String())
		}

		if m == nil {
			return
		}

		attrs := metric.WithAttributes(append(base,
			attribute.Int("http.response.status_code", c.Writer.Status()),
		)...)

		m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
		m.total.Add(ctx, 1, attrs)
	}
}

// TracingMiddleware starts a server span per request.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}
