package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestIDMiddleware(t *testing.T) {
	t.Parallel()

	type capture struct {
		gin, ctx string
	}

	tests := []struct {
		name       string
		middleware gin.HandlerFunc
		header     string
		capture    func(c *gin.Context) capture
		incoming   string
		wantSame   bool
	}{
		{
			name:       "request id passed through",
			middleware: RequestID(),
			header:     HeaderRequestID,
			capture: func(c *gin.Context) capture {
				return capture{GetRequestID(c), RequestIDFromContext(c.Request.Context())}
			},
			incoming: "req-123",
			wantSame: true,
		},
		{
			name:       "request id generated when absent",
			middleware: RequestID(),
			header:     HeaderRequestID,
			capture: func(c *gin.Context) capture {
				return capture{GetRequestID(c), RequestIDFromContext(c.Request.Context())}
			},
		},
		{
			name:       "request id with control characters replaced",
			middleware: RequestID(),
			header:     HeaderRequestID,
			capture: func(c *gin.Context) capture {
				return capture{GetRequestID(c), RequestIDFromContext(c.Request.Context())}
			},
			incoming: "bad\tid",
		},
		{
			name:       "oversized correlation id replaced",
			middleware: CorrelationID(),
			header:     HeaderCorrelationID,
			capture: func(c *gin.Context) capture {
				return capture{GetCorrelationID(c), CorrelationIDFromContext(c.Request.Context())}
			},
			incoming: strings.Repeat("x", maxIDLength+1),
		},
		{
			name:       "correlation id passed through",
			middleware: CorrelationID(),
			header:     HeaderCorrelationID,
			capture: func(c *gin.Context) capture {
				return capture{GetCorrelationID(c), CorrelationIDFromContext(c.Request.Context())}
			},
			incoming: "import-session-7",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got capture

			router := gin.New()
			router.Use(tt.middleware)
			router.GET("/test", func(c *gin.Context) {
				got = tt.capture(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(tt.header, tt.incoming)
			}

			w := serve(router, req)

			assert.Equal(t, got.gin, got.ctx)
			assert.Equal(t, got.gin, w.Header().Get(tt.header))

			if tt.wantSame {
				assert.Equal(t, tt.incoming, got.gin)
				return
			}

			_, err := uuid.Parse(got.gin)
			assert.NoError(t, err)
		})
	}
}

func TestGetIDFromContext(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))

	c.Set(ContextKeyRequestID, 42)
	assert.Empty(t, GetRequestID(c))

	c.Set(ContextKeyCorrelationID, "corr-1")
	assert.Equal(t, "corr-1", GetCorrelationID(c))
}

func TestContextIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, RequestIDFromContext(ctx))
	assert.Empty(t, CorrelationIDFromContext(ctx))

	ctx = ContextWithRequestID(ctx, "request-123")
	ctx = ContextWithCorrelationID(ctx, "correlation-456")

	assert.Equal(t, "request-123", RequestIDFromContext(ctx))
	assert.Equal(t, "correlation-456", CorrelationIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(nil)) //nolint:staticcheck // nil context is handled
}

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		status    int
		skip      []string
		wantLevel string
	}{
		{name: "success logged at info", path: "/api/v1/collections", status: http.StatusOK, wantLevel: "INFO"},
		{name: "client error logged at warn", path: "/api/v1/collections", status: http.StatusPaymentRequired, wantLevel: "WARN"},
		{name: "server error logged at error", path: "/api/v1/collections", status: http.StatusServiceUnavailable, wantLevel: "ERROR"},
		{name: "operational path skipped", path: "/-/live", status: http.StatusOK},
		{name: "custom prefix skipped", path: "/api/v1/collections", status: http.StatusOK, skip: []string{"/api/v1/coll"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			router := gin.New()
			router.Use(ContextLogger(logger), RequestID(), Logging(tt.skip...))
			router.GET(tt.path, func(c *gin.Context) { c.Status(tt.status) })

			w := serve(router, httptest.NewRequest(http.MethodGet, tt.path+"?q=focus", nil))
			require.Equal(t, tt.status, w.Code)

			if tt.wantLevel == "" {
				assert.Empty(t, buf.String())
				return
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, tt.path, entry["path"])
			assert.Equal(t, tt.path, entry["route"])
			assert.InDelta(t, float64(tt.status), entry["status"], 0)
			assert.Equal(t, w.Header().Get(HeaderRequestID), entry["request_id"])
		})
	}
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewJSONHandler(&buf, nil)).With(slog.String("service", "quotevault"))

	router := gin.New()
	router.Use(ContextLogger(logger), CorrelationID())
	router.GET("/test", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderCorrelationID, "corr-9")
	serve(router, req)

	assert.Contains(t, buf.String(), `"service":"quotevault"`)
	assert.Contains(t, buf.String(), `"correlation_id":"corr-9"`)
}

func TestTraceLogger(t *testing.T) {
	t.Parallel()

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})

	var buf bytes.Buffer

	router := gin.New()
	router.Use(ContextLogger(slog.New(slog.NewJSONHandler(&buf, nil))), TraceLogger())
	router.GET("/test", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusOK)
	})

	traced := httptest.NewRequest(http.MethodGet, "/test", nil)
	serve(router, traced.WithContext(trace.ContextWithSpanContext(traced.Context(), sc)))

	assert.Contains(t, buf.String(), `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`)

	buf.Reset()
	serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.NotContains(t, buf.String(), "trace_id")
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	t.Run("normal request passes through", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery())
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		assert.Equal(t, http.StatusOK, serve(router, httptest.NewRequest(http.MethodGet, "/test", nil)).Code)
	})

	t.Run("panic becomes 500 envelope", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery(), RequestID())
		router.GET("/test", func(*gin.Context) { panic("boom") })

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderRequestID, "req-panic")

		w := serve(router, req)
		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})

	t.Run("panic after write keeps partial response", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery())
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "partial")
			panic("late")
		})

		w := serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "partial", w.Body.String())
	})
}

func TestDeadline(t *testing.T) {
	t.Parallel()

	t.Run("sets context deadline", func(t *testing.T) {
		t.Parallel()

		var hasDeadline bool

		router := gin.New()
		router.Use(Deadline(time.Minute))
		router.GET("/test", func(c *gin.Context) {
			_, hasDeadline = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		assert.Equal(t, http.StatusOK, serve(router, httptest.NewRequest(http.MethodGet, "/test", nil)).Code)
		assert.True(t, hasDeadline)
	})

	t.Run("zero timeout disables deadline", func(t *testing.T) {
		t.Parallel()

		var hasDeadline bool

		router := gin.New()
		router.Use(Deadline(0))
		router.GET("/test", func(c *gin.Context) {
			_, hasDeadline = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.False(t, hasDeadline)
	})

	t.Run("expired handler without response gets 504", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Deadline(10 * time.Millisecond))
		router.GET("/slow", func(c *gin.Context) {
			<-c.Request.Context().Done()
		})

		w := serve(router, httptest.NewRequest(http.MethodGet, "/slow", nil))
		require.Equal(t, http.StatusGatewayTimeout, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrorCodeTimeout, resp.Error.Code)
	})

	t.Run("handler response wins over deadline", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Deadline(10 * time.Millisecond))
		router.GET("/slow", func(c *gin.Context) {
			<-c.Request.Context().Done()
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "busy"})
		})

		assert.Equal(t, http.StatusServiceUnavailable, serve(router, httptest.NewRequest(http.MethodGet, "/slow", nil)).Code)
	})
}
