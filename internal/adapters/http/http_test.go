package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotevault/internal/adapters/persistence"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/mocks"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServerConfig(maxRequestSize int64) *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           0,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    30 * time.Second,
		MaxRequestSize: maxRequestSize,
	}
}

func newVaultHandler(t *testing.T) *handlers.VaultHandler {
	t.Helper()

	vault := app.NewVault(&app.VaultConfig{
		Store:      persistence.NewMemoryStore(),
		Classifier: mocks.NewMockClassifier(t),
		Logger:     discardLogger(),
	})

	return handlers.NewVaultHandler(vault)
}

func decodeError(t *testing.T, body *bytes.Buffer) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))

	return resp
}

func TestAbortWithErrorCode(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{dto.ErrorCodeNotFound, http.StatusNotFound},
		{dto.ErrorCodeQuotaExceeded, http.StatusPaymentRequired},
		{dto.ErrorCodeAlreadyClaimed, http.StatusConflict},
		{dto.ErrorCodeExtractionFailed, http.StatusUnprocessableEntity},
		{dto.ErrorCodeTimeout, http.StatusGatewayTimeout},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			engine := gin.New()
			reached := false
			engine.GET("/x",
				func(c *gin.Context) { AbortWithErrorCode(c, tt.code, "nope") },
				func(*gin.Context) { reached = true },
			)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set("X-Request-ID", "req-1")
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.False(t, reached)

			resp := decodeError(t, w.Body)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, "nope", resp.Error.Message)
			assert.Equal(t, "req-1", resp.TraceID)
		})
	}
}

func TestServerNew(t *testing.T) {
	cfg := testServerConfig(1 << 20)
	logger := discardLogger()

	srv := New(cfg, logger)

	require.NotNil(t, srv)
	assert.Same(t, cfg, srv.Config())
	assert.Equal(t, logger, srv.logger)
	assert.Equal(t, int64(1<<20), srv.Engine().MaxMultipartMemory)
	assert.True(t, srv.Engine().HandleMethodNotAllowed)
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"localhost", 8080, "localhost:8080"},
		{"0.0.0.0", 3000, "0.0.0.0:3000"},
		{"127.0.0.1", 0, "127.0.0.1:0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := testServerConfig(1 << 20)
			cfg.Host = tt.host
			cfg.Port = tt.port

			assert.Equal(t, tt.want, New(cfg, discardLogger()).Addr())
		})
	}
}

func TestServerFallbackRoutes(t *testing.T) {
	srv := New(testServerConfig(1<<20), discardLogger())
	srv.Engine().GET("/api/v1/account", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("unknown path", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nothing", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeError(t, w.Body)
		assert.Equal(t, dto.ErrorCodeNotFound, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "/api/v1/nothing")
	})

	t.Run("wrong method", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/account", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, dto.ErrorCodeBadRequest, decodeError(t, w.Body).Error.Code)
	})
}

func TestServerStartShutdown(t *testing.T) {
	cfg := testServerConfig(1 << 20)
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	srv := New(cfg, discardLogger())
	srv.Engine().GET("/-/live", func(c *gin.Context) { c.Status(http.StatusOK) })

	errCh, err := srv.Start()
	require.NoError(t, err)
	require.NotEqual(t, "127.0.0.1:0", srv.Addr())

	resp, err := http.Get("http://" + srv.Addr() + "/-/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	select {
	case _, ok := <-errCh:
		assert.False(t, ok, "error channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to shutdown")
	}
}

func TestServerStart_AddressInUse(t *testing.T) {
	cfg := testServerConfig(1 << 20)
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	first := New(cfg, discardLogger())
	_, err := first.Start()
	require.NoError(t, err)

	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	_, port, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)

	second := *cfg
	second.Port, err = strconv.Atoi(port)
	require.NoError(t, err)

	_, err = New(&second, discardLogger()).Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on")
}

func TestMaxBodySize(t *testing.T) {
	srv := New(testServerConfig(100), discardLogger())
	srv.Engine().POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.JSON(http.StatusOK, gin.H{"received": len(body)})
	})

	tests := []struct {
		name   string
		size   int
		status int
	}{
		{"under limit", 50, http.StatusOK},
		{"over limit", 500, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("a", tt.size)))
			srv.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestNewDefaultRouterConfig(t *testing.T) {
	logger := discardLogger()
	health := handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.BuildInfo{})

	cfg := NewDefaultRouterConfig(logger, "quotevault", health, nil)

	assert.Equal(t, logger, cfg.Logger)
	assert.Equal(t, "quotevault", cfg.ServiceName)
	assert.Equal(t, health, cfg.HealthHandler)
	assert.Nil(t, cfg.VaultHandler)
	assert.Equal(t, DefaultRequestTimeout, cfg.Timeout)
	assert.Equal(t, DefaultImportTimeout, cfg.ImportTimeout)
}

func TestSetupRouter(t *testing.T) {
	engine := gin.New()
	health := handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.BuildInfo{Version: "1.2.3"})

	SetupRouter(engine, NewDefaultRouterConfig(discardLogger(), "quotevault", health, newVaultHandler(t)))

	registered := make(map[string]bool)
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /-/live",
		"GET /-/ready",
		"GET /-/metrics",
		"GET /api/v1/categories",
		"POST /api/v1/collections",
		"GET /api/v1/search/all",
		"POST /api/v1/account/daily-reward",
		"POST /api/v1/imports/images",
		"POST /api/v1/imports/link",
	} {
		assert.True(t, registered[want], "route %s should be registered", want)
	}

	t.Run("request id is echoed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	})

	t.Run("build info", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/build", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"version":"1.2.3"`)
	})
}

func TestSetupRouterWithoutHandlers(t *testing.T) {
	engine := gin.New()

	require.NotPanics(t, func() {
		SetupRouter(engine, RouterConfig{Logger: discardLogger(), ServiceName: "quotevault"})
	})

	assert.Empty(t, engine.Routes())
}

func TestDeadlines(t *testing.T) {
	engine := gin.New()
	api := engine.Group("/api/v1", deadlines(time.Second, time.Hour))

	remaining := func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"remaining": time.Until(deadline).Seconds()})
	}
	api.POST("/imports/images", remaining)
	api.POST("/imports/link", remaining)

	tests := []struct {
		path    string
		atMost  float64
		atLeast float64
	}{
		{"/api/v1/imports/images", 3600, 60},
		{"/api/v1/imports/link", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, nil))

			require.Equal(t, http.StatusOK, w.Code)

			var body struct {
				Remaining float64 `json:"remaining"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.LessOrEqual(t, body.Remaining, tt.atMost)
			assert.Greater(t, body.Remaining, tt.atLeast)
		})
	}
}
