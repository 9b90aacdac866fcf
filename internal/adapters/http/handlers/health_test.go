package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/mocks"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func healthRouter(t *testing.T, registry ports.HealthRegistry, info BuildInfo) *gin.Engine {
	t.Helper()

	router := gin.New()
	NewHealthHandler(registry, info).RegisterHealthRoutesOnEngine(router)

	return router
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("1.0.0", "abc123", "2026-01-15T10:00:00Z")

	assert.Equal(t, "1.0.0", bi.Version)
	assert.Equal(t, "abc123", bi.Commit)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
	assert.Empty(t, bi.Storage)
}

func TestHealthHandler_Liveness(t *testing.T) {
	router := healthRouter(t, mocks.NewMockHealthRegistry(t), BuildInfo{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name           string
		result         *ports.HealthResult
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "all checks healthy",
			result: &ports.HealthResult{
				Status: ports.HealthStatusHealthy,
				Checks: map[string]*ports.CheckResult{
					"blobstore": {Status: ports.HealthStatusHealthy},
					"gemini":    {Status: ports.HealthStatusHealthy},
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"healthy"`,
		},
		{
			name: "classifier degraded still ready",
			result: &ports.HealthResult{
				Status: ports.HealthStatusDegraded,
				Checks: map[string]*ports.CheckResult{
					"blobstore": {Status: ports.HealthStatusHealthy},
					"gemini":    {Status: ports.HealthStatusDegraded, Message: "no API key configured"},
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "no API key configured",
		},
		{
			name: "store unhealthy",
			result: &ports.HealthResult{
				Status: ports.HealthStatusUnhealthy,
				Checks: map[string]*ports.CheckResult{
					"blobstore": {Status: ports.HealthStatusUnhealthy, Message: "directory missing"},
				},
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"status":"unhealthy"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.result)

			router := healthRouter(t, registry, BuildInfo{})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestHealthHandler_BuildInfo(t *testing.T) {
	info := NewBuildInfo("1.2.3", "def456", "2026-02-01T12:00:00Z")
	info.Storage = "sqlite"

	router := healthRouter(t, mocks.NewMockHealthRegistry(t), info)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/build", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, info, resp)
}

func TestHealthHandler_Metrics(t *testing.T) {
	router := healthRouter(t, mocks.NewMockHealthRegistry(t), BuildInfo{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}
