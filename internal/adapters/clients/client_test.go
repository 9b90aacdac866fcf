package clients

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
)

func defaultConfig() *Config {
	return &Config{
		ServiceName: "gemini",
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: time.Millisecond,
			MaxInterval:     10 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Second,
			HalfOpenLimit: 2,
		},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate func(*Config)) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := defaultConfig()
	cfg.BaseURL = server.URL

	if mutate != nil {
		mutate(cfg)
	}

	client, err := New(cfg)
	require.NoError(t, err)

	return client
}

func closeBody(t *testing.T, resp *http.Response) {
	t.Helper()

	if err := resp.Body.Close(); err != nil {
		t.Errorf("failed to close response body: %v", err)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{name: "nil config", cfg: nil, wantErr: "config is required"},
		{name: "missing service name", cfg: &Config{}, wantErr: "service name is required"},
		{name: "valid", cfg: defaultConfig()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "gemini", client.ServiceName())
			assert.Equal(t, StateClosed, client.CircuitState())
		})
	}
}

func TestNew_TransportDefaults(t *testing.T) {
	client, err := New(defaultConfig())
	require.NoError(t, err)

	transport, ok := client.http.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, defaultMaxIdleConns, transport.MaxIdleConns)
	assert.Equal(t, defaultMaxIdleConnsPerHost, transport.MaxIdleConnsPerHost)
	assert.Equal(t, defaultIdleConnTimeout, transport.IdleConnTimeout)

	cfg := defaultConfig()
	cfg.Transport = config.TransportConfig{MaxIdleConns: 4, MaxIdleConnsPerHost: 2, IdleConnTimeout: time.Minute}

	client, err = New(cfg)
	require.NoError(t, err)

	transport = client.http.Transport.(*http.Transport)
	assert.Equal(t, 4, transport.MaxIdleConns)
	assert.Equal(t, 2, transport.MaxIdleConnsPerHost)
}

func TestClient_HeaderPropagation(t *testing.T) {
	var requestID, correlationID string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get(middleware.HeaderRequestID)
		correlationID = r.Header.Get(middleware.HeaderCorrelationID)
		w.WriteHeader(http.StatusOK)
	}, nil)

	ctx := middleware.ContextWithRequestID(context.Background(), "req-1")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-1")

	resp, err := client.Get(ctx, "/v1beta/models/test")
	require.NoError(t, err)
	closeBody(t, resp)

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "corr-1", correlationID)
}

func TestClient_Retry(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		maxAttempts  int
		wantStatus   int
		wantErr      error
		wantRequests int32
	}{
		{
			name:         "server error then success",
			statuses:     []int{500, 502, 200},
			maxAttempts:  3,
			wantStatus:   200,
			wantRequests: 3,
		},
		{
			name:         "rate limited then success",
			statuses:     []int{429, 200},
			maxAttempts:  3,
			wantStatus:   200,
			wantRequests: 2,
		},
		{
			name:         "client error is not retried",
			statuses:     []int{400},
			maxAttempts:  3,
			wantStatus:   400,
			wantRequests: 1,
		},
		{
			name:         "attempts exhausted",
			statuses:     []int{503, 503, 503},
			maxAttempts:  3,
			wantErr:      ErrMaxRetriesExceeded,
			wantRequests: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests int32

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				n := atomic.AddInt32(&requests, 1)
				w.WriteHeader(tt.statuses[min(int(n), len(tt.statuses))-1])
			}, func(cfg *Config) { cfg.Retry.MaxAttempts = tt.maxAttempts })

			resp, err := client.Get(context.Background(), "/x")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrRetryableStatus)
			} else {
				require.NoError(t, err)
				closeBody(t, resp)
				assert.Equal(t, tt.wantStatus, resp.StatusCode)
			}

			assert.Equal(t, tt.wantRequests, atomic.LoadInt32(&requests))
		})
	}
}

func TestClient_PostJSONReplaysBodyOnRetry(t *testing.T) {
	var (
		requests int32
		bodies   []string
	)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		if atomic.AddInt32(&requests, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		w.WriteHeader(http.StatusOK)
	}, nil)

	resp, err := client.PostJSON(context.Background(), "/generate", []byte(`{"q":1}`))
	require.NoError(t, err)
	closeBody(t, resp)

	assert.Equal(t, []string{`{"q":1}`, `{"q":1}`}, bodies)
}

func TestClient_AuthFuncCalledOnEveryAttempt(t *testing.T) {
	var (
		requests  int32
		authCalls int32
	)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		if atomic.AddInt32(&requests, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)

			return
		}

		w.WriteHeader(http.StatusOK)
	}, func(cfg *Config) {
		cfg.AuthFunc = func(r *http.Request) {
			atomic.AddInt32(&authCalls, 1)
			r.Header.Set("x-goog-api-key", "secret")
		}
	})

	resp, err := client.Get(context.Background(), "/x")
	require.NoError(t, err)
	closeBody(t, resp)

	assert.Equal(t, int32(2), atomic.LoadInt32(&authCalls))
}

func TestClient_CircuitBreakerShortCircuitsWhenOpen(t *testing.T) {
	var calls int32

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, func(cfg *Config) {
		cfg.Retry.MaxAttempts = 1
		cfg.Circuit.MaxFailures = 2
	})

	_, _ = client.Get(context.Background(), "/x")
	_, _ = client.Get(context.Background(), "/x")
	require.Equal(t, StateOpen, client.CircuitState())

	before := atomic.LoadInt32(&calls)

	_, err := client.Get(context.Background(), "/x")
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, before, atomic.LoadInt32(&calls))
}

func TestClient_ContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, "/x")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_BuildURL(t *testing.T) {
	cfg := defaultConfig()
	cfg.BaseURL = "https://generativelanguage.googleapis.com/"

	client, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/models", client.buildURL("/v1beta/models"))
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/models", client.buildURL("v1beta/models"))
}

func TestCalculateBackoff(t *testing.T) {
	cfg := defaultConfig()
	cfg.Retry.InitialInterval = 100 * time.Millisecond
	cfg.Retry.MaxInterval = time.Second
	cfg.Retry.JitterFactor = 0

	client, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, client.calculateBackoff(0))
	assert.Equal(t, 200*time.Millisecond, client.calculateBackoff(1))
	assert.Equal(t, 400*time.Millisecond, client.calculateBackoff(2))
	assert.Equal(t, time.Second, client.calculateBackoff(10))

	client.cfg.Retry.JitterFactor = 0.25
	assert.InDelta(t, float64(200*time.Millisecond), float64(client.calculateBackoff(1)), float64(50*time.Millisecond))
}

type testNetError struct{ timeout bool }

func (e testNetError) Error() string   { return "test net error" }
func (e testNetError) Timeout() bool   { return e.timeout }
func (e testNetError) Temporary() bool { return true }

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"net timeout", testNetError{timeout: true}, true},
		{"net non-timeout", testNetError{timeout: false}, false},
		{"connection refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableError(tt.err))
		})
	}
}
