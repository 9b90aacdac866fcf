package acl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/clients"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name      string
		resp      *http.Response
		clientErr error
		wantIs    error
		wantMsg   string
	}{
		{
			name:   "invalid argument",
			resp:   response(400, `{"error":{"code":400,"message":"bad image","status":"INVALID_ARGUMENT"}}`),
			wantIs: domain.ErrValidation, wantMsg: "bad image",
		},
		{
			name:   "unauthorized",
			resp:   response(401, `{}`),
			wantIs: domain.ErrUnavailable, wantMsg: "credentials rejected",
		},
		{
			name:   "permission denied status",
			resp:   response(400, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`),
			wantIs: domain.ErrUnavailable, wantMsg: "API key not valid",
		},
		{
			name:   "rate limited",
			resp:   response(429, `{"error":{"status":"RESOURCE_EXHAUSTED","message":"quota"}}`),
			wantIs: domain.ErrUnavailable, wantMsg: "rate limit",
		},
		{
			name:   "model not found",
			resp:   response(404, `{"error":{"code":404,"message":"models/x is not found","status":"NOT_FOUND"}}`),
			wantIs: domain.ErrUnavailable, wantMsg: "model not found",
		},
		{
			name:   "server error without body",
			resp:   response(500, ``),
			wantIs: domain.ErrUnavailable, wantMsg: "status 500",
		},
		{
			name:      "circuit open",
			clientErr: clients.ErrCircuitOpen,
			wantIs:    domain.ErrUnavailable, wantMsg: "circuit breaker open",
		},
		{
			name:      "retries exhausted",
			clientErr: fmt.Errorf("%w: boom", clients.ErrMaxRetriesExceeded),
			wantIs:    domain.ErrUnavailable, wantMsg: "retries exhausted",
		},
		{
			name:      "other transport error",
			clientErr: errors.New("dial failed"),
			wantIs:    domain.ErrUnavailable, wantMsg: "dial failed",
		},
		{
			name:      "deadline keeps its identity",
			clientErr: fmt.Errorf("POST /models: %w", context.DeadlineExceeded),
			wantIs:    context.DeadlineExceeded, wantMsg: "suggest icon",
		},
		{
			name:      "cancellation keeps its identity",
			clientErr: context.Canceled,
			wantIs:    context.Canceled, wantMsg: "suggest icon",
		},
		{
			name:   "nil response",
			wantIs: domain.ErrUnavailable, wantMsg: "no response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(tt.resp, tt.clientErr, "gemini", "suggest icon")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantIs)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestMapHTTPError_SuccessIsNil(t *testing.T) {
	assert.NoError(t, MapHTTPError(response(200, `{}`), nil, "gemini", "op"))
}

func TestParseErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		body       io.Reader
		wantNil    bool
		wantStatus string
	}{
		{name: "envelope", body: strings.NewReader(`{"error":{"code":400,"message":"m","status":"INVALID_ARGUMENT"}}`), wantStatus: StatusInvalidArgument},
		{name: "empty object", body: strings.NewReader(`{}`), wantNil: true},
		{name: "not json", body: strings.NewReader(`<html>`), wantNil: true},
		{name: "nil body", body: nil, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseErrorResponse(tt.body)
			if tt.wantNil {
				assert.Nil(t, got)

				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.wantStatus, got.Error.Status)
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	got, err := DecodeResponse[payload](strings.NewReader(`{"name":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "x", got.Name)

	_, err = DecodeResponse[payload](strings.NewReader(`{`))
	assert.Error(t, err)

	_, err = DecodeResponse[payload](nil)
	assert.Error(t, err)
}
