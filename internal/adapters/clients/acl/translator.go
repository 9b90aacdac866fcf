package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quotevault/internal/adapters/clients"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// BaseAdapter holds the client and name shared by adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter returns a BaseAdapter reporting errors as serviceName.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{client: client, serviceName: serviceName}
}

// ServiceName returns the name used in errors and health checks.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Client returns the underlying client.
func (a *BaseAdapter) Client() *clients.Client {
	return a.client
}

// PostJSON marshals in, posts it to path and decodes a 2xx body into T.
// Failures come back as domain errors.
func PostJSON[T any](ctx context.Context, a *BaseAdapter, path string, in any, operation string) (*T, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("%s: encoding request: %w", operation, err)
	}

	resp, err := a.client.PostJSON(ctx, path, body)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, MapHTTPError(resp, nil, a.serviceName, operation)
	}

	out, err := DecodeResponse[T](resp.Body)
	if err != nil {
		return nil, domain.NewUnavailableError(a.serviceName, fmt.Sprintf("%s: %v", operation, err))
	}

	return out, nil
}

// DecodeResponse decodes a JSON body into T.
func DecodeResponse[T any](body io.Reader) (*T, error) {
	if body == nil {
		return nil, fmt.Errorf("response body is nil")
	}

	var out T
	if err := json.NewDecoder(io.LimitReader(body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &out, nil
}
