package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Health reports record store connectivity. A disconnected store is
// returned as a HealthResponse, not an error.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/health", nil, &health)
	if err == nil {
		return &health, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.IsUnavailable() {
		_ = json.Unmarshal(apiErr.Details, &health)
		if health.Status == "" {
			health.Status = "disconnected"
		}
		return &health, nil
	}
	return nil, err
}

// Ping is a simple liveness test
func (c *Client) Ping(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, "/healthz", nil, nil)
}
