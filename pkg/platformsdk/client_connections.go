package platformsdk

import (
	"context"
	"net/http"
)

// Connection pool administration - requires platform scopes

// ListConnections returns a snapshot of the tenant connection pool.
// Requires: platform:read scope
func (c *Client) ListConnections(ctx context.Context) (*PoolStatsResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/platform/connections", nil, nil)
	if err != nil {
		return nil, err
	}

	var stats PoolStatsResponse
	if err := decodeJSON(resp, &stats, http.StatusOK); err != nil {
		return nil, err
	}

	return &stats, nil
}

// EvictConnection closes and removes the pooled connection for a tenant.
// The next request for that tenant re-establishes one from scratch.
// Requires: platform:write scope
func (c *Client) EvictConnection(ctx context.Context, tenantID string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/platform/connections/"+tenantID, nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
