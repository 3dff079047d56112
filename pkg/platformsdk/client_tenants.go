package platformsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Tenant administration - requires platform:read or platform:write scopes

// CreateTenant registers a new tenant.
// Requires: platform:write scope
func (c *Client) CreateTenant(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/platform/tenants", bytes.NewReader(body), headers)
	if err != nil {
		return nil, err
	}

	var tenant TenantResponse
	if err := decodeJSON(resp, &tenant, http.StatusCreated); err != nil {
		return nil, err
	}

	return &tenant, nil
}

// ListTenants returns all tenants, newest first. A non-empty status narrows
// the list to that lifecycle state.
// Requires: platform:read scope
func (c *Client) ListTenants(ctx context.Context, status string) (*ListTenantsResponse, error) {
	path := "/v1/platform/tenants"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var list ListTenantsResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}

	return &list, nil
}

// GetTenant fetches one tenant by ID.
// Requires: platform:read scope
func (c *Client) GetTenant(ctx context.Context, id string) (*TenantResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/platform/tenants/"+id, nil, nil)
	if err != nil {
		return nil, err
	}

	var tenant TenantResponse
	if err := decodeJSON(resp, &tenant, http.StatusOK); err != nil {
		return nil, err
	}

	return &tenant, nil
}

// UpdateTenant applies a partial update to a tenant. Nil fields in req are
// left unchanged.
// Requires: platform:write scope
func (c *Client) UpdateTenant(ctx context.Context, id string, req UpdateTenantRequest) (*TenantResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}

	resp, err := c.doRequest(ctx, http.MethodPatch, "/v1/platform/tenants/"+id, bytes.NewReader(body), headers)
	if err != nil {
		return nil, err
	}

	var tenant TenantResponse
	if err := decodeJSON(resp, &tenant, http.StatusOK); err != nil {
		return nil, err
	}

	return &tenant, nil
}

// SetTenantStatus transitions a tenant's lifecycle state.
// Requires: platform:write scope
func (c *Client) SetTenantStatus(ctx context.Context, id, status string) (*TenantResponse, error) {
	body, err := json.Marshal(SetTenantStatusRequest{Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}

	resp, err := c.doRequest(ctx, http.MethodPut, "/v1/platform/tenants/"+id+"/status", bytes.NewReader(body), headers)
	if err != nil {
		return nil, err
	}

	var tenant TenantResponse
	if err := decodeJSON(resp, &tenant, http.StatusOK); err != nil {
		return nil, err
	}

	return &tenant, nil
}
