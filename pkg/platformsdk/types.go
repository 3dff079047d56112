package platformsdk

import "encoding/json"

// ============================================================================
// Error Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the wire shape of every error the platform API returns.
// Client code should work with the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "tenant_not_found")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Tenant Types
// ============================================================================

// CreateTenantRequest registers a new firm on the platform.
type CreateTenantRequest struct {
	// Name is the firm's display name (required, max 120 chars)
	Name string `json:"name"`

	// Subdomain is the firm's label on the shared serving domain
	// (required, 3-63 chars, lowercase alphanumeric and hyphens)
	Subdomain string `json:"subdomain"`

	// CustomDomain is an optional vanity host (e.g., "portal.firm.example")
	CustomDomain string `json:"custom_domain,omitempty"`

	// Plan is the billing tier: basic, professional or enterprise.
	// Defaults to basic when omitted.
	Plan string `json:"plan,omitempty"`

	// Settings, Integrations and Contact are free-form JSON objects the
	// platform stores verbatim. They default to {} when omitted.
	Settings     json.RawMessage `json:"settings,omitempty"`
	Integrations json.RawMessage `json:"integrations,omitempty"`
	Contact      json.RawMessage `json:"contact,omitempty"`
}

// UpdateTenantRequest is a partial update. Omitted (null) fields are left
// unchanged; an empty custom_domain string clears the vanity host. The
// subdomain, status and encryption key cannot be changed here.
type UpdateTenantRequest struct {
	Name         *string         `json:"name,omitempty"`
	CustomDomain *string         `json:"custom_domain,omitempty"`
	Plan         *string         `json:"plan,omitempty"`
	Settings     json.RawMessage `json:"settings,omitempty"`
	Integrations json.RawMessage `json:"integrations,omitempty"`
	Contact      json.RawMessage `json:"contact,omitempty"`
}

// SetTenantStatusRequest transitions a tenant's lifecycle state.
type SetTenantStatusRequest struct {
	// Status is one of: active, trial, inactive, suspended
	Status string `json:"status"`
}

// TenantResponse is the API view of a tenant. The tenant's encryption key
// never leaves the service, so it has no field here.
type TenantResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Subdomain    string          `json:"subdomain"`
	CustomDomain string          `json:"custom_domain,omitempty"`
	Status       string          `json:"status"`
	Plan         string          `json:"plan"`
	Settings     json.RawMessage `json:"settings"`
	Integrations json.RawMessage `json:"integrations"`
	Contact      json.RawMessage `json:"contact"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

// ListTenantsResponse wraps the tenant collection.
type ListTenantsResponse struct {
	Tenants []TenantResponse `json:"tenants"`
}

// ============================================================================
// Connection Pool Types
// ============================================================================

// ConnectionInfo describes one pooled tenant connection.
type ConnectionInfo struct {
	TenantID  string `json:"tenant_id"`
	Namespace string `json:"namespace"`
	CreatedAt string `json:"created_at"`
	LastUsed  string `json:"last_used"`
}

// PoolStatsResponse is a point-in-time snapshot of the connection pool.
type PoolStatsResponse struct {
	// Size is the number of live tenant connections
	Size int `json:"size"`

	// Draining is true while a coordinated shutdown is closing handles
	Draining bool `json:"draining"`

	// Connections lists the pooled handles, sorted by tenant ID
	Connections []ConnectionInfo `json:"connections"`
}

// ============================================================================
// Probe Types
// ============================================================================

// WhoamiResponse reports which tenant a request resolved to. It is served
// through the resolution gate, so the host header decides the answer.
type WhoamiResponse struct {
	TenantID  string `json:"tenant_id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Plan      string `json:"plan"`
	Namespace string `json:"namespace"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by the /livez and /readyz endpoints.
type HealthResponse struct {
	// Status is "ok" when healthy, "degraded" when a check failed
	Status string `json:"status"`

	// Uptime is how long the service has been running
	Uptime string `json:"uptime"`

	// Version is the service build version
	Version string `json:"version"`

	// Checks reports per-dependency health (readyz only)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each critical dependency.
type HealthChecks struct {
	// Database is "ok" or an error description for the global store
	Database string `json:"database"`

	// Pool is "ok", or "draining" while shutdown is closing connections
	Pool string `json:"pool"`
}
