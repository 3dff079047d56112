package platformsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client is a client for the Chambers platform API. It covers the tenant
// administration endpoints (which need a bearer token with platform scopes),
// the health probes, and the tenant-resolution probe.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Token is the bearer token sent on every request. Leave empty for
	// unauthenticated endpoints (/livez, /readyz, /v1/whoami).
	Token string

	// Host overrides the Host header on every request. Tenant resolution
	// is host-driven, so pointing BaseURL at the server and setting Host
	// to a tenant's serving domain exercises resolution exactly the way
	// a request through the load balancer would.
	Host string
}

// NewClient creates a platform API client. token may be empty when only
// unauthenticated endpoints will be called.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}
