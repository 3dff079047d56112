package platform_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/chambershq/chambers/pkg/platformsdk"
	"github.com/stretchr/testify/require"
)

// TestSubdomainResolution verifies a firm is reachable on its label under
// the shared serving domain, and that its workspace is provisioned on first
// touch.
func TestSubdomainResolution(t *testing.T) {
	baseURL, cleanup := setupPlatformContainer(t)
	defer cleanup()

	admin := adminClient(t, baseURL)
	created := createTenant(t, admin, platformsdk.CreateTenantRequest{
		Name:      "Harbour Chambers",
		Subdomain: "harbour",
	})

	firm := tenantClient(baseURL, "harbour."+servingDomain)

	who, err := firm.Whoami(t.Context())
	require.NoError(t, err, "Whoami should resolve via subdomain")
	require.Equal(t, created.ID, who.TenantID)
	require.Equal(t, "Harbour Chambers", who.Name)
	require.True(t, strings.HasPrefix(who.Namespace, "tenant_"), "Namespace should carry the tenant prefix, got %q", who.Namespace)

	t.Logf("Resolved %s to tenant %s (namespace %s)", "harbour."+servingDomain, who.TenantID, who.Namespace)
}

// TestCustomDomainResolution verifies a vanity host resolves to its firm.
func TestCustomDomainResolution(t *testing.T) {
	baseURL, cleanup := setupPlatformContainer(t)
	defer cleanup()

	admin := adminClient(t, baseURL)
	created := createTenant(t, admin, platformsdk.CreateTenantRequest{
		Name:         "Kestrel Law",
		Subdomain:    "kestrel",
		CustomDomain: "portal.kestrellaw.example",
	})

	// The vanity host resolves
	vanity := tenantClient(baseURL, "portal.kestrellaw.example")
	who, err := vanity.Whoami(t.Context())
	require.NoError(t, err, "Whoami should resolve via custom domain")
	require.Equal(t, created.ID, who.TenantID)

	// The shared-domain label still works alongside it
	shared := tenantClient(baseURL, "kestrel."+servingDomain)
	who2, err := shared.Whoami(t.Context())
	require.NoError(t, err)
	require.Equal(t, created.ID, who2.TenantID)

	t.Logf("Both portal.kestrellaw.example and kestrel.%s reach tenant %s", servingDomain, created.ID)
}

// TestUnknownHostRejected verifies a host no tenant owns gets a 404, not a
// fallback workspace.
func TestUnknownHostRejected(t *testing.T) {
	baseURL, cleanup := setupPlatformContainer(t)
	defer cleanup()

	ghost := tenantClient(baseURL, "nosuchfirm."+servingDomain)

	_, err := ghost.Whoami(t.Context())
	apiErr := assertAPIError(t, err, http.StatusNotFound, "Unknown host should 404")
	require.Equal(t, "tenant_not_found", apiErr.Code)

	t.Logf("Unknown host correctly rejected with 404")
}

// TestSuspendedTenantForbidden verifies suspension takes effect on the very
// next request and that reactivation restores service.
func TestSuspendedTenantForbidden(t *testing.T) {
	baseURL, cleanup := setupPlatformContainer(t)
	defer cleanup()

	admin := adminClient(t, baseURL)
	created := createTenant(t, admin, platformsdk.CreateTenantRequest{
		Name:      "Meridian Partners",
		Subdomain: "meridian",
	})

	firm := tenantClient(baseURL, "meridian."+servingDomain)

	// Serving while on trial
	_, err := firm.Whoami(t.Context())
	require.NoError(t, err, "Trial tenant should be served")

	// Suspend; the directory cache must not keep serving the old status
	_, err = admin.SetTenantStatus(t.Context(), created.ID, "suspended")
	require.NoError(t, err)

	_, err = firm.Whoami(t.Context())
	apiErr := assertAPIError(t, err, http.StatusForbidden, "Suspended tenant should be refused")
	require.Equal(t, "tenant_forbidden", apiErr.Code)

	// Reactivate and confirm service resumes
	_, err = admin.SetTenantStatus(t.Context(), created.ID, "active")
	require.NoError(t, err)

	who, err := firm.Whoami(t.Context())
	require.NoError(t, err, "Reactivated tenant should be served again")
	require.Equal(t, "active", who.Status)

	t.Logf("Suspension and reactivation take effect immediately")
}

// TestConnectionAdministration verifies the pool snapshot and eviction
// endpoints against real traffic.
func TestConnectionAdministration(t *testing.T) {
	baseURL, cleanup := setupPlatformContainer(t)
	defer cleanup()

	admin := adminClient(t, baseURL)
	created := createTenant(t, admin, platformsdk.CreateTenantRequest{
		Name:      "Oakfield Associates",
		Subdomain: "oakfield",
	})

	// Nothing pooled yet
	stats, err := admin.ListConnections(t.Context())
	require.NoError(t, err)
	require.Zero(t, stats.Size, "Pool should be empty before any tenant traffic")
	require.False(t, stats.Draining)

	// First touch provisions the workspace and pools its connection
	firm := tenantClient(baseURL, "oakfield."+servingDomain)
	_, err = firm.Whoami(t.Context())
	require.NoError(t, err)

	stats, err = admin.ListConnections(t.Context())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Size)
	require.Equal(t, created.ID, stats.Connections[0].TenantID)
	require.NotEmpty(t, stats.Connections[0].Namespace)
	require.NotEmpty(t, stats.Connections[0].LastUsed)

	// Administrative eviction
	err = admin.EvictConnection(t.Context(), created.ID)
	require.NoError(t, err, "Evicting a pooled connection should succeed")

	stats, err = admin.ListConnections(t.Context())
	require.NoError(t, err)
	require.Zero(t, stats.Size, "Pool should be empty after eviction")

	// Evicting again is a 404
	err = admin.EvictConnection(t.Context(), created.ID)
	apiErr := assertAPIError(t, err, http.StatusNotFound, "Double eviction should 404")
	require.Equal(t, "connection_not_found", apiErr.Code)

	// Traffic after eviction re-establishes transparently
	_, err = firm.Whoami(t.Context())
	require.NoError(t, err, "Tenant should be served again after eviction")

	stats, err = admin.ListConnections(t.Context())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Size, "Connection should be re-established on demand")

	t.Logf("Connection administration verified: snapshot, evict, re-establish")
}
