package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chambershq/chambers/pkg/platformsdk"
)

func TestWhoamiResolvesByHost(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	admin := env.adminClient(t, "platform:read", "platform:write")

	pearson, err := admin.CreateTenant(ctx, platformsdk.CreateTenantRequest{
		Name:         "Pearson Hardman",
		Subdomain:    "pearson",
		CustomDomain: "portal.pearson.example",
	})
	require.NoError(t, err)

	zane, err := admin.CreateTenant(ctx, platformsdk.CreateTenantRequest{
		Name:      "Rand Kaldor Zane",
		Subdomain: "zane",
	})
	require.NoError(t, err)

	t.Run("custom domain wins", func(t *testing.T) {
		who, err := env.hostClient("portal.pearson.example").Whoami(ctx)
		require.NoError(t, err)
		require.Equal(t, pearson.ID, who.TenantID)
		require.Equal(t, "trial", who.Status)
		require.NotEmpty(t, who.Namespace)
	})

	t.Run("subdomain fallback on the shared domain", func(t *testing.T) {
		who, err := env.hostClient("zane.chambers.example").Whoami(ctx)
		require.NoError(t, err)
		require.Equal(t, zane.ID, who.TenantID)
	})

	t.Run("host lookup is case and port insensitive", func(t *testing.T) {
		who, err := env.hostClient("ZANE.Chambers.Example:8443").Whoami(ctx)
		require.NoError(t, err)
		require.Equal(t, zane.ID, who.TenantID)
	})

	t.Run("two label hosts never fall back to subdomain", func(t *testing.T) {
		_, err := env.hostClient("zane.example").Whoami(ctx)
		requireAPIError(t, err, http.StatusNotFound)
	})

	t.Run("unknown host", func(t *testing.T) {
		_, err := env.hostClient("ghost.chambers.example").Whoami(ctx)
		apiErr := requireAPIError(t, err, http.StatusNotFound)
		require.Equal(t, platformsdk.ErrorCodeTenantNotFound, apiErr.Code)
	})

	t.Run("bypassed ip host reports no tenant", func(t *testing.T) {
		// httptest URLs use 127.0.0.1, which the gate bypasses.
		probe := platformsdk.NewClient(env.server.URL, "")
		_, err := probe.Whoami(ctx)
		requireAPIError(t, err, http.StatusNotFound)
	})
}

func TestWhoamiHonoursTenantStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	admin := env.adminClient(t, "platform:read", "platform:write")

	tenant, err := admin.CreateTenant(ctx, platformsdk.CreateTenantRequest{
		Name:      "Litt Up",
		Subdomain: "littup",
	})
	require.NoError(t, err)

	probe := env.hostClient("littup.chambers.example")

	// Trial tenants serve.
	who, err := probe.Whoami(ctx)
	require.NoError(t, err)
	require.Equal(t, tenant.ID, who.TenantID)

	// Suspension bites on the very next request, not a cache TTL later.
	_, err = admin.SetTenantStatus(ctx, tenant.ID, "suspended")
	require.NoError(t, err)

	_, err = probe.Whoami(ctx)
	apiErr := requireAPIError(t, err, http.StatusForbidden)
	require.Equal(t, platformsdk.ErrorCodeTenantForbidden, apiErr.Code)

	// Reinstating restores service.
	_, err = admin.SetTenantStatus(ctx, tenant.ID, "active")
	require.NoError(t, err)

	who, err = probe.Whoami(ctx)
	require.NoError(t, err)
	require.Equal(t, "active", who.Status)
}
