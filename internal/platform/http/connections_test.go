package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chambershq/chambers/pkg/platformsdk"
)

func TestConnectionAdministration(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	admin := env.adminClient(t, "platform:read", "platform:write")

	tenant, err := admin.CreateTenant(ctx, platformsdk.CreateTenantRequest{
		Name:      "Gordon Schmidt Van Dyke",
		Subdomain: "gsvd",
	})
	require.NoError(t, err)

	t.Run("pool starts empty", func(t *testing.T) {
		stats, err := admin.ListConnections(ctx)
		require.NoError(t, err)
		require.Zero(t, stats.Size)
		require.False(t, stats.Draining)
		require.Empty(t, stats.Connections)
	})

	t.Run("serving a tenant request pools a connection", func(t *testing.T) {
		_, err := env.hostClient("gsvd.chambers.example").Whoami(ctx)
		require.NoError(t, err)

		stats, err := admin.ListConnections(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, stats.Size)
		require.Equal(t, tenant.ID, stats.Connections[0].TenantID)
		require.NotEmpty(t, stats.Connections[0].Namespace)
		require.NotEmpty(t, stats.Connections[0].LastUsed)
	})

	t.Run("evict closes the handle", func(t *testing.T) {
		require.NoError(t, admin.EvictConnection(ctx, tenant.ID))

		stats, err := admin.ListConnections(ctx)
		require.NoError(t, err)
		require.Zero(t, stats.Size)
	})

	t.Run("evicting an absent connection is a 404", func(t *testing.T) {
		err := admin.EvictConnection(ctx, tenant.ID)
		apiErr := requireAPIError(t, err, http.StatusNotFound)
		require.Equal(t, platformsdk.ErrorCodeConnectionNotFound, apiErr.Code)
	})

	t.Run("next request re-establishes from scratch", func(t *testing.T) {
		who, err := env.hostClient("gsvd.chambers.example").Whoami(ctx)
		require.NoError(t, err)
		require.Equal(t, tenant.ID, who.TenantID)

		stats, err := admin.ListConnections(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, stats.Size)
	})
}
