package tenancy

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvalidationBusApply(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("drops cache entries for the changed tenant", func(t *testing.T) {
		tenants := &fakeTenants{}
		tn := activeTenant("acme", "portal.acmelaw.example")
		tenants.add(tn)
		reg := NewRegistry(RegistryConfig{Tenants: tenants})
		bus := NewInvalidationBus(nil, reg, nil)

		_, _, err := reg.FindBySubdomain(ctx, "acme")
		require.NoError(t, err)
		_, _, err = reg.FindByCustomDomain(ctx, "portal.acmelaw.example")
		require.NoError(t, err)
		require.Equal(t, 2, tenants.lookupCount())

		payload, err := json.Marshal(TenantChange{
			TenantID: tn.ID,
			Hosts:    []string{"acme", "portal.acmelaw.example"},
		})
		require.NoError(t, err)
		bus.apply(payload)

		_, _, err = reg.FindBySubdomain(ctx, "acme")
		require.NoError(t, err)
		_, _, err = reg.FindByCustomDomain(ctx, "portal.acmelaw.example")
		require.NoError(t, err)
		require.Equal(t, 4, tenants.lookupCount())
	})

	t.Run("malformed payloads are dropped", func(t *testing.T) {
		reg := NewRegistry(RegistryConfig{Tenants: &fakeTenants{}})
		bus := NewInvalidationBus(nil, reg, nil)
		bus.apply([]byte("{not json"))
	})
}

func TestInvalidationBusWithoutRedis(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("nil bus is safe", func(t *testing.T) {
		var bus *InvalidationBus
		require.NoError(t, bus.Publish(ctx, TenantChange{TenantID: "whatever"}))
		require.NoError(t, bus.Start(ctx))
		bus.Stop()
	})

	t.Run("nil client no-ops", func(t *testing.T) {
		bus := NewInvalidationBus(nil, nil, nil)
		require.NoError(t, bus.Publish(ctx, TenantChange{TenantID: "whatever"}))
		require.NoError(t, bus.Start(ctx))
		bus.Stop()
	})
}
