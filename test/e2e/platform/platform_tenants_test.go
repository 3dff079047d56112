package platform_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/chambershq/chambers/pkg/platformsdk"
	"github.com/stretchr/testify/require"
)

// TestTenantLifecycle walks a firm through registration, lookup, update and
// status transitions over the wire.
func TestTenantLifecycle(t *testing.T) {
	baseURL, cleanup := setupPlatformContainer(t)
	defer cleanup()

	admin := adminClient(t, baseURL)

	// Register a firm
	created := createTenant(t, admin, platformsdk.CreateTenantRequest{
		Name:      "Greenwood & Sons",
		Subdomain: "greenwood",
		Plan:      "professional",
		Settings:  json.RawMessage(`{"billing_cycle":"monthly"}`),
	})

	require.Equal(t, "greenwood", created.Subdomain)
	require.Equal(t, "trial", created.Status, "New tenants should start on trial")
	require.Equal(t, "professional", created.Plan)
	t.Logf("Created tenant %s", created.ID)

	// Fetch it back
	fetched, err := admin.GetTenant(t.Context(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)
	require.JSONEq(t, `{"billing_cycle":"monthly"}`, string(fetched.Settings))

	// Partial update: rename without touching anything else
	newName := "Greenwood Legal"
	updated, err := admin.UpdateTenant(t.Context(), created.ID, platformsdk.UpdateTenantRequest{
		Name: &newName,
	})
	require.NoError(t, err)
	require.Equal(t, newName, updated.Name)
	require.Equal(t, "greenwood", updated.Subdomain, "Subdomain should be immutable")
	require.Equal(t, "professional", updated.Plan, "Plan should be untouched")

	// Activate
	activated, err := admin.SetTenantStatus(t.Context(), created.ID, "active")
	require.NoError(t, err)
	require.Equal(t, "active", activated.Status)

	// List with and without the status filter
	all, err := admin.ListTenants(t.Context(), "")
	require.NoError(t, err)
	require.Len(t, all.Tenants, 1)

	active, err := admin.ListTenants(t.Context(), "active")
	require.NoError(t, err)
	require.Len(t, active.Tenants, 1)

	trial, err := admin.ListTenants(t.Context(), "trial")
	require.NoError(t, err)
	require.Empty(t, trial.Tenants)

	t.Logf("Tenant lifecycle completed: trial -> active")
}

// TestTenantValidationAndConflicts verifies the admin API rejects bad input
// and duplicate identities.
func TestTenantValidationAndConflicts(t *testing.T) {
	baseURL, cleanup := setupPlatformContainer(t)
	defer cleanup()

	admin := adminClient(t, baseURL)

	// Reserved subdomain
	_, err := admin.CreateTenant(t.Context(), platformsdk.CreateTenantRequest{
		Name:      "Impostor LLP",
		Subdomain: "admin",
	})
	apiErr := assertAPIError(t, err, http.StatusBadRequest, "Reserved subdomain should be rejected")
	require.Equal(t, "invalid_request", apiErr.Code)

	// Occupy a subdomain, then collide with it
	createTenant(t, admin, platformsdk.CreateTenantRequest{
		Name:      "First Movers",
		Subdomain: "firstmovers",
	})

	_, err = admin.CreateTenant(t.Context(), platformsdk.CreateTenantRequest{
		Name:      "Second Movers",
		Subdomain: "firstmovers",
	})
	apiErr = assertAPIError(t, err, http.StatusConflict, "Duplicate subdomain should conflict")
	require.Equal(t, "subdomain_taken", apiErr.Code)
	require.True(t, platformsdk.IsConflict(err))

	t.Logf("Validation and conflict handling verified")
}

// TestPlatformAuthRequired verifies platform admin routes reject missing,
// garbage and under-scoped tokens.
func TestPlatformAuthRequired(t *testing.T) {
	baseURL, cleanup := setupPlatformContainer(t)
	defer cleanup()

	// No token at all
	anon := platformsdk.NewClient(baseURL, "")
	_, err := anon.ListTenants(t.Context(), "")
	assertAPIError(t, err, http.StatusUnauthorized, "Missing token should be rejected")

	// Garbage token
	garbage := platformsdk.NewClient(baseURL, "not-a-jwt")
	_, err = garbage.ListTenants(t.Context(), "")
	assertAPIError(t, err, http.StatusUnauthorized, "Garbage token should be rejected")

	// Valid token, wrong scope
	readOnly := platformsdk.NewClient(baseURL, mintToken(t, "e2e-readonly", "platform:read"))
	_, err = readOnly.CreateTenant(t.Context(), platformsdk.CreateTenantRequest{
		Name:      "Scope Probe",
		Subdomain: "scopeprobe",
	})
	assertAPIError(t, err, http.StatusForbidden, "Read-only token should not create tenants")

	t.Logf("Platform admin surface correctly enforces bearer auth and scopes")
}
