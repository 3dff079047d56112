package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chambershq/chambers/internal/platform/domain"
	"github.com/chambershq/chambers/internal/platform/store"
	"github.com/chambershq/chambers/internal/platform/store/drivers/postgres"
	"github.com/chambershq/chambers/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres spins up a throwaway postgres container. Requires a local
// Docker daemon; run with -short to skip.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "chambers",
			"POSTGRES_PASSWORD": "chambers",
			"POSTGRES_DB":       "chambers_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://chambers:chambers@%s:%s/chambers_test?sslmode=disable", host, port.Port())
}

func TestPostgresStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	dsn := startPostgres(t)

	s, err := postgres.NewStore(postgres.Config{DSN: dsn, TenantMaxConns: 2, TenantMaxIdle: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(ctx))

	now := time.Now().UTC()
	tenant := domain.Tenant{
		ID:            idx.New().String(),
		Name:          "Specter Litt",
		Subdomain:     "specterlitt",
		CustomDomain:  "portal.specterlitt.example",
		Status:        domain.StatusActive,
		Plan:          domain.PlanEnterprise,
		EncryptionKey: "c2VhbGVkLWtleQ==",
		Settings:      domain.EmptyJSON,
		Integrations:  domain.EmptyJSON,
		Contact:       domain.EmptyJSON,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	t.Run("tenant directory round trip", func(t *testing.T) {
		require.NoError(t, s.Tenants().CreateTenant(ctx, tenant))

		got, err := s.Tenants().GetTenantBySubdomain(ctx, "specterlitt")
		require.NoError(t, err)
		require.Equal(t, tenant.ID, got.ID)
		require.Equal(t, domain.StatusActive, got.Status)

		got, err = s.Tenants().GetTenantByCustomDomain(ctx, "portal.specterlitt.example")
		require.NoError(t, err)
		require.Equal(t, tenant.ID, got.ID)

		_, err = s.Tenants().GetTenantBySubdomain(ctx, "absent")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate subdomain maps to ErrAlreadyExists", func(t *testing.T) {
		dup := tenant
		dup.ID = idx.New().String()
		dup.CustomDomain = ""
		require.ErrorIs(t, s.Tenants().CreateTenant(ctx, dup), store.ErrAlreadyExists)
	})

	nsOne := "tenant_" + idx.New().Lower()
	nsTwo := "tenant_" + idx.New().Lower()

	t.Run("ensure namespace provisions schema and baseline", func(t *testing.T) {
		require.NoError(t, s.EnsureNamespace(ctx, nsOne))
		require.NoError(t, s.EnsureNamespace(ctx, nsTwo))

		// Idempotent re-run.
		require.NoError(t, s.EnsureNamespace(ctx, nsOne))

		db, err := s.OpenNamespace(ctx, nsOne)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		// search_path resolves unqualified names inside the tenant schema.
		var schema string
		require.NoError(t, db.QueryRowContext(ctx, `SELECT current_schema()`).Scan(&schema))
		require.Equal(t, nsOne, schema)

		_, err = db.ExecContext(ctx, `INSERT INTO clients (id, full_name) VALUES ('c1', 'Rachel Zane')`)
		require.NoError(t, err)

		// Migration bookkeeping lives inside the tenant schema.
		var n int
		require.NoError(t, db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM information_schema.tables
			WHERE table_schema = $1 AND table_name = 'schema_migrations'`, nsOne).Scan(&n))
		require.Equal(t, 1, n)
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		db, err := s.OpenNamespace(ctx, nsTwo)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		var n int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n))
		require.Zero(t, n, "second namespace must not see first namespace rows")
	})

	t.Run("bad namespace is rejected before touching the database", func(t *testing.T) {
		require.Error(t, s.EnsureNamespace(ctx, `tenant";DROP TABLE tenants;--`))
		_, err := s.OpenNamespace(ctx, "Tenant_Upper")
		require.Error(t, err)
	})
}
