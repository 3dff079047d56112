package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chambershq/chambers/internal/platform/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func TestBackendEnsureAndOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backend := sqlite.NewBackend(dir, 4, 2)

	require.NoError(t, backend.EnsureNamespace(ctx, "tenant_abc123"))

	// The namespace is a file on disk.
	_, err := os.Stat(filepath.Join(dir, "tenant_abc123.db"))
	require.NoError(t, err)

	db, err := backend.OpenNamespace(ctx, "tenant_abc123")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// Baseline tables exist and are usable.
	_, err = db.ExecContext(ctx, `INSERT INTO clients (id, full_name) VALUES ('c1', 'Jess Pearson')`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n))
	require.Equal(t, 1, n)

	for _, table := range []string{"matters", "hearings", "documents", "invoices"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestBackendEnsureIsIdempotent(t *testing.T) {
	ctx := context.Background()
	backend := sqlite.NewBackend(t.TempDir(), 4, 2)

	require.NoError(t, backend.EnsureNamespace(ctx, "tenant_repeat"))

	db, err := backend.OpenNamespace(ctx, "tenant_repeat")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO clients (id, full_name) VALUES ('c1', 'Mike Ross')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Running ensure again must not reset existing data.
	require.NoError(t, backend.EnsureNamespace(ctx, "tenant_repeat"))

	db, err = backend.OpenNamespace(ctx, "tenant_repeat")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestBackendNamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	backend := sqlite.NewBackend(t.TempDir(), 4, 2)

	require.NoError(t, backend.EnsureNamespace(ctx, "tenant_one"))
	require.NoError(t, backend.EnsureNamespace(ctx, "tenant_two"))

	one, err := backend.OpenNamespace(ctx, "tenant_one")
	require.NoError(t, err)
	t.Cleanup(func() { _ = one.Close() })

	two, err := backend.OpenNamespace(ctx, "tenant_two")
	require.NoError(t, err)
	t.Cleanup(func() { _ = two.Close() })

	_, err = one.ExecContext(ctx, `INSERT INTO clients (id, full_name) VALUES ('c1', 'Only In One')`)
	require.NoError(t, err)

	var n int
	require.NoError(t, two.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n))
	require.Zero(t, n, "tenant_two must not see tenant_one rows")
}

func TestBackendRejectsBadNamespaces(t *testing.T) {
	ctx := context.Background()
	backend := sqlite.NewBackend(t.TempDir(), 4, 2)

	for _, ns := range []string{"", "../escape", "UPPER", "tenant one", "tenant;drop"} {
		require.Error(t, backend.EnsureNamespace(ctx, ns), "namespace %q", ns)

		_, err := backend.OpenNamespace(ctx, ns)
		require.Error(t, err, "namespace %q", ns)
	}
}
