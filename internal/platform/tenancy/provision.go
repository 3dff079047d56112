package tenancy

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/chambershq/chambers/pkg/idx"
)

// DefaultNamespacePrefix is prepended to the lowercased tenant ULID to form
// its namespace. The prefix keeps tenant namespaces visually separate from
// anything else living in the same database.
const DefaultNamespacePrefix = "tenant_"

// Backend is the driver-side surface the tenancy layer builds on. The
// postgres driver maps namespaces to schemas; the sqlite driver maps them to
// database files. Both operations must be idempotent.
type Backend interface {
	EnsureNamespace(ctx context.Context, namespace string) error
	OpenNamespace(ctx context.Context, namespace string) (*sql.DB, error)
}

// Provisioner prepares a tenant's namespace and reports its name.
type Provisioner interface {
	EnsureSchema(ctx context.Context, tenantID string) (namespace string, err error)
}

// SchemaProvisioner derives a deterministic namespace from the tenant id and
// has the backend create it lazily, on the tenant's first request rather
// than at signup.
type SchemaProvisioner struct {
	Backend Backend
	Prefix  string // empty means DefaultNamespacePrefix
	Logger  *slog.Logger
}

// EnsureSchema validates the tenant id, derives the namespace and makes sure
// it exists with its baseline schema applied. Returns the namespace name.
func (p *SchemaProvisioner) EnsureSchema(ctx context.Context, tenantID string) (string, error) {
	id, err := idx.Parse(tenantID)
	if err != nil {
		return "", &ProvisionError{TenantID: tenantID, Err: err}
	}

	ns := p.Namespace(id)
	if err := p.Backend.EnsureNamespace(ctx, ns); err != nil {
		return "", &ProvisionError{TenantID: tenantID, Err: err}
	}

	if p.Logger != nil {
		p.Logger.Debug("tenant namespace ready", "tenant", tenantID, "namespace", ns)
	}
	return ns, nil
}

// Namespace is the deterministic mapping from tenant id to namespace name.
// Lowercased because Postgres folds unquoted identifiers.
func (p *SchemaProvisioner) Namespace(id idx.ID) string {
	prefix := p.Prefix
	if prefix == "" {
		prefix = DefaultNamespacePrefix
	}
	return prefix + id.Lower()
}
