package store

import (
	"context"
	"errors"

	"github.com/chambershq/chambers/internal/platform/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface for the control-plane database,
// the one holding the tenant directory itself. Concrete drivers (sqlite,
// postgres) implement this. Per-tenant data never goes through here; it
// lives behind connection handles the tenancy pool hands out.
type Store interface {
	Tenants() Tenants

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Tenants interface {
	// CreateTenant inserts a new tenant (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the subdomain or custom domain is taken.
	CreateTenant(ctx context.Context, t domain.Tenant) error

	// GetTenantByID returns a tenant by id.
	GetTenantByID(ctx context.Context, id string) (domain.Tenant, error)

	// GetTenantBySubdomain is the shared-domain resolution path.
	GetTenantBySubdomain(ctx context.Context, subdomain string) (domain.Tenant, error)

	// GetTenantByCustomDomain is the vanity-domain resolution path.
	GetTenantByCustomDomain(ctx context.Context, host string) (domain.Tenant, error)

	// ListTenants returns tenants newest first, optionally filtered by status.
	// A zero status means no filter.
	ListTenants(ctx context.Context, status domain.TenantStatus) ([]domain.Tenant, error)

	// UpdateTenant persists name, custom domain, plan and the JSON blobs,
	// bumping updated_at. It never touches id, subdomain, status,
	// encryption_key or created_at; the subdomain is the tenant's identity
	// on the shared domain and is fixed at creation.
	UpdateTenant(ctx context.Context, t domain.Tenant) error

	// UpdateTenantStatus transitions the lifecycle state and bumps updated_at.
	UpdateTenantStatus(ctx context.Context, id string, status domain.TenantStatus) error
}
