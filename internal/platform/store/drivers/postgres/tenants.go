package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/chambershq/chambers/internal/platform/domain"
	"github.com/chambershq/chambers/internal/platform/store"
)

type tenantsRepo struct {
	db *sql.DB
}

const tenantColumns = `id, name, subdomain, custom_domain, status, plan, encryption_key,
	settings, integrations, contact, created_at, updated_at`

func (r *tenantsRepo) CreateTenant(ctx context.Context, t domain.Tenant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tenants (`+tenantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID,
		t.Name,
		t.Subdomain,
		mapStringNull(t.CustomDomain),
		string(t.Status),
		string(t.Plan),
		t.EncryptionKey,
		blobOrEmpty(t.Settings),
		blobOrEmpty(t.Integrations),
		blobOrEmpty(t.Contact),
		t.CreatedAt,
		t.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *tenantsRepo) GetTenantByID(ctx context.Context, id string) (domain.Tenant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	return scanTenant(row)
}

func (r *tenantsRepo) GetTenantBySubdomain(ctx context.Context, subdomain string) (domain.Tenant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+tenantColumns+` FROM tenants WHERE subdomain = $1`, subdomain)
	return scanTenant(row)
}

func (r *tenantsRepo) GetTenantByCustomDomain(ctx context.Context, host string) (domain.Tenant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+tenantColumns+` FROM tenants WHERE custom_domain = $1`, host)
	return scanTenant(row)
}

func (r *tenantsRepo) ListTenants(ctx context.Context, status domain.TenantStatus) ([]domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *tenantsRepo) UpdateTenant(ctx context.Context, t domain.Tenant) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tenants
		SET name = $1, custom_domain = $2, plan = $3,
		    settings = $4, integrations = $5, contact = $6, updated_at = $7
		WHERE id = $8`,
		t.Name,
		mapStringNull(t.CustomDomain),
		string(t.Plan),
		blobOrEmpty(t.Settings),
		blobOrEmpty(t.Integrations),
		blobOrEmpty(t.Contact),
		t.UpdatedAt,
		t.ID,
	)
	if err != nil {
		return mapConflict(err)
	}
	return mapNoRows(res)
}

func (r *tenantsRepo) UpdateTenantStatus(ctx context.Context, id string, status domain.TenantStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tenants SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return mapNoRows(res)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTenant(row scanner) (domain.Tenant, error) {
	var (
		t            domain.Tenant
		customDomain sql.NullString
		status, plan string
		settings     []byte
		integrations []byte
		contact      []byte
	)

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Subdomain,
		&customDomain,
		&status,
		&plan,
		&t.EncryptionKey,
		&settings,
		&integrations,
		&contact,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}

	t.CustomDomain = mapNullString(customDomain)
	t.Status = domain.TenantStatus(status)
	t.Plan = domain.PlanTier(plan)
	t.Settings = json.RawMessage(settings)
	t.Integrations = json.RawMessage(integrations)
	t.Contact = json.RawMessage(contact)
	return t, nil
}

func mapNoRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func blobOrEmpty(j json.RawMessage) string {
	if len(j) == 0 {
		return string(domain.EmptyJSON)
	}
	return string(j)
}
