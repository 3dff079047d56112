package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/chambershq/chambers/internal/platform/domain"
	"github.com/chambershq/chambers/internal/platform/store"
	"github.com/chambershq/chambers/internal/platform/tenancy"
	"github.com/chambershq/chambers/pkg/idx"
	"github.com/chambershq/chambers/pkg/slogx"
)

var (
	ErrTenantNotFound   = errors.New("tenant not found")
	ErrSubdomainTaken   = errors.New("subdomain is already taken")
	ErrDomainTaken      = errors.New("custom domain is already taken")
	ErrInvalidName      = errors.New("tenant name is required (max 120 characters)")
	ErrInvalidSubdomain = errors.New("subdomain must be 3-63 lowercase alphanumeric characters or hyphens, not starting or ending with a hyphen")
	ErrInvalidDomain    = errors.New("custom domain must be a valid hostname with at least two labels")
	ErrInvalidPlan      = errors.New("plan must be one of basic, professional, enterprise")
	ErrInvalidStatus    = errors.New("status must be one of active, inactive, suspended, trial")
	ErrInvalidBlob      = errors.New("settings, integrations and contact must be JSON objects")
)

var (
	subdomainRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
	hostLabelRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

	// reservedSubdomains are labels the platform itself answers on; handing
	// them to a tenant would shadow platform surfaces on the shared domain.
	reservedSubdomains = map[string]struct{}{
		"www":      {},
		"api":      {},
		"app":      {},
		"admin":    {},
		"platform": {},
		"status":   {},
	}
)

// TenantService owns the write side of the tenant directory. The tenancy
// registry only ever reads; every mutation funnels through here so cache
// invalidation and key assignment cannot be skipped.
type TenantService struct {
	Store    store.Store
	Registry *tenancy.Registry
	Bus      *tenancy.InvalidationBus
}

// CreateTenantParams carries the operator-supplied fields for a new firm.
type CreateTenantParams struct {
	Name         string
	Subdomain    string
	CustomDomain string
	Plan         string
	Settings     json.RawMessage
	Integrations json.RawMessage
	Contact      json.RawMessage
}

// UpdateTenantParams carries a partial update. Nil pointers leave the field
// alone; a pointer to the empty string clears the custom domain.
type UpdateTenantParams struct {
	Name         *string
	CustomDomain *string
	Plan         *string
	Settings     json.RawMessage
	Integrations json.RawMessage
	Contact      json.RawMessage
}

// CreateTenant validates the params, assigns an ID and the tenant's sealed
// encryption key, and persists the record. New tenants start on the trial
// status; the plan defaults to basic.
func (s *TenantService) CreateTenant(ctx context.Context, p CreateTenantParams) (domain.Tenant, error) {
	l := slogx.FromContext(ctx)

	name := strings.TrimSpace(p.Name)
	if name == "" || len(name) > 120 {
		return domain.Tenant{}, ErrInvalidName
	}

	subdomain := strings.ToLower(strings.TrimSpace(p.Subdomain))
	if err := validateSubdomain(subdomain); err != nil {
		return domain.Tenant{}, err
	}

	customDomain, err := normalizeCustomDomain(p.CustomDomain)
	if err != nil {
		return domain.Tenant{}, err
	}

	plan := domain.PlanBasic
	if p.Plan != "" {
		plan = domain.PlanTier(strings.ToLower(p.Plan))
		if !plan.Valid() {
			return domain.Tenant{}, ErrInvalidPlan
		}
	}

	settings, err := normalizeBlob(p.Settings)
	if err != nil {
		return domain.Tenant{}, err
	}
	integrations, err := normalizeBlob(p.Integrations)
	if err != nil {
		return domain.Tenant{}, err
	}
	contact, err := normalizeBlob(p.Contact)
	if err != nil {
		return domain.Tenant{}, err
	}

	now := time.Now().UTC()
	tenant := domain.Tenant{
		ID:           idx.New().String(),
		Name:         name,
		Subdomain:    subdomain,
		CustomDomain: customDomain,
		Status:       domain.StatusTrial,
		Plan:         plan,
		Settings:     settings,
		Integrations: integrations,
		Contact:      contact,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The secret rides along on the first insert; it is never written again.
	if err := assignEncryptionKey(&tenant); err != nil {
		l.Error("failed to assign tenant encryption key", "error", err)
		return domain.Tenant{}, err
	}

	if err := s.Store.Tenants().CreateTenant(ctx, tenant); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Tenant{}, s.classifyConflict(ctx, subdomain, customDomain)
		}
		l.Error("failed to create tenant", "error", err, "subdomain", subdomain)
		return domain.Tenant{}, err
	}

	l.Info("tenant created",
		"tenant_id", tenant.ID,
		"subdomain", tenant.Subdomain,
		"plan", string(tenant.Plan),
	)
	return tenant, nil
}

// GetTenant fetches one tenant by id.
func (s *TenantService) GetTenant(ctx context.Context, id string) (domain.Tenant, error) {
	t, err := s.Store.Tenants().GetTenantByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Tenant{}, ErrTenantNotFound
	}
	return t, err
}

// ListTenants returns tenants newest first. A non-empty status narrows the
// list to that lifecycle state.
func (s *TenantService) ListTenants(ctx context.Context, status string) ([]domain.Tenant, error) {
	filter := domain.TenantStatus("")
	if status != "" {
		filter = domain.TenantStatus(strings.ToLower(status))
		if !filter.Valid() {
			return nil, ErrInvalidStatus
		}
	}
	return s.Store.Tenants().ListTenants(ctx, filter)
}

// UpdateTenant applies a partial update to name, plan, custom domain and the
// JSON blobs. The subdomain, status and encryption key are never touched
// here; status has its own transition path and the key is write-once.
func (s *TenantService) UpdateTenant(ctx context.Context, id string, p UpdateTenantParams) (domain.Tenant, error) {
	l := slogx.FromContext(ctx)

	tenant, err := s.GetTenant(ctx, id)
	if err != nil {
		return domain.Tenant{}, err
	}
	oldDomain := tenant.CustomDomain

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" || len(name) > 120 {
			return domain.Tenant{}, ErrInvalidName
		}
		tenant.Name = name
	}
	if p.CustomDomain != nil {
		customDomain, err := normalizeCustomDomain(*p.CustomDomain)
		if err != nil {
			return domain.Tenant{}, err
		}
		tenant.CustomDomain = customDomain
	}
	if p.Plan != nil {
		plan := domain.PlanTier(strings.ToLower(*p.Plan))
		if !plan.Valid() {
			return domain.Tenant{}, ErrInvalidPlan
		}
		tenant.Plan = plan
	}
	if p.Settings != nil {
		settings, err := normalizeBlob(p.Settings)
		if err != nil {
			return domain.Tenant{}, err
		}
		tenant.Settings = settings
	}
	if p.Integrations != nil {
		integrations, err := normalizeBlob(p.Integrations)
		if err != nil {
			return domain.Tenant{}, err
		}
		tenant.Integrations = integrations
	}
	if p.Contact != nil {
		contact, err := normalizeBlob(p.Contact)
		if err != nil {
			return domain.Tenant{}, err
		}
		tenant.Contact = contact
	}
	tenant.UpdatedAt = time.Now().UTC()

	if err := s.Store.Tenants().UpdateTenant(ctx, tenant); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.Tenant{}, ErrTenantNotFound
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.Tenant{}, ErrDomainTaken
		}
		l.Error("failed to update tenant", "error", err, "tenant_id", id)
		return domain.Tenant{}, err
	}

	// The old domain may now belong to nobody and the new one to this
	// tenant; drop both everywhere.
	s.invalidate(ctx, tenant.ID, oldDomain, tenant.CustomDomain, tenant.Subdomain)

	l.Info("tenant updated", "tenant_id", tenant.ID)
	return tenant, nil
}

// SetTenantStatus transitions the tenant's lifecycle state. Suspending takes
// effect on other nodes as soon as the invalidation lands, not a cache TTL
// later.
func (s *TenantService) SetTenantStatus(ctx context.Context, id, status string) (domain.Tenant, error) {
	l := slogx.FromContext(ctx)

	target := domain.TenantStatus(strings.ToLower(strings.TrimSpace(status)))
	if !target.Valid() {
		return domain.Tenant{}, ErrInvalidStatus
	}

	tenant, err := s.GetTenant(ctx, id)
	if err != nil {
		return domain.Tenant{}, err
	}

	if err := s.Store.Tenants().UpdateTenantStatus(ctx, id, target); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Tenant{}, ErrTenantNotFound
		}
		l.Error("failed to update tenant status", "error", err, "tenant_id", id)
		return domain.Tenant{}, err
	}
	tenant.Status = target
	tenant.UpdatedAt = time.Now().UTC()

	s.invalidate(ctx, tenant.ID, tenant.Subdomain, tenant.CustomDomain)

	l.Info("tenant status changed",
		"tenant_id", tenant.ID,
		"status", string(target),
	)
	return tenant, nil
}

// invalidate drops the tenant's registry cache entries locally and tells
// every other node to do the same. Publish failures are logged, not fatal:
// the registry TTL still caps staleness on nodes that missed the message.
func (s *TenantService) invalidate(ctx context.Context, tenantID string, hosts ...string) {
	var cleaned []string
	for _, h := range hosts {
		if h != "" {
			cleaned = append(cleaned, h)
		}
	}

	if s.Registry != nil {
		s.Registry.Invalidate(tenantID, cleaned...)
	}
	if err := s.Bus.Publish(ctx, tenancy.TenantChange{TenantID: tenantID, Hosts: cleaned}); err != nil {
		slogx.FromContext(ctx).Warn("failed to publish tenant change",
			"tenant_id", tenantID,
			"error", err,
		)
	}
}

// classifyConflict decides which unique constraint fired on create. Two
// lookups after the fact beat parsing driver-specific constraint names.
func (s *TenantService) classifyConflict(ctx context.Context, subdomain, customDomain string) error {
	if _, err := s.Store.Tenants().GetTenantBySubdomain(ctx, subdomain); err == nil {
		return ErrSubdomainTaken
	}
	if customDomain != "" {
		if _, err := s.Store.Tenants().GetTenantByCustomDomain(ctx, customDomain); err == nil {
			return ErrDomainTaken
		}
	}
	return ErrSubdomainTaken
}

func validateSubdomain(subdomain string) error {
	if len(subdomain) < 3 || len(subdomain) > 63 || !subdomainRe.MatchString(subdomain) {
		return ErrInvalidSubdomain
	}
	if _, reserved := reservedSubdomains[subdomain]; reserved {
		return ErrInvalidSubdomain
	}
	return nil
}

// normalizeCustomDomain lowercases and validates an optional vanity host.
// Empty input means the tenant serves from the shared domain only.
func normalizeCustomDomain(host string) (string, error) {
	host = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(host, ".")))
	if host == "" {
		return "", nil
	}
	if len(host) > 253 {
		return "", ErrInvalidDomain
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return "", ErrInvalidDomain
	}
	for _, label := range labels {
		if len(label) == 0 || len(label) > 63 || !hostLabelRe.MatchString(label) {
			return "", ErrInvalidDomain
		}
	}
	return host, nil
}

// normalizeBlob validates that a free-form blob is a JSON object. The core
// never looks inside these; it only refuses to store garbage.
func normalizeBlob(blob json.RawMessage) (json.RawMessage, error) {
	if len(blob) == 0 {
		return domain.EmptyJSON, nil
	}
	var obj map[string]any
	if err := json.Unmarshal(blob, &obj); err != nil {
		return nil, ErrInvalidBlob
	}
	return blob, nil
}
