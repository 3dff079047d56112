package tenancy

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/chambershq/chambers/internal/platform/domain"
	"github.com/chambershq/chambers/internal/platform/store"
)

// DefaultRegistryTTL bounds how stale a cached tenant record can get.
// Mutations invalidate locally (and over the bus when configured), so the
// TTL only matters for peers that missed an invalidation.
const DefaultRegistryTTL = 30 * time.Second

type RegistryConfig struct {
	Tenants store.Tenants
	Logger  *slog.Logger
	Clock   clock.Clock   // nil means wall clock
	TTL     time.Duration // zero means DefaultRegistryTTL
}

// Registry resolves hosts to tenant records with a small read-through cache
// in front of the store. Lookups are absence-tolerant: an unknown host is a
// (zero, false, nil) result, not an error; errors mean the store itself broke.
type Registry struct {
	tenants store.Tenants
	log     *slog.Logger
	clock   clock.Clock
	ttl     time.Duration

	mu          sync.Mutex
	byDomain    map[string]cacheEntry
	bySubdomain map[string]cacheEntry
}

type cacheEntry struct {
	tenant  domain.Tenant
	expires time.Time
}

func NewRegistry(cfg RegistryConfig) *Registry {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultRegistryTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Registry{
		tenants:     cfg.Tenants,
		log:         cfg.Logger,
		clock:       cfg.Clock,
		ttl:         cfg.TTL,
		byDomain:    make(map[string]cacheEntry),
		bySubdomain: make(map[string]cacheEntry),
	}
}

// FindByCustomDomain resolves a full host like "portal.firm.example" against
// tenants' vanity domains.
func (r *Registry) FindByCustomDomain(ctx context.Context, host string) (domain.Tenant, bool, error) {
	host = strings.ToLower(host)
	if host == "" {
		return domain.Tenant{}, false, nil
	}

	if t, ok := r.cached(r.byDomain, host); ok {
		return t, true, nil
	}

	t, err := r.tenants.GetTenantByCustomDomain(ctx, host)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Tenant{}, false, nil
	}
	if err != nil {
		return domain.Tenant{}, false, err
	}

	r.insert(r.byDomain, host, t)
	return t, true, nil
}

// FindBySubdomain resolves the leftmost label of a shared-domain host.
func (r *Registry) FindBySubdomain(ctx context.Context, subdomain string) (domain.Tenant, bool, error) {
	subdomain = strings.ToLower(subdomain)
	if subdomain == "" {
		return domain.Tenant{}, false, nil
	}

	if t, ok := r.cached(r.bySubdomain, subdomain); ok {
		return t, true, nil
	}

	t, err := r.tenants.GetTenantBySubdomain(ctx, subdomain)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Tenant{}, false, nil
	}
	if err != nil {
		return domain.Tenant{}, false, err
	}

	r.insert(r.bySubdomain, subdomain, t)
	return t, true, nil
}

// Invalidate drops cached entries for a tenant: the given hosts (old or new
// subdomain/custom domain values) plus anything cached under the tenant's id.
// Unknown hosts are fine; over-invalidation just costs one store read.
func (r *Registry) Invalidate(tenantID string, hosts ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range hosts {
		h = strings.ToLower(h)
		if h == "" {
			continue
		}
		delete(r.byDomain, h)
		delete(r.bySubdomain, h)
	}

	if tenantID == "" {
		return
	}
	for k, e := range r.byDomain {
		if e.tenant.ID == tenantID {
			delete(r.byDomain, k)
		}
	}
	for k, e := range r.bySubdomain {
		if e.tenant.ID == tenantID {
			delete(r.bySubdomain, k)
		}
	}
}

func (r *Registry) cached(m map[string]cacheEntry, key string) (domain.Tenant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := m[key]
	if !ok {
		return domain.Tenant{}, false
	}
	if r.clock.Now().After(e.expires) {
		delete(m, key)
		return domain.Tenant{}, false
	}
	return e.tenant, true
}

func (r *Registry) insert(m map[string]cacheEntry, key string, t domain.Tenant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m[key] = cacheEntry{tenant: t, expires: r.clock.Now().Add(r.ttl)}
}
