package tenancy

import (
	"context"
	"database/sql"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultMaxEntries caps how many tenant connections the pool holds
	// before evicting the least recently used one.
	DefaultMaxEntries = 256

	// DefaultIdleTTL is how long a handle may sit unused before the
	// sweeper closes it.
	DefaultIdleTTL = 30 * time.Minute

	// DefaultConnectTimeout bounds schema provisioning plus the first
	// ping when establishing a tenant connection.
	DefaultConnectTimeout = 10 * time.Second
)

// Handle is a live, tenant-scoped database connection. The DB is pinned
// to the tenant's namespace, so queries through it cannot reach another
// tenant's rows.
type Handle struct {
	TenantID  string
	Namespace string
	DB        *sql.DB
	CreatedAt time.Time

	lastUsed atomic.Int64
}

func (h *Handle) touch(now time.Time) {
	h.lastUsed.Store(now.UnixNano())
}

// LastUsed reports when the handle was last returned from Get.
func (h *Handle) LastUsed() time.Time {
	return time.Unix(0, h.lastUsed.Load())
}

// HandleStat is a point-in-time view of one pooled connection.
type HandleStat struct {
	TenantID  string    `json:"tenant_id"`
	Namespace string    `json:"namespace"`
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used"`
}

// PoolStats summarises the pool for the admin connections endpoint.
type PoolStats struct {
	Size     int          `json:"size"`
	Draining bool         `json:"draining"`
	Handles  []HandleStat `json:"handles"`
}

// PoolConfig carries the dependencies and tunables for NewPool.
type PoolConfig struct {
	Provisioner Provisioner
	Backend     Backend
	Logger      *slog.Logger

	// Clock defaults to the wall clock. Tests swap in a mock.
	Clock clock.Clock

	// MaxEntries bounds the number of pooled handles; zero means
	// unbounded. IdleTTL is the sweeper's idle cutoff; zero disables
	// idle eviction.
	MaxEntries int
	IdleTTL    time.Duration

	// ConnectTimeout bounds provisioning plus the first ping; zero
	// means DefaultConnectTimeout.
	ConnectTimeout time.Duration
}

// Pool caches one database handle per tenant. Concurrent Gets for the
// same tenant share a single establishment, lookups on a warm handle do
// no I/O, and failed establishments are never cached.
type Pool struct {
	provisioner Provisioner
	backend     Backend
	logger      *slog.Logger
	clock       clock.Clock

	maxEntries     int
	idleTTL        time.Duration
	connectTimeout time.Duration

	group singleflight.Group

	mu       sync.RWMutex
	handles  map[string]*Handle
	draining bool
}

// NewPool builds a Pool from cfg, filling defaults for anything unset.
func NewPool(cfg PoolConfig) *Pool {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}

	return &Pool{
		provisioner:    cfg.Provisioner,
		backend:        cfg.Backend,
		logger:         logger,
		clock:          clk,
		maxEntries:     cfg.MaxEntries,
		idleTTL:        cfg.IdleTTL,
		connectTimeout: connectTimeout,
		handles:        make(map[string]*Handle),
	}
}

// IdleTTL reports the configured idle cutoff, for the sweeper.
func (p *Pool) IdleTTL() time.Duration {
	return p.idleTTL
}

// Get returns the pooled handle for tenantID, establishing one if
// needed. Establishment runs provisioning and the first ping once no
// matter how many callers arrive at the same time; every waiter gets
// the same handle or the same error. Callers that give up early via ctx
// do not abort the establishment for the others.
func (p *Pool) Get(ctx context.Context, tenantID string) (*Handle, error) {
	p.mu.RLock()
	if p.draining {
		p.mu.RUnlock()
		return nil, ErrPoolDraining
	}
	if h, ok := p.handles[tenantID]; ok {
		p.mu.RUnlock()
		h.touch(p.clock.Now())
		return h, nil
	}
	p.mu.RUnlock()

	resCh := p.group.DoChan(tenantID, func() (interface{}, error) {
		return p.establish(tenantID)
	})

	select {
	case res := <-resCh:
		if res.Err != nil {
			return nil, res.Err
		}
		h := res.Val.(*Handle)
		h.touch(p.clock.Now())
		return h, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// establish provisions the tenant's namespace, opens a connection into
// it and installs the handle. It runs on a detached context so a caller
// that hangs up cannot poison the result for the waiters sharing the
// flight.
func (p *Pool) establish(tenantID string) (*Handle, error) {
	p.mu.RLock()
	if p.draining {
		p.mu.RUnlock()
		return nil, ErrPoolDraining
	}
	if h, ok := p.handles[tenantID]; ok {
		p.mu.RUnlock()
		return h, nil
	}
	p.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), p.connectTimeout)
	defer cancel()

	namespace, err := p.provisioner.EnsureSchema(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	db, err := p.backend.OpenNamespace(ctx, namespace)
	if err != nil {
		return nil, &ConnectionError{TenantID: tenantID, Namespace: namespace, Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &ConnectionError{TenantID: tenantID, Namespace: namespace, Err: err}
	}

	now := p.clock.Now()
	h := &Handle{
		TenantID:  tenantID,
		Namespace: namespace,
		DB:        db,
		CreatedAt: now,
	}
	h.touch(now)

	var evicted []*Handle

	p.mu.Lock()
	if p.draining {
		p.mu.Unlock()
		db.Close()
		return nil, ErrPoolDraining
	}
	if existing, ok := p.handles[tenantID]; ok {
		p.mu.Unlock()
		db.Close()
		return existing, nil
	}
	evicted = p.evictForCapacityLocked()
	p.handles[tenantID] = h
	p.mu.Unlock()

	// Close can block on in-flight queries, so it happens outside the lock.
	for _, old := range evicted {
		p.closeHandle(old, "capacity")
	}

	p.logger.Debug("tenant connection established",
		"tenant_id", tenantID,
		"namespace", namespace,
	)
	return h, nil
}

// evictForCapacityLocked removes least recently used handles until one
// slot is free. Caller holds the write lock; returned handles are still
// open and must be closed by the caller.
func (p *Pool) evictForCapacityLocked() []*Handle {
	if p.maxEntries <= 0 {
		return nil
	}
	var evicted []*Handle
	for len(p.handles) >= p.maxEntries {
		var oldest *Handle
		for _, h := range p.handles {
			if oldest == nil || h.lastUsed.Load() < oldest.lastUsed.Load() {
				oldest = h
			}
		}
		if oldest == nil {
			break
		}
		delete(p.handles, oldest.TenantID)
		evicted = append(evicted, oldest)
	}
	return evicted
}

// Evict closes and removes the handle for tenantID if present. It
// reports whether a handle was evicted.
func (p *Pool) Evict(tenantID string) bool {
	p.mu.Lock()
	h, ok := p.handles[tenantID]
	if ok {
		delete(p.handles, tenantID)
	}
	p.mu.Unlock()

	if !ok {
		return false
	}
	p.closeHandle(h, "evicted")
	return true
}

// EvictIdle closes every handle whose last use is older than the
// cutoff and reports how many were closed.
func (p *Pool) EvictIdle(olderThan time.Time) int {
	cutoff := olderThan.UnixNano()

	var idle []*Handle
	p.mu.Lock()
	for id, h := range p.handles {
		if h.lastUsed.Load() < cutoff {
			delete(p.handles, id)
			idle = append(idle, h)
		}
	}
	p.mu.Unlock()

	for _, h := range idle {
		p.closeHandle(h, "idle")
	}
	return len(idle)
}

// CloseAll drains the pool: concurrent Gets fail with ErrPoolDraining
// while handles are being closed, and once CloseAll returns the pool
// accepts Gets again, re-establishing connections on demand.
func (p *Pool) CloseAll() error {
	p.mu.Lock()
	p.draining = true
	snapshot := p.handles
	p.handles = make(map[string]*Handle)
	p.mu.Unlock()

	var result *multierror.Error
	for _, h := range snapshot {
		if err := h.DB.Close(); err != nil {
			result = multierror.Append(result, &ConnectionError{
				TenantID:  h.TenantID,
				Namespace: h.Namespace,
				Err:       err,
			})
			p.logger.Warn("failed to close tenant connection",
				"tenant_id", h.TenantID,
				"namespace", h.Namespace,
				"error", err,
			)
			continue
		}
		p.logger.Debug("tenant connection closed",
			"tenant_id", h.TenantID,
			"namespace", h.Namespace,
			"reason", "drain",
		)
	}

	p.mu.Lock()
	p.draining = false
	p.mu.Unlock()

	return result.ErrorOrNil()
}

// Stats snapshots the pool for the admin connections endpoint. Handles
// are sorted by tenant ID so output is stable.
func (p *Pool) Stats() PoolStats {
	p.mu.RLock()
	stats := PoolStats{
		Size:     len(p.handles),
		Draining: p.draining,
		Handles:  make([]HandleStat, 0, len(p.handles)),
	}
	for _, h := range p.handles {
		stats.Handles = append(stats.Handles, HandleStat{
			TenantID:  h.TenantID,
			Namespace: h.Namespace,
			CreatedAt: h.CreatedAt,
			LastUsed:  h.LastUsed(),
		})
	}
	p.mu.RUnlock()

	sort.Slice(stats.Handles, func(i, j int) bool {
		return stats.Handles[i].TenantID < stats.Handles[j].TenantID
	})
	return stats
}

func (p *Pool) closeHandle(h *Handle, reason string) {
	if err := h.DB.Close(); err != nil {
		p.logger.Warn("failed to close tenant connection",
			"tenant_id", h.TenantID,
			"namespace", h.Namespace,
			"reason", reason,
			"error", err,
		)
		return
	}
	p.logger.Debug("tenant connection closed",
		"tenant_id", h.TenantID,
		"namespace", h.Namespace,
		"reason", reason,
	)
}
