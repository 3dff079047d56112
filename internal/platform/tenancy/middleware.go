package tenancy

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/chambershq/chambers/pkg/httpx"
	"github.com/chambershq/chambers/pkg/slogx"
)

// DefaultBypassPrefixes lists the paths served without tenant
// resolution: the platform admin API, health probes and swagger docs.
var DefaultBypassPrefixes = []string{
	"/v1/platform/",
	"/livez",
	"/readyz",
	"/swagger/",
}

// GateConfig carries the collaborators for NewGate.
type GateConfig struct {
	Registry *Registry
	Pool     *Pool
	Logger   *slog.Logger

	// BypassPrefixes replaces DefaultBypassPrefixes when non-nil.
	BypassPrefixes []string
}

// Gate resolves the tenant for each request from the Host header and
// attaches the tenant and its pooled connection to the request context
// before downstream handlers run. Platform surfaces bypass resolution
// by path prefix; localhost and bare IP literals bypass it by host.
type Gate struct {
	registry *Registry
	pool     *Pool
	logger   *slog.Logger
	bypass   []string
}

// NewGate builds a Gate from cfg.
func NewGate(cfg GateConfig) *Gate {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	bypass := cfg.BypassPrefixes
	if bypass == nil {
		bypass = DefaultBypassPrefixes
	}
	return &Gate{
		registry: cfg.Registry,
		pool:     cfg.Pool,
		logger:   logger,
		bypass:   bypass,
	}
}

// Middleware returns the resolution gate as net/http middleware.
//
// Per request: bypass by path or host, then custom-domain lookup, then
// subdomain fallback on hosts with at least three labels. A miss is a
// 404, a tenant that cannot serve is a 403 with no connection work
// performed, and a connection failure is an opaque 500 with the detail
// kept to the server log.
func (g *Gate) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range g.bypass {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			host := NormalizeHost(r.Host)
			if host == "localhost" || IsIPLiteral(host) {
				next.ServeHTTP(w, r)
				return
			}

			log := slogx.FromContext(r.Context())

			tenant, found, err := g.registry.FindByCustomDomain(r.Context(), host)
			if err != nil {
				log.Error("tenant lookup failed",
					"host", host,
					"error", err,
				)
				httpx.WriteError(w, http.StatusInternalServerError, "server_error",
					"an internal error occurred")
				return
			}
			if !found {
				if label, ok := SubdomainLabel(host); ok {
					tenant, found, err = g.registry.FindBySubdomain(r.Context(), label)
					if err != nil {
						log.Error("tenant lookup failed",
							"host", host,
							"subdomain", label,
							"error", err,
						)
						httpx.WriteError(w, http.StatusInternalServerError, "server_error",
							"an internal error occurred")
						return
					}
				}
			}
			if !found {
				httpx.WriteError(w, http.StatusNotFound, "tenant_not_found",
					"no tenant matches this host")
				return
			}

			if !tenant.Status.CanServe() {
				httpx.WriteError(w, http.StatusForbidden, "tenant_forbidden",
					"this workspace is not accepting requests")
				return
			}

			handle, err := g.pool.Get(r.Context(), tenant.ID)
			if err != nil {
				log.Error("tenant connection unavailable",
					"tenant_id", tenant.ID,
					"host", host,
					"error", err,
				)
				httpx.WriteError(w, http.StatusInternalServerError, "server_error",
					"an internal error occurred")
				return
			}

			ctx := WithTenant(r.Context(), tenant, handle)
			ctx = slogx.WithContext(ctx, log.With("tenant", tenant.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
