package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/chambershq/chambers/internal/platform/service"
	"github.com/chambershq/chambers/internal/platform/store"
	"github.com/chambershq/chambers/internal/platform/tenancy"
	"github.com/chambershq/chambers/pkg/httpx"
	"github.com/chambershq/chambers/pkg/jwtx"
	"github.com/chambershq/chambers/pkg/slogx"

	_ "github.com/chambershq/chambers/api/platform" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	pool  *tenancy.Pool

	TenantService *service.TenantService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	pool *tenancy.Pool,
	gate *tenancy.Gate,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		pool:         pool,
		logger:       logger,
	}

	// Set default middleware chain. The gate runs inside the logging
	// middleware so resolution failures carry the request id, and every
	// non-bypassed route downstream sees a tenant-scoped context.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		gate.Middleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerTenants()
	r.registerConnections()
	r.registerWhoami()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Chambers Platform API
//	@version		0.1.0
//	@description	Control plane for the Chambers multi-tenant legal practice platform:
//	@description	tenant registration and lifecycle, host-based tenant resolution, and
//	@description	per-tenant database connection management.
//
//	@contact.name				Chambers Platform Team
//	@contact.url				https://github.com/chambershq/chambers
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token with platform scopes. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTenants() {
	h := &TenantsHandler{TenantService: r.TenantService}

	// POST /v1/platform/tenants - Create tenant (requires platform:write) - strict rate limit
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("platform:write"),
		httpx.RateLimitBySubject(httpx.StrictLimit),
	)

	// GET /v1/platform/tenants - List tenants (requires platform:read) - moderate rate limit
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("platform:read"),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	// GET /v1/platform/tenants/{id} - Get tenant (requires platform:read) - moderate rate limit
	securedGet := httpx.Chain(http.HandlerFunc(h.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("platform:read"),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	// PATCH /v1/platform/tenants/{id} - Update tenant (requires platform:write) - moderate rate limit
	securedUpdate := httpx.Chain(http.HandlerFunc(h.HandleUpdate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("platform:write"),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	// PUT /v1/platform/tenants/{id}/status - Transition status (requires platform:write) - moderate rate limit
	securedStatus := httpx.Chain(http.HandlerFunc(h.HandleSetStatus),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("platform:write"),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/platform/tenants", securedCreate)
	r.Mux.Handle("GET /v1/platform/tenants", securedList)
	r.Mux.Handle("GET /v1/platform/tenants/{id}", securedGet)
	r.Mux.Handle("PATCH /v1/platform/tenants/{id}", securedUpdate)
	r.Mux.Handle("PUT /v1/platform/tenants/{id}/status", securedStatus)
}

func (r *Router) registerConnections() {
	h := &ConnectionsHandler{Pool: r.pool}

	// GET /v1/platform/connections - Pool snapshot (requires platform:read) - moderate rate limit
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("platform:read"),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	// DELETE /v1/platform/connections/{id} - Evict a connection (requires platform:write) - moderate rate limit
	securedEvict := httpx.Chain(http.HandlerFunc(h.HandleEvict),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("platform:write"),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/platform/connections", securedList)
	r.Mux.Handle("DELETE /v1/platform/connections/{id}", securedEvict)
}

func (r *Router) registerWhoami() {
	// GET /v1/whoami - runs through the resolution gate like any tenant
	// route; no bearer token, the Host header is the credential surface.
	r.Mux.Handle("GET /v1/whoami",
		httpx.Chain(http.HandlerFunc(HandleWhoami),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.pool),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
