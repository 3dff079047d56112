package http

import (
	"net/http"
	"time"

	"github.com/chambershq/chambers/internal/platform/tenancy"
	"github.com/chambershq/chambers/pkg/httpx"
	"github.com/chambershq/chambers/pkg/platformsdk"
)

// ConnectionsHandler exposes the tenant connection pool to operators.
type ConnectionsHandler struct {
	Pool *tenancy.Pool
}

// HandleList handles GET /v1/platform/connections
//
//	@Summary		List Tenant Connections
//	@Description	Returns a snapshot of the tenant connection pool: every live handle with its
//	@Description	namespace, creation time and last use, plus whether the pool is draining.
//	@Tags			Connections
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token with platform:read scope"
//	@Success		200				{object}	platformsdk.PoolStatsResponse	"pool snapshot"
//	@Failure		401				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Failure		403				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/platform/connections [get].
func (h *ConnectionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	stats := h.Pool.Stats()

	response := platformsdk.PoolStatsResponse{
		Size:        stats.Size,
		Draining:    stats.Draining,
		Connections: make([]platformsdk.ConnectionInfo, len(stats.Handles)),
	}
	for i, handle := range stats.Handles {
		response.Connections[i] = platformsdk.ConnectionInfo{
			TenantID:  handle.TenantID,
			Namespace: handle.Namespace,
			CreatedAt: handle.CreatedAt.Format(time.RFC3339),
			LastUsed:  handle.LastUsed.Format(time.RFC3339),
		}
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleEvict handles DELETE /v1/platform/connections/{id}
//
//	@Summary		Evict Tenant Connection
//	@Description	Closes and removes the pooled connection for a tenant. The next request for
//	@Description	that tenant provisions and connects from scratch, which makes this the lever
//	@Description	for forcing a reconnect after database-side changes.
//	@Tags			Connections
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header	string	true	"Bearer token with platform:write scope"
//	@Param			id				path	string	true	"Tenant ID (ULID)"
//	@Success		204				"Connection evicted"
//	@Failure		401				{object}	platformsdk.ErrorResponse	"error, error_description"
//	@Failure		403				{object}	platformsdk.ErrorResponse	"error, error_description"
//	@Failure		404				{object}	platformsdk.ErrorResponse	"no pooled connection for this tenant"
//	@Router			/v1/platform/connections/{id} [delete].
func (h *ConnectionsHandler) HandleEvict(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("id")

	if !h.Pool.Evict(tenantID) {
		httpx.WriteJSON(w, http.StatusNotFound, platformsdk.ErrorResponse{
			Error:            platformsdk.ErrorCodeConnectionNotFound,
			ErrorDescription: "No pooled connection for this tenant",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
