package http

import (
	"net/http"

	"github.com/chambershq/chambers/internal/platform/tenancy"
	"github.com/chambershq/chambers/pkg/httpx"
	"github.com/chambershq/chambers/pkg/platformsdk"
)

// HandleWhoami handles GET /v1/whoami
//
// The route runs through the resolution gate, so reaching this handler means
// the Host header resolved to a serving tenant and a database handle is
// attached to the context. It reads both through the context accessors, the
// same seam every tenant-scoped handler uses.
//
//	@Summary		Resolve Tenant
//	@Description	Reports which tenant this request resolved to, based on the Host header.
//	@Description	Unknown hosts return 404 and suspended or inactive tenants 403, both from
//	@Description	the resolution gate before this handler runs.
//	@Tags			Probes
//	@Produce		json
//	@Success		200	{object}	platformsdk.WhoamiResponse	"resolved tenant"
//	@Failure		403	{object}	platformsdk.ErrorResponse	"tenant cannot serve"
//	@Failure		404	{object}	platformsdk.ErrorResponse	"no tenant matches this host"
//	@Failure		500	{object}	platformsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/whoami [get].
func HandleWhoami(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := tenancy.TenantFromContext(ctx)
	if !ok {
		// Bypassed hosts (localhost, IP literals) reach here with no
		// tenant; answer the same way the gate does for unknown hosts.
		httpx.WriteError(w, http.StatusNotFound, platformsdk.ErrorCodeTenantNotFound,
			"no tenant matches this host")
		return
	}

	response := platformsdk.WhoamiResponse{
		TenantID: tenant.ID,
		Name:     tenant.Name,
		Status:   string(tenant.Status),
		Plan:     string(tenant.Plan),
	}
	if handle, ok := tenancy.HandleFromContext(ctx); ok {
		response.Namespace = handle.Namespace
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
