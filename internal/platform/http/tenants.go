package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/chambershq/chambers/internal/platform/domain"
	"github.com/chambershq/chambers/internal/platform/service"
	"github.com/chambershq/chambers/pkg/httpx"
	"github.com/chambershq/chambers/pkg/platformsdk"
	"github.com/chambershq/chambers/pkg/slogx"
)

// TenantsHandler handles all tenant administration endpoints.
type TenantsHandler struct {
	TenantService *service.TenantService
}

// HandleCreate handles POST /v1/platform/tenants
//
//	@Summary		Register Tenant
//	@Description	Registers a new firm on the platform. The tenant starts in trial status with an
//	@Description	assigned ULID and a sealed per-tenant encryption key; the key never appears in responses.
//	@Tags			Tenants
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token with platform:write scope"
//	@Param			request			body		platformsdk.CreateTenantRequest	true	"Tenant registration request"
//	@Success		201				{object}	platformsdk.TenantResponse		"the created tenant"
//	@Failure		400				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Failure		401				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Failure		403				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Failure		409				{object}	platformsdk.ErrorResponse		"subdomain or custom domain already taken"
//	@Failure		500				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/platform/tenants [post].
func (h *TenantsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req platformsdk.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, platformsdk.ErrorResponse{
			Error:            platformsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	tenant, err := h.TenantService.CreateTenant(ctx, service.CreateTenantParams{
		Name:         req.Name,
		Subdomain:    req.Subdomain,
		CustomDomain: req.CustomDomain,
		Plan:         req.Plan,
		Settings:     req.Settings,
		Integrations: req.Integrations,
		Contact:      req.Contact,
	})
	if err != nil {
		writeTenantServiceError(w, r, err, "create tenant")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, tenantResponse(tenant))
}

// HandleList handles GET /v1/platform/tenants
//
//	@Summary		List Tenants
//	@Description	Returns all tenants, newest first. The optional status query narrows the list
//	@Description	to one lifecycle state (active, trial, inactive, suspended).
//	@Tags			Tenants
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token with platform:read scope"
//	@Param			status			query		string							false	"Filter by lifecycle status"
//	@Success		200				{object}	platformsdk.ListTenantsResponse	"List of tenants"
//	@Failure		400				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Failure		401				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Failure		403				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Failure		500				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/platform/tenants [get].
func (h *TenantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenants, err := h.TenantService.ListTenants(ctx, r.URL.Query().Get("status"))
	if err != nil {
		writeTenantServiceError(w, r, err, "list tenants")
		return
	}

	response := platformsdk.ListTenantsResponse{
		Tenants: make([]platformsdk.TenantResponse, len(tenants)),
	}
	for i, tenant := range tenants {
		response.Tenants[i] = tenantResponse(tenant)
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleGet handles GET /v1/platform/tenants/{id}
//
//	@Summary		Get Tenant
//	@Description	Returns one tenant by ID.
//	@Tags			Tenants
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token with platform:read scope"
//	@Param			id				path		string						true	"Tenant ID (ULID)"
//	@Success		200				{object}	platformsdk.TenantResponse	"the tenant"
//	@Failure		401				{object}	platformsdk.ErrorResponse	"error, error_description"
//	@Failure		403				{object}	platformsdk.ErrorResponse	"error, error_description"
//	@Failure		404				{object}	platformsdk.ErrorResponse	"error, error_description"
//	@Failure		500				{object}	platformsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/platform/tenants/{id} [get].
func (h *TenantsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, err := h.TenantService.GetTenant(ctx, r.PathValue("id"))
	if err != nil {
		writeTenantServiceError(w, r, err, "get tenant")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tenantResponse(tenant))
}

// HandleUpdate handles PATCH /v1/platform/tenants/{id}
//
//	@Summary		Update Tenant
//	@Description	Applies a partial update to a tenant's name, plan, custom domain or metadata blobs.
//	@Description	The subdomain, status and encryption key cannot be changed through this endpoint.
//	@Tags			Tenants
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token with platform:write scope"
//	@Param			id				path		string							true	"Tenant ID (ULID)"
//	@Param			request			body		platformsdk.UpdateTenantRequest	true	"Fields to update (omitted fields are unchanged)"
//	@Success		200				{object}	platformsdk.TenantResponse		"the updated tenant"
//	@Failure		400				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Failure		401				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Failure		403				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Failure		404				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Failure		409				{object}	platformsdk.ErrorResponse		"custom domain already taken"
//	@Failure		500				{object}	platformsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/platform/tenants/{id} [patch].
func (h *TenantsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req platformsdk.UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, platformsdk.ErrorResponse{
			Error:            platformsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	tenant, err := h.TenantService.UpdateTenant(ctx, r.PathValue("id"), service.UpdateTenantParams{
		Name:         req.Name,
		CustomDomain: req.CustomDomain,
		Plan:         req.Plan,
		Settings:     req.Settings,
		Integrations: req.Integrations,
		Contact:      req.Contact,
	})
	if err != nil {
		writeTenantServiceError(w, r, err, "update tenant")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tenantResponse(tenant))
}

// HandleSetStatus handles PUT /v1/platform/tenants/{id}/status
//
//	@Summary		Set Tenant Status
//	@Description	Transitions a tenant's lifecycle state. Suspending or deactivating takes effect on
//	@Description	the serving path immediately; cached host resolutions are invalidated on every node.
//	@Tags			Tenants
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string								true	"Bearer token with platform:write scope"
//	@Param			id				path		string								true	"Tenant ID (ULID)"
//	@Param			request			body		platformsdk.SetTenantStatusRequest	true	"Target status"
//	@Success		200				{object}	platformsdk.TenantResponse			"the updated tenant"
//	@Failure		400				{object}	platformsdk.ErrorResponse			"error, error_description"
//	@Failure		401				{object}	platformsdk.ErrorResponse			"error, error_description"
//	@Failure		403				{object}	platformsdk.ErrorResponse			"error, error_description"
//	@Failure		404				{object}	platformsdk.ErrorResponse			"error, error_description"
//	@Failure		500				{object}	platformsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/platform/tenants/{id}/status [put].
func (h *TenantsHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req platformsdk.SetTenantStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, platformsdk.ErrorResponse{
			Error:            platformsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	tenant, err := h.TenantService.SetTenantStatus(ctx, r.PathValue("id"), req.Status)
	if err != nil {
		writeTenantServiceError(w, r, err, "set tenant status")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tenantResponse(tenant))
}

// tenantResponse converts a tenant record to its API shape. The encryption
// key is deliberately absent.
func tenantResponse(t domain.Tenant) platformsdk.TenantResponse {
	return platformsdk.TenantResponse{
		ID:           t.ID,
		Name:         t.Name,
		Subdomain:    t.Subdomain,
		CustomDomain: t.CustomDomain,
		Status:       string(t.Status),
		Plan:         string(t.Plan),
		Settings:     t.Settings,
		Integrations: t.Integrations,
		Contact:      t.Contact,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
}

// writeTenantServiceError maps tenant service sentinels onto the API error
// contract: validation failures are 400s, missing tenants 404, uniqueness
// conflicts 409, anything else an opaque 500.
func writeTenantServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, service.ErrTenantNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, platformsdk.ErrorResponse{
			Error:            platformsdk.ErrorCodeTenantNotFound,
			ErrorDescription: "Tenant not found",
		})
	case errors.Is(err, service.ErrSubdomainTaken):
		httpx.WriteJSON(w, http.StatusConflict, platformsdk.ErrorResponse{
			Error:            platformsdk.ErrorCodeSubdomainTaken,
			ErrorDescription: "Subdomain is already taken",
		})
	case errors.Is(err, service.ErrDomainTaken):
		httpx.WriteJSON(w, http.StatusConflict, platformsdk.ErrorResponse{
			Error:            platformsdk.ErrorCodeDomainTaken,
			ErrorDescription: "Custom domain is already taken",
		})
	case errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidSubdomain),
		errors.Is(err, service.ErrInvalidDomain),
		errors.Is(err, service.ErrInvalidPlan),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidBlob):
		httpx.WriteJSON(w, http.StatusBadRequest, platformsdk.ErrorResponse{
			Error:            platformsdk.ErrorCodeInvalidRequest,
			ErrorDescription: err.Error(),
		})
	default:
		slogx.FromContext(r.Context()).Error("failed to "+op, "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, platformsdk.ErrorResponse{
			Error:            platformsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to " + op,
		})
	}
}
