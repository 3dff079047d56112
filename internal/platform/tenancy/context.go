package tenancy

import (
	"context"

	"github.com/chambershq/chambers/internal/platform/domain"
)

type ctxKey int

const (
	ctxKeyTenant ctxKey = iota
	ctxKeyHandle
)

// WithTenant attaches the resolved tenant and its connection handle to ctx.
// The gate calls this once per request after resolution succeeds.
func WithTenant(ctx context.Context, t domain.Tenant, h *Handle) context.Context {
	ctx = context.WithValue(ctx, ctxKeyTenant, t)
	return context.WithValue(ctx, ctxKeyHandle, h)
}

// TenantFromContext returns the tenant resolved for this request, if any.
func TenantFromContext(ctx context.Context) (domain.Tenant, bool) {
	t, ok := ctx.Value(ctxKeyTenant).(domain.Tenant)
	return t, ok
}

// HandleFromContext returns the tenant's connection handle, if resolution ran.
func HandleFromContext(ctx context.Context) (*Handle, bool) {
	h, ok := ctx.Value(ctxKeyHandle).(*Handle)
	return h, ok
}
