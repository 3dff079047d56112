package http

import (
	"net/http"
	"time"

	"github.com/chambershq/chambers/internal/platform/store"
	"github.com/chambershq/chambers/internal/platform/tenancy"
	"github.com/chambershq/chambers/pkg/httpx"
	"github.com/chambershq/chambers/pkg/platformsdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, the global store connection and the tenant pool drain state
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	platformsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	platformsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	pool *tenancy.Pool,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &platformsdk.HealthChecks{
			Database: "ok",
			Pool:     "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check global store connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// A draining pool means shutdown is underway; stop routing here
		if pool.Stats().Draining {
			checks.Pool = "draining"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := platformsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
