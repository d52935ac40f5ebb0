package http

import (
	"net/http"
	"time"

	"github.com/gatehouselabs/gatehouse/internal/identity/store"
	"github.com/gatehouselabs/gatehouse/pkg/httpx"
	"github.com/gatehouselabs/gatehouse/pkg/idsdk"
)

// ReadyzHandler answers the readiness probe, checking the database on
// every call.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &idsdk.HealthChecks{Database: "ok"}
		status := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, idsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
