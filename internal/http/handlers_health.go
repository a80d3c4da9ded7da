package httpx

import (
	"net/http"
)

// HealthStatus is the /healthz body. Components reports which surfaces this
// process mounted, so an operator can tell a pool-less instance apart.
type HealthStatus struct {
	Status     string          `json:"status"`
	Components map[string]bool `json:"components"`
}

// healthHandler answers readiness/liveness checks. HEAD gets headers only.
func healthHandler(services RouterServices) http.HandlerFunc {
	body := HealthStatus{
		Status: "ok",
		Components: map[string]bool{
			"bills_api":       services.Bills != nil,
			"report_pipeline": services.Reports != nil,
			"dashboard":       services.StaticDir != "",
			"metrics":         services.Metrics != nil,
		},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			return
		}
		WriteJSON(w, http.StatusOK, body)
	}
}
