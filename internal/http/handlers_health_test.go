package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		services RouterServices
		want     map[string]bool
	}{
		{
			name:     "dashboard only",
			method:   http.MethodGet,
			services: RouterServices{StaticDir: "/srv/dashboard"},
			want:     map[string]bool{"bills_api": false, "report_pipeline": false, "dashboard": true, "metrics": false},
		},
		{
			name:     "metrics mounted",
			method:   http.MethodGet,
			services: RouterServices{Metrics: http.NotFoundHandler()},
			want:     map[string]bool{"bills_api": false, "report_pipeline": false, "dashboard": false, "metrics": true},
		},
		{
			name:   "head has no body",
			method: http.MethodHead,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			healthHandler(tt.services)(rec, httptest.NewRequest(tt.method, "/healthz", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.method == http.MethodHead {
				assert.Zero(t, rec.Body.Len())
				return
			}

			var got HealthStatus
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, "ok", got.Status)
			assert.Equal(t, tt.want, got.Components)
		})
	}
}
