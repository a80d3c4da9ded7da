package httpx

import (
	"errors"
	"net/http"

	"github.com/hap-eb/ebill-reports/internal/adapters/s3store"
	"github.com/hap-eb/ebill-reports/internal/domain/model"
	"github.com/hap-eb/ebill-reports/internal/service"
)

const (
	defaultRunHistoryLimit = 20
	maxRunHistoryLimit     = 100
)

// ReportHandlers exposes the report trigger and report management endpoints.
type ReportHandlers struct {
	Svc *service.ReportService
}

// Run handles POST /api/reports/run. No body is required; the response is the
// run's JobResult with 200 for success or an empty window and 500 for any stage failure.
func (h *ReportHandlers) Run(w http.ResponseWriter, r *http.Request) {
	res := h.Svc.Run(r.Context())
	WriteJSON(w, service.RunHTTPStatus(res), res)
}

// Runs handles GET /api/reports/runs, newest first.
func (h *ReportHandlers) Runs(w http.ResponseWriter, r *http.Request) {
	limit, _ := pageParams(r, defaultRunHistoryLimit, maxRunHistoryLimit)
	runs, err := h.Svc.RecentRuns(r.Context(), limit)
	if err != nil {
		WriteAppError(w, err, "history_failed")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// List handles GET /api/reports.
func (h *ReportHandlers) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Svc.ListReports(r.Context())
	if err != nil {
		WriteAppError(w, err, "list_failed")
		return
	}
	if reports == nil {
		reports = []model.StoredReport{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

// Delete handles DELETE /api/reports/{key...}.
func (h *ReportHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if err := h.Svc.DeleteReport(r.Context(), key); err != nil {
		if errors.Is(err, s3store.ErrInvalidKey) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_key", Err: err})
			return
		}
		WriteAppError(w, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
