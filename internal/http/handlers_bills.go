package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hap-eb/ebill-reports/internal/domain/model"
	"github.com/hap-eb/ebill-reports/internal/service"
)

const (
	defaultBillListLimit = 50
	maxBillListLimit     = 500
)

var errBillIDRequired = errors.New("bill id is required")

// BillHandlers provides HTTP handlers for the dashboard bills grid.
type BillHandlers struct {
	Svc *service.BillService
}

// List handles GET /api/bills with limit/offset paging and optional
// service_number and year filters.
func (h *BillHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r, defaultBillListLimit, maxBillListLimit)
	opts := model.BillListOptions{
		Limit:         limit,
		Offset:        offset,
		ServiceNumber: optionalQuery(r, "service_number"),
	}
	if v := optionalQuery(r, "year"); v != nil {
		year, err := strconv.Atoi(*v)
		if err != nil {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_query",
				Err:     fmt.Errorf("year must be a number: %q", *v),
			})
			return
		}
		opts.Year = &year
	}

	bills, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err, "list_failed")
		return
	}
	if bills == nil {
		bills = []*model.Bill{}
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"bills":  bills,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles GET /api/bills/{id}.
func (h *BillHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errBillIDRequired})
		return
	}

	bill, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err, "get_failed")
		return
	}

	WriteJSON(w, http.StatusOK, bill)
}

// Create handles POST /api/bills.
func (h *BillHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBillRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	bill, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err, "create_failed")
		return
	}

	WriteJSON(w, http.StatusCreated, bill)
}

// Update handles PUT /api/bills/{id}. Omitted fields are left unchanged.
func (h *BillHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errBillIDRequired})
		return
	}

	var req model.UpdateBillRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	bill, err := h.Svc.Update(r.Context(), id, &req)
	if err != nil {
		WriteAppError(w, err, "update_failed")
		return
	}

	WriteJSON(w, http.StatusOK, bill)
}

// Delete handles DELETE /api/bills/{id}.
func (h *BillHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errBillIDRequired})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, err, "delete_failed")
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("Bill not found"), //nolint:staticcheck // user-facing message
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Trend handles GET /api/bills/trend?months=N for the cost and penalty chart.
func (h *BillHandlers) Trend(w http.ResponseWriter, r *http.Request) {
	months := queryInt(r, "months", service.DefaultTrendMonths)
	points, err := h.Svc.MonthlyTrend(r.Context(), months)
	if err != nil {
		WriteAppError(w, err, "trend_failed")
		return
	}
	if points == nil {
		points = []model.MonthlyTrendPoint{}
	}

	WriteJSON(w, http.StatusOK, map[string]any{"points": points})
}
