//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	maxServiceNumberLen = 64
	minBillYear         = 2000
	maxBillYear         = 2100
)

// BillRecord is one row of the bills table as read by the report pipeline.
// It is never mutated after it is read.
type BillRecord struct {
	ServiceNumber string          `json:"service_number" db:"service_number"`
	Month         string          `json:"month"          db:"month"`
	Year          int             `json:"year"           db:"year"`
	TotalCost     decimal.Decimal `json:"total_cost"     db:"total_cost"`
	PFPenalty     decimal.Decimal `json:"pf_penalty"     db:"pf_penalty"`
	BillDate      time.Time       `json:"bill_date"      db:"bill_date"`
	CreatedAt     time.Time       `json:"created_at"     db:"created_at"`
}

// Bill is a persisted bill as served by the dashboard grid.
type Bill struct {
	ID            string          `json:"id"             db:"id"`
	ServiceNumber string          `json:"service_number" db:"service_number"`
	Month         string          `json:"month"          db:"month"`
	Year          int             `json:"year"           db:"year"`
	TotalCost     decimal.Decimal `json:"total_cost"     db:"total_cost"`
	PFPenalty     decimal.Decimal `json:"pf_penalty"     db:"pf_penalty"`
	BillDate      time.Time       `json:"bill_date"      db:"bill_date"`
	CreatedAt     time.Time       `json:"created_at"     db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"     db:"updated_at"`
}

// Record projects the stored bill onto the pipeline's read shape.
func (b Bill) Record() BillRecord {
	return BillRecord{
		ServiceNumber: b.ServiceNumber,
		Month:         b.Month,
		Year:          b.Year,
		TotalCost:     b.TotalCost,
		PFPenalty:     b.PFPenalty,
		BillDate:      b.BillDate,
		CreatedAt:     b.CreatedAt,
	}
}

// BillListOptions controls paging for listing bills.
// Bills are always ordered bill_date DESC, service_number ASC.
type BillListOptions struct {
	Limit         int
	Offset        int
	ServiceNumber *string // exact match
	Year          *int
}

// MonthlyTrendPoint aggregates cost and penalty per billing month for the dashboard chart.
type MonthlyTrendPoint struct {
	Month          string          `json:"month"           db:"month"`
	TotalCost      decimal.Decimal `json:"total_cost"      db:"total_cost"`
	TotalPenalties decimal.Decimal `json:"total_penalties" db:"total_penalties"`
	BillCount      int             `json:"bill_count"      db:"bill_count"`
}

// CreateBillRequest represents parameters to create a Bill.
// BillDate accepts "YYYY-MM-DD" or an RFC3339 timestamp.
type CreateBillRequest struct {
	ServiceNumber string          `json:"service_number"`
	Month         string          `json:"month,omitempty"`
	Year          int             `json:"year,omitempty"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	PFPenalty     decimal.Decimal `json:"pf_penalty"`
	BillDate      string          `json:"bill_date"`

	billDate time.Time
}

// ParsedBillDate returns the bill date resolved by Validate.
func (r *CreateBillRequest) ParsedBillDate() time.Time { return r.billDate }

// Validate validates and normalizes CreateBillRequest. Month and year default
// to the bill date's calendar month when omitted.
func (r *CreateBillRequest) Validate() error {
	sn, err := normalizeServiceNumber(r.ServiceNumber)
	if err != nil {
		return err
	}
	r.ServiceNumber = sn

	d, err := ParseBillDate(r.BillDate)
	if err != nil {
		return err
	}
	r.billDate = d

	if strings.TrimSpace(r.Month) == "" {
		r.Month = d.Month().String()
	} else {
		m, ok := NormalizeMonth(r.Month)
		if !ok {
			return errors.New("month must be an English month name")
		}
		r.Month = m
	}
	if r.Year == 0 {
		r.Year = d.Year()
	}
	if r.Year < minBillYear || r.Year > maxBillYear {
		return errors.New("year must be between 2000 and 2100")
	}
	return validateAmounts(r.TotalCost, r.PFPenalty)
}

// UpdateBillRequest represents parameters to update a Bill.
type UpdateBillRequest struct {
	ServiceNumber *string          `json:"service_number,omitempty"`
	Month         *string          `json:"month,omitempty"`
	Year          *int             `json:"year,omitempty"`
	TotalCost     *decimal.Decimal `json:"total_cost,omitempty"`
	PFPenalty     *decimal.Decimal `json:"pf_penalty,omitempty"`
	BillDate      *string          `json:"bill_date,omitempty"`

	billDate *time.Time
}

// ParsedBillDate returns the bill date resolved by Validate, or nil when unchanged.
func (r *UpdateBillRequest) ParsedBillDate() *time.Time { return r.billDate }

// HasUpdates reports whether any field is set in UpdateBillRequest.
func (r *UpdateBillRequest) HasUpdates() bool {
	return r.ServiceNumber != nil || r.Month != nil || r.Year != nil ||
		r.TotalCost != nil || r.PFPenalty != nil || r.BillDate != nil
}

// Validate validates UpdateBillRequest, ensuring at least one field is set and values are sane.
func (r *UpdateBillRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.ServiceNumber != nil {
		sn, err := normalizeServiceNumber(*r.ServiceNumber)
		if err != nil {
			return err
		}
		*r.ServiceNumber = sn
	}
	if r.Month != nil {
		m, ok := NormalizeMonth(*r.Month)
		if !ok {
			return errors.New("month must be an English month name")
		}
		*r.Month = m
	}
	if r.Year != nil && (*r.Year < minBillYear || *r.Year > maxBillYear) {
		return errors.New("year must be between 2000 and 2100")
	}
	if r.BillDate != nil {
		d, err := ParseBillDate(*r.BillDate)
		if err != nil {
			return err
		}
		r.billDate = &d
	}
	cost, penalty := decimal.Zero, decimal.Zero
	if r.TotalCost != nil {
		cost = *r.TotalCost
	}
	if r.PFPenalty != nil {
		penalty = *r.PFPenalty
	}
	return validateAmounts(cost, penalty)
}

// ParseBillDate accepts a calendar date ("2024-01-15") or an RFC3339 timestamp
// and returns midnight UTC of that date.
func ParseBillDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("bill_date is required")
	}
	if d, err := time.Parse(time.DateOnly, v); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, errors.New("bill_date must be YYYY-MM-DD")
	}
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// NormalizeMonth maps "jan", "JANUARY" or "1" to "January".
func NormalizeMonth(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return "", false
	}
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		lower := strings.ToLower(name)
		if v == lower || (len(v) == 3 && strings.HasPrefix(lower, v)) {
			return name, true
		}
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 12 {
		return time.Month(n).String(), true
	}
	return "", false
}

func normalizeServiceNumber(v string) (string, error) {
	sn := strings.ToUpper(strings.TrimSpace(v))
	if sn == "" {
		return "", errors.New("service_number is required and cannot be empty")
	}
	if utf8.RuneCountInString(sn) > maxServiceNumberLen {
		return "", errors.New("service_number cannot exceed 64 characters")
	}
	return sn, nil
}

func validateAmounts(cost, penalty decimal.Decimal) error {
	if cost.IsNegative() {
		return errors.New("total_cost must be >= 0")
	}
	if penalty.IsNegative() {
		return errors.New("pf_penalty must be >= 0")
	}
	return nil
}
