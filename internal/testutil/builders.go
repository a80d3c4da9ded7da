package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

// BillRequestBuilder provides a fluent interface for building CreateBillRequest objects for testing.
type BillRequestBuilder struct {
	req *model.CreateBillRequest
}

// NewBillRequest creates a builder for the ABC001 January 2024 bill.
func NewBillRequest() *BillRequestBuilder {
	return &BillRequestBuilder{
		req: &model.CreateBillRequest{
			ServiceNumber: "ABC001",
			TotalCost:     decimal.RequireFromString("12345.00"),
			PFPenalty:     decimal.RequireFromString("120.00"),
			BillDate:      "2024-01-15",
		},
	}
}

// WithServiceNumber sets the service number.
func (b *BillRequestBuilder) WithServiceNumber(sn string) *BillRequestBuilder {
	b.req.ServiceNumber = sn
	return b
}

// WithAmounts sets cost and penalty from decimal strings.
func (b *BillRequestBuilder) WithAmounts(cost, penalty string) *BillRequestBuilder {
	b.req.TotalCost = decimal.RequireFromString(cost)
	b.req.PFPenalty = decimal.RequireFromString(penalty)
	return b
}

// WithBillDate sets the bill date and clears month/year so they derive from it.
func (b *BillRequestBuilder) WithBillDate(d time.Time) *BillRequestBuilder {
	b.req.BillDate = d.Format(time.DateOnly)
	b.req.Month = ""
	b.req.Year = 0
	return b
}

// Build returns the constructed request.
func (b *BillRequestBuilder) Build() *model.CreateBillRequest {
	return b.req
}

// SampleBillRecords returns the two-row reference data set (ABC001 12345/120, ABC002 8500/0).
func SampleBillRecords() []model.BillRecord {
	return []model.BillRecord{
		{
			ServiceNumber: "ABC001",
			Month:         "January",
			Year:          2024,
			TotalCost:     decimal.RequireFromString("12345"),
			PFPenalty:     decimal.RequireFromString("120"),
			BillDate:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			CreatedAt:     time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC),
		},
		{
			ServiceNumber: "ABC002",
			Month:         "January",
			Year:          2024,
			TotalCost:     decimal.RequireFromString("8500"),
			PFPenalty:     decimal.Zero,
			BillDate:      time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			CreatedAt:     time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC),
		},
	}
}
