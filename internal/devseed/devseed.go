// Package devseed loads sample bills for local development and demos.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hap-eb/ebill-reports/internal/data"
	"github.com/hap-eb/ebill-reports/internal/domain/model"
	"github.com/hap-eb/ebill-reports/internal/service"
)

// BillWriter is the subset of the bill service the seeder needs.
type BillWriter interface {
	List(ctx context.Context, opts model.BillListOptions) ([]*model.Bill, error)
	Create(ctx context.Context, req *model.CreateBillRequest) (*model.Bill, error)
}

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Bills BillWriter
}

// NewServices constructs the seeding services backed by db.
func NewServices(db *sql.DB) Services {
	return Services{
		Bills: service.NewBillService(service.BillServiceOptions{Repo: data.NewBillRepo(db)}),
	}
}

// SampleBill is one seed row. DaysAgo is relative to the seeding time so the
// rows always fall inside the default report window.
type SampleBill struct {
	ServiceNumber string
	TotalCost     string
	PFPenalty     string
	DaysAgo       int
}

// DefaultBills returns the development data set.
func DefaultBills() []SampleBill {
	return []SampleBill{
		{ServiceNumber: "ABC001", TotalCost: "12345", PFPenalty: "120", DaysAgo: 3},
		{ServiceNumber: "ABC002", TotalCost: "8500", PFPenalty: "0", DaysAgo: 5},
		{ServiceNumber: "ABC001", TotalCost: "11890.50", PFPenalty: "95.25", DaysAgo: 33},
		{ServiceNumber: "ABC002", TotalCost: "8120", PFPenalty: "40", DaysAgo: 35},
	}
}

// Run seeds DefaultBills. Rows whose service number, month and year already
// exist are left alone, so repeated runs are safe.
func Run(ctx context.Context, svcs Services, now time.Time, logger *slog.Logger) error {
	if svcs.Bills == nil {
		return errors.New("devseed: bill service is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	failures := 0
	for _, sample := range DefaultBills() {
		created, err := seedBill(ctx, svcs.Bills, sample, now)
		if err != nil {
			logger.ErrorContext(ctx, "failed to seed bill", "service_number", sample.ServiceNumber, "error", err)
			failures++
			continue
		}
		msg := "bill already exists"
		if created {
			msg = "created bill"
		}
		logger.InfoContext(ctx, msg, "service_number", sample.ServiceNumber, "days_ago", sample.DaysAgo)
	}
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func seedBill(ctx context.Context, bills BillWriter, sample SampleBill, now time.Time) (bool, error) {
	req, err := sample.request(now)
	if err != nil {
		return false, err
	}
	if err = req.Validate(); err != nil {
		return false, err
	}

	sn := req.ServiceNumber
	year := req.Year
	existing, err := bills.List(ctx, model.BillListOptions{Limit: 500, ServiceNumber: &sn, Year: &year})
	if err != nil {
		return false, fmt.Errorf("list bills: %w", err)
	}
	for _, b := range existing {
		if b.Month == req.Month {
			return false, nil
		}
	}

	if _, err = bills.Create(ctx, req); err != nil {
		return false, err
	}
	return true, nil
}

func (s SampleBill) request(now time.Time) (*model.CreateBillRequest, error) {
	cost, err := decimal.NewFromString(s.TotalCost)
	if err != nil {
		return nil, fmt.Errorf("seed total_cost %q: %w", s.TotalCost, err)
	}
	penalty, err := decimal.NewFromString(s.PFPenalty)
	if err != nil {
		return nil, fmt.Errorf("seed pf_penalty %q: %w", s.PFPenalty, err)
	}
	return &model.CreateBillRequest{
		ServiceNumber: s.ServiceNumber,
		TotalCost:     cost,
		PFPenalty:     penalty,
		BillDate:      now.AddDate(0, 0, -s.DaysAgo).Format(time.DateOnly),
	}, nil
}
