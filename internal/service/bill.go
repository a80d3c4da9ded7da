package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/hap-eb/ebill-reports/internal/core"
	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

// Trend window bounds for the dashboard chart.
const (
	DefaultTrendMonths = 12
	MaxTrendMonths     = 36
)

const defaultTrendCacheTTL = 5 * time.Minute

// BillServiceOptions groups dependencies for BillService.
type BillServiceOptions struct {
	Repo   core.BillRepository
	Logger *slog.Logger

	// Cache stores computed trend series. Optional.
	Cache    core.TrendCache
	CacheTTL time.Duration
}

// BillService exposes the bills grid operations used by the dashboard.
type BillService struct {
	repo     core.BillRepository
	cache    core.TrendCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewBillService constructs a new BillService.
func NewBillService(opts BillServiceOptions) *BillService {
	if opts.Repo == nil {
		panic("BillRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultTrendCacheTTL
	}
	return &BillService{
		repo:     opts.Repo,
		cache:    opts.Cache,
		cacheTTL: ttl,
		logger:   logger.With("component", "bill_service"),
	}
}

// List returns a page of bills, newest bill date first.
func (s *BillService) List(ctx context.Context, opts model.BillListOptions) ([]*model.Bill, error) {
	return s.repo.List(ctx, opts)
}

// GetByID retrieves a bill by ID.
func (s *BillService) GetByID(ctx context.Context, id string) (*model.Bill, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts a bill.
func (s *BillService) Create(ctx context.Context, req *model.CreateBillRequest) (*model.Bill, error) {
	bill, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidateTrend(ctx)
	s.logger.InfoContext(ctx, "bill created",
		"id", bill.ID,
		"service_number", bill.ServiceNumber,
		"month", bill.Month,
		"year", bill.Year,
	)
	return bill, nil
}

// Update applies a partial update to a bill.
func (s *BillService) Update(ctx context.Context, id string, req *model.UpdateBillRequest) (*model.Bill, error) {
	bill, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidateTrend(ctx)
	s.logger.InfoContext(ctx, "bill updated", "id", bill.ID)
	return bill, nil
}

// Delete removes a bill. It reports false when no bill had that ID.
func (s *BillService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	s.invalidateTrend(ctx)
	s.logger.InfoContext(ctx, "bill deleted", "id", id)
	return true, nil
}

// MonthlyTrend returns per-month cost and penalty totals for the last months.
// Non-positive values select DefaultTrendMonths; values above MaxTrendMonths are capped.
// Cache failures fall through to the repository.
func (s *BillService) MonthlyTrend(ctx context.Context, months int) ([]model.MonthlyTrendPoint, error) {
	switch {
	case months <= 0:
		months = DefaultTrendMonths
	case months > MaxTrendMonths:
		months = MaxTrendMonths
	}
	if s.cache == nil {
		return s.repo.MonthlyTrend(ctx, months)
	}

	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "trend cache unavailable", "error", err)
		return s.repo.MonthlyTrend(ctx, months)
	}
	points, ok, err := s.cache.Get(ctx, gen, months)
	if err != nil {
		s.logger.WarnContext(ctx, "trend cache read failed", "generation", gen, "months", months, "error", err)
	}
	if ok {
		return points, nil
	}

	points, err = s.repo.MonthlyTrend(ctx, months)
	if err != nil {
		return nil, err
	}
	if setErr := s.cache.Set(ctx, gen, months, points, s.cacheTTL); setErr != nil {
		s.logger.WarnContext(ctx, "trend cache write failed", "generation", gen, "months", months, "error", setErr)
	}
	return points, nil
}

func (s *BillService) invalidateTrend(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.WarnContext(ctx, "trend cache invalidation failed", "error", err)
	}
}
