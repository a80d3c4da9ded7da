package core

import (
	"context"
	"time"

	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

// This file contains the ports between the report/bill services and their adapters.
// Services depend on these interfaces, never on the concrete data or AWS adapters.

// BillReportSource opens a short-lived session against the bills table for one report run.
type BillReportSource interface {
	Open(ctx context.Context) (BillReportSession, error)
}

// BillReportSession holds the single connection used by one run's Fetching stage.
// Close must be called on every path once Open has succeeded.
type BillReportSession interface {
	Fetch(ctx context.Context, window model.ReportWindow) ([]model.BillRecord, error)
	Close(ctx context.Context) error
}

// ReportRenderer turns fetched rows into a workbook. It performs no I/O.
type ReportRenderer interface {
	Render(rows []model.BillRecord, lookbackDays int) (*model.ReportArtifact, error)
}

// ArtifactStore persists rendered workbooks and lists or removes stored ones.
type ArtifactStore interface {
	Store(ctx context.Context, artifact *model.ReportArtifact) (*model.StoredArtifactRef, error)
	List(ctx context.Context) ([]model.StoredReport, error)
	Delete(ctx context.Context, key string) error
}

// ReportNotifier sends the single "report ready" message for a stored artifact.
type ReportNotifier interface {
	Notify(ctx context.Context, ref model.StoredArtifactRef, recordCount int, cfg model.ReportJobConfig) error
}

// RunHistoryRepository keeps the most recent report run results.
type RunHistoryRepository interface {
	Record(ctx context.Context, result model.JobResult) error
	Recent(ctx context.Context, limit int) ([]model.JobResult, error)
}

// BillRepository defines the pool-backed CRUD surface over the bills table.
type BillRepository interface {
	List(ctx context.Context, opts model.BillListOptions) ([]*model.Bill, error)
	GetByID(ctx context.Context, id string) (*model.Bill, error)
	Create(ctx context.Context, req *model.CreateBillRequest) (*model.Bill, error)
	Update(ctx context.Context, id string, req *model.UpdateBillRequest) (*model.Bill, error)
	Delete(ctx context.Context, id string) (bool, error)
	MonthlyTrend(ctx context.Context, months int) ([]model.MonthlyTrendPoint, error)
}

// TrendCache holds computed trend series keyed by a generation counter. Bumping
// the generation retires every cached window at once.
type TrendCache interface {
	Generation(ctx context.Context) (int64, error)
	Bump(ctx context.Context) error
	// Get reports ok=false on a miss.
	Get(ctx context.Context, gen int64, months int) ([]model.MonthlyTrendPoint, bool, error)
	Set(ctx context.Context, gen int64, months int, points []model.MonthlyTrendPoint, ttl time.Duration) error
}
