package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hap-eb/ebill-reports/internal/core"
	"github.com/hap-eb/ebill-reports/internal/domain/model"
	"github.com/hap-eb/ebill-reports/internal/domain/report"
	obserrors "github.com/hap-eb/ebill-reports/internal/observability/errors"
	"github.com/hap-eb/ebill-reports/internal/observability/metrics"
	"github.com/hap-eb/ebill-reports/internal/observability/notify"
	"github.com/hap-eb/ebill-reports/internal/service/failurenotifier"
)

// Response messages for successful runs.
const (
	MessageReportGenerated = "Report generated successfully"
	messageNoBillsFormat   = "No bills found in the last %d days; no report generated"
)

// ReportServiceOptions groups dependencies for ReportService.
type ReportServiceOptions struct {
	Config          model.ReportJobConfig     // Validated on every run, never at construction
	Source          core.BillReportSource     // Required
	Renderer        core.ReportRenderer       // Required
	Store           core.ArtifactStore        // Required
	Notifier        core.ReportNotifier       // Required
	History         core.RunHistoryRepository // Optional: recent run results
	Metrics         *metrics.ReportMetrics    // Optional
	FailureNotifier *failurenotifier.Service  // Optional: ops alerts for failed runs
	Now             func() time.Time          // Optional: defaults to time.Now
	NewRunID        func() string             // Optional: defaults to a UUIDv4
	Logger          *slog.Logger              // Optional
}

// ReportService runs the bill report pipeline:
// validate config, fetch bills, render, store, notify.
//
// Each call to Run is an independent, strictly sequential run with its own
// state tracker. Concurrent runs share nothing but the artifact namespace.
type ReportService struct {
	cfg             model.ReportJobConfig
	source          core.BillReportSource
	renderer        core.ReportRenderer
	store           core.ArtifactStore
	notifier        core.ReportNotifier
	history         core.RunHistoryRepository
	metrics         *metrics.ReportMetrics
	failureNotifier *failurenotifier.Service
	now             func() time.Time
	newRunID        func() string
	logger          *slog.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(opts ReportServiceOptions) (*ReportService, error) {
	switch {
	case opts.Source == nil:
		return nil, errors.New("BillReportSource is required")
	case opts.Renderer == nil:
		return nil, errors.New("ReportRenderer is required")
	case opts.Store == nil:
		return nil, errors.New("ArtifactStore is required")
	case opts.Notifier == nil:
		return nil, errors.New("ReportNotifier is required")
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newRunID := opts.NewRunID
	if newRunID == nil {
		newRunID = func() string { return uuid.NewString() }
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ReportService{
		cfg:             opts.Config,
		source:          opts.Source,
		renderer:        opts.Renderer,
		store:           opts.Store,
		notifier:        opts.Notifier,
		history:         opts.History,
		metrics:         opts.Metrics,
		failureNotifier: opts.FailureNotifier,
		now:             now,
		newRunID:        newRunID,
		logger:          logger.With("component", "report_service"),
	}, nil
}

// MustNewReportService constructs a ReportService and panics on error.
func MustNewReportService(opts ReportServiceOptions) *ReportService {
	svc, err := NewReportService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create ReportService: %v", err))
	}
	return svc
}

// Run executes one report run and returns its only JobResult.
// Stage failures are reported through the result, never as a Go error.
func (s *ReportService) Run(ctx context.Context) model.JobResult {
	run := &reportRun{
		svc:     s,
		id:      s.newRunID(),
		start:   s.now(),
		tracker: report.NewTracker(),
	}
	run.logger = s.logger.With("run_id", run.id)

	res := run.execute(ctx)
	s.finish(ctx, res)
	return res
}

// RunHTTPStatus maps a run result to the trigger's HTTP status: 200 for a
// successful or empty run, 500 for any stage failure.
func RunHTTPStatus(res model.JobResult) int {
	if res.Success {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}

// RecentRuns returns up to limit recent results, newest first. Without a
// history repository it returns an empty slice.
func (s *ReportService) RecentRuns(ctx context.Context, limit int) ([]model.JobResult, error) {
	if s.history == nil {
		return []model.JobResult{}, nil
	}
	runs, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent report runs: %w", err)
	}
	return runs, nil
}

// ListReports returns the stored report artifacts, newest first.
func (s *ReportService) ListReports(ctx context.Context) ([]model.StoredReport, error) {
	reports, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// DeleteReport removes one stored report artifact.
func (s *ReportService) DeleteReport(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete report %s: %w", key, err)
	}
	s.logger.InfoContext(ctx, "report deleted", "key", key)
	return nil
}

func (s *ReportService) finish(ctx context.Context, res model.JobResult) {
	s.metrics.ObserveRun(res)

	// History and alerts outlive a cancelled trigger.
	bg := context.WithoutCancel(ctx)
	if s.history != nil {
		if err := s.history.Record(bg, res); err != nil {
			s.logger.WarnContext(ctx, "failed to record report run", "run_id", res.RunID, "error", err)
		}
	}

	if !res.Success && s.failureNotifier.Enabled() {
		delivered := s.failureNotifier.NotifyReportFailure(bg, notify.ReportFailurePayload{
			RunID:      res.RunID,
			ErrorKind:  res.ErrorKind,
			Stage:      res.Stage,
			Error:      res.Error,
			OccurredAt: res.Timestamp,
			DurationMs: res.ExecutionTimeMs,
			Metadata: map[string]string{
				"bucket": s.cfg.StorageBucket,
				"region": s.cfg.Region,
			},
		})
		s.logger.InfoContext(ctx, "report failure alerted", "run_id", res.RunID, "sinks_delivered", delivered)
	}
}

// reportRun is the state of a single invocation of ReportService.Run.
type reportRun struct {
	svc     *ReportService
	id      string
	start   time.Time
	tracker *report.Tracker
	logger  *slog.Logger
}

func (r *reportRun) execute(ctx context.Context) model.JobResult {
	cfg := r.svc.cfg

	r.enter(ctx, report.StateValidating)
	if err := cfg.Validate(); err != nil {
		return r.fail(ctx, err, "")
	}

	r.enter(ctx, report.StateFetching)
	window := model.LookbackWindow(r.start, cfg.LookbackDays)
	rows, err := r.fetch(ctx, window)
	if err != nil {
		return r.fail(ctx, err, "")
	}
	summary := model.SummarizeBills(rows, window)

	if len(rows) == 0 {
		r.enter(ctx, report.StateEmptyShortCircuit)
		r.enter(ctx, report.StateDone)
		return r.succeed(fmt.Sprintf(messageNoBillsFormat, cfg.LookbackDays), nil, summary)
	}

	r.enter(ctx, report.StateRendering)
	artifact, err := r.svc.renderer.Render(rows, cfg.LookbackDays)
	if err != nil {
		return r.fail(ctx, err, "")
	}

	r.enter(ctx, report.StateStoring)
	ref, err := r.svc.store.Store(ctx, artifact)
	if err != nil {
		return r.fail(ctx, err, "")
	}

	r.enter(ctx, report.StateNotifying)
	if err := r.svc.notifier.Notify(ctx, *ref, len(rows), cfg); err != nil {
		// The artifact exists; keep its key so operators can find it.
		return r.fail(ctx, err, ref.Key)
	}

	r.enter(ctx, report.StateDone)
	return r.succeed(MessageReportGenerated, ref, summary)
}

// fetch holds the only database connection of the run. It is released on
// every path, including cancellation.
func (r *reportRun) fetch(ctx context.Context, window model.ReportWindow) ([]model.BillRecord, error) {
	session, err := r.svc.source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open bill source: %w", err)
	}
	defer func() {
		if cerr := session.Close(context.WithoutCancel(ctx)); cerr != nil {
			r.logger.WarnContext(ctx, "failed to close bill source", "error", cerr)
		}
	}()

	rows, err := session.Fetch(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("fetch bills: %w", err)
	}
	r.logger.InfoContext(ctx, "bills fetched",
		"count", len(rows),
		"window_start", window.Start,
		"window_end", window.End,
	)
	return rows, nil
}

func (r *reportRun) enter(ctx context.Context, to report.State) {
	from := r.tracker.State()
	if err := r.tracker.Advance(to); err != nil {
		r.logger.ErrorContext(ctx, "report state transition rejected", "from", from, "to", to, "error", err)
		return
	}
	r.logger.InfoContext(ctx, "report state changed",
		"state", to,
		"elapsed_ms", r.elapsed().Milliseconds(),
	)
}

func (r *reportRun) elapsed() time.Duration {
	return r.svc.now().Sub(r.start)
}

func (r *reportRun) succeed(msg string, ref *model.StoredArtifactRef, summary model.ReportSummary) model.JobResult {
	res := model.JobResult{
		RunID:           r.id,
		Success:         true,
		Message:         msg,
		RecordCount:     summary.TotalRecords,
		ExecutionTimeMs: r.elapsed().Milliseconds(),
		Timestamp:       r.svc.now().UTC(),
		Summary:         &summary,
	}
	if ref != nil {
		res.ArtifactKey = ref.Key
		res.ArtifactURL = ref.URL
	}
	return res
}

func (r *reportRun) fail(ctx context.Context, err error, artifactKey string) model.JobResult {
	stage := r.tracker.State()
	stageErr := report.NewStageError(stage, err)
	r.enter(ctx, report.StateFailed)

	res := model.JobResult{
		RunID:           r.id,
		Success:         false,
		Error:           stageErr.Error(),
		ErrorKind:       string(stageErr.Kind),
		Stage:           string(stage),
		ArtifactKey:     artifactKey,
		ExecutionTimeMs: r.elapsed().Milliseconds(),
		Timestamp:       r.svc.now().UTC(),
	}
	r.logger.ErrorContext(ctx, "report run failed",
		"error_kind", res.ErrorKind,
		"stage", res.Stage,
		"elapsed_ms", res.ExecutionTimeMs,
		"error_class", obserrors.Classify(err),
		"error", err,
	)
	return res
}
