// Package scheduler triggers report runs on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron"

	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

// DefaultSpec fires daily at 06:00 in the runner's location.
// Specs have six fields, seconds first.
const DefaultSpec = "0 0 6 * * *"

// ReportRunner executes one report run.
type ReportRunner interface {
	Run(ctx context.Context) model.JobResult
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Reports  ReportRunner   // Required
	Spec     string         // Optional: defaults to DefaultSpec
	Location *time.Location // Optional: defaults to UTC
	Logger   *slog.Logger   // Optional
}

// Runner fires report runs on a cron schedule until its context is cancelled.
// A tick that arrives while the previous run is still in flight is skipped.
type Runner struct {
	reports  ReportRunner
	spec     string
	schedule cron.Schedule
	location *time.Location
	logger   *slog.Logger
}

// NewRunner creates a new scheduler runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Reports == nil {
		return nil, errors.New("report runner is required")
	}
	spec := opts.Spec
	if spec == "" {
		spec = DefaultSpec
	}
	schedule, err := cron.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parse report schedule %q: %w", spec, err)
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		reports:  opts.Reports,
		spec:     spec,
		schedule: schedule,
		location: loc,
		logger:   logger.With("component", "report_scheduler"),
	}, nil
}

// Next returns the first fire time after t.
func (r *Runner) Next(t time.Time) time.Time {
	return r.schedule.Next(t.In(r.location))
}

// Run starts the cron loop and blocks until ctx is cancelled. It waits for an
// in-flight report run to finish before returning.
func (r *Runner) Run(ctx context.Context) error {
	job := &reportJob{ctx: ctx, reports: r.reports, logger: r.logger}

	c := cron.NewWithLocation(r.location)
	c.Schedule(r.schedule, job)
	c.Start()
	r.logger.InfoContext(ctx, "report scheduler started",
		"spec", r.spec,
		"location", r.location.String(),
		"next_run", r.Next(time.Now()),
	)

	<-ctx.Done()
	c.Stop()
	job.stop()
	r.logger.InfoContext(ctx, "report scheduler stopped", "reason", ctx.Err())

	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

// reportJob adapts ReportRunner to cron.Job.
var _ cron.Job = (*reportJob)(nil)

type reportJob struct {
	ctx     context.Context
	reports ReportRunner
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
	stopped bool
	wg      sync.WaitGroup
}

func (j *reportJob) Run() {
	if !j.begin() {
		return
	}
	defer j.end()

	res := j.reports.Run(j.ctx)
	if !res.Success {
		j.logger.ErrorContext(j.ctx, "scheduled report run failed",
			"run_id", res.RunID,
			"error_kind", res.ErrorKind,
			"error", res.Error,
		)
		return
	}
	j.logger.InfoContext(j.ctx, "scheduled report run completed",
		"run_id", res.RunID,
		"record_count", res.RecordCount,
		"execution_time_ms", res.ExecutionTimeMs,
	)
}

func (j *reportJob) begin() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.stopped || j.ctx.Err() != nil {
		return false
	}
	if j.running {
		j.logger.WarnContext(j.ctx, "previous scheduled report run still in progress; skipping tick")
		return false
	}
	j.running = true
	j.wg.Add(1)
	return true
}

func (j *reportJob) end() {
	j.mu.Lock()
	j.running = false
	j.mu.Unlock()
	j.wg.Done()
}

// stop refuses new runs and waits for the in-flight one.
func (j *reportJob) stop() {
	j.mu.Lock()
	j.stopped = true
	j.mu.Unlock()
	j.wg.Wait()
}
