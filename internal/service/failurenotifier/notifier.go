// Package failurenotifier fans failed report runs out to ops alert sinks.
package failurenotifier

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/hap-eb/ebill-reports/internal/observability/notify"
)

const defaultSinkTimeout = 15 * time.Second

// SinkRegistration names a sink for logs.
type SinkRegistration struct {
	Name string
	Sink notify.Sink
}

// Options configures the failure notifier service.
type Options struct {
	Logger *slog.Logger
	Sinks  []SinkRegistration
	// Timeout bounds each sink delivery, retries included.
	Timeout time.Duration
}

// Service dispatches report failure alerts to every registered sink.
type Service struct {
	logger  *slog.Logger
	sinks   []SinkRegistration
	timeout time.Duration
}

// NewService drops registrations without a sink.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "failure_notifier")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultSinkTimeout
	}

	sinks := slices.DeleteFunc(slices.Clone(opts.Sinks), func(r SinkRegistration) bool { return r.Sink == nil })
	for i := range sinks {
		if sinks[i].Name == "" {
			sinks[i].Name = "sink"
		}
	}
	return &Service{logger: logger, sinks: sinks, timeout: timeout}
}

// NotifyReportFailure delivers payload to all sinks concurrently and returns
// how many accepted it. Delivery errors are logged, never returned.
func (s *Service) NotifyReportFailure(ctx context.Context, payload notify.ReportFailurePayload) int {
	if !s.Enabled() {
		return 0
	}
	if payload.Severity == "" {
		payload.Severity = notify.SeverityCritical
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		delivered int
	)
	for _, reg := range s.sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sinkCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			if err := reg.Sink.SendReportFailure(sinkCtx, payload); err != nil {
				s.logger.ErrorContext(ctx, "report failure alert not delivered",
					"sink", reg.Name,
					"run_id", payload.RunID,
					"error_kind", payload.ErrorKind,
					"error", err,
				)
				return
			}
			mu.Lock()
			delivered++
			mu.Unlock()
		}()
	}
	wg.Wait()
	return delivered
}

// Enabled reports whether any sink is registered.
func (s *Service) Enabled() bool {
	return s != nil && len(s.sinks) > 0
}

// SinkNames lists registered sinks in registration order.
func (s *Service) SinkNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.sinks))
	for i, reg := range s.sinks {
		names[i] = reg.Name
	}
	return names
}
