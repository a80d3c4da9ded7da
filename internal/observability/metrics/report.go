// Package metrics exposes Prometheus collectors for report runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultEmpty   = "empty"
	ResultError   = "error"
)

// ReportMetrics holds the report run collectors. A nil *ReportMetrics is a no-op.
type ReportMetrics struct {
	runsTotal   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	records     prometheus.Gauge
}

// NewReportMetrics creates the collectors and registers them with reg.
// Passing prometheus.DefaultRegisterer exposes them on /metrics.
func NewReportMetrics(reg prometheus.Registerer) *ReportMetrics {
	m := &ReportMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ebill",
				Name:      "report_runs_total",
				Help:      "Number of report pipeline runs by result and error kind.",
			},
			[]string{"result", "error_kind"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ebill",
				Name:      "report_run_duration_seconds",
				Help:      "Duration of report pipeline runs.",
				Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"result"},
		),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ebill",
			Name:      "report_records",
			Help:      "Number of bill records in the most recent report run.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.runsTotal, m.runDuration, m.records)
	}
	return m
}

// ResultLabel maps a run outcome to the result label.
func ResultLabel(res model.JobResult) string {
	switch {
	case !res.Success:
		return ResultError
	case res.RecordCount == 0:
		return ResultEmpty
	default:
		return ResultSuccess
	}
}

// ObserveRun records one finished run.
func (m *ReportMetrics) ObserveRun(res model.JobResult) {
	if m == nil {
		return
	}
	result := ResultLabel(res)
	m.runsTotal.WithLabelValues(result, res.ErrorKind).Inc()
	m.runDuration.WithLabelValues(result).Observe((time.Duration(res.ExecutionTimeMs) * time.Millisecond).Seconds())
	if res.Success {
		m.records.Set(float64(res.RecordCount))
	}
}
