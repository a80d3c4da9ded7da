package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

func TestObserveRun(t *testing.T) {
	m := NewReportMetrics(prometheus.NewRegistry())

	m.ObserveRun(model.JobResult{Success: true, RecordCount: 2, ExecutionTimeMs: 1500})
	m.ObserveRun(model.JobResult{Success: true, RecordCount: 0})
	m.ObserveRun(model.JobResult{Success: false, ErrorKind: "StoreError"})

	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.runsTotal.WithLabelValues(ResultSuccess, "")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.runsTotal.WithLabelValues(ResultEmpty, "")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.runsTotal.WithLabelValues(ResultError, "StoreError")))
	assert.Equal(t, 0.0, promtestutil.ToFloat64(m.records), "last successful run had zero rows")
	assert.Equal(t, 3, promtestutil.CollectAndCount(m.runDuration))
}

func TestObserveRun_NilIsNoop(t *testing.T) {
	var m *ReportMetrics
	assert.NotPanics(t, func() { m.ObserveRun(model.JobResult{Success: true}) })
}
