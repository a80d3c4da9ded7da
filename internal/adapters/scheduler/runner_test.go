package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

type countingRunner struct {
	calls atomic.Int32
	delay time.Duration
}

func (c *countingRunner) Run(ctx context.Context) model.JobResult {
	n := c.calls.Add(1)
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
		}
	}
	return model.JobResult{RunID: "run", Success: n%2 == 1}
}

func TestNewRunner_Validation(t *testing.T) {
	_, err := NewRunner(RunnerOptions{})
	require.Error(t, err)

	_, err = NewRunner(RunnerOptions{Reports: &countingRunner{}, Spec: "every tuesday"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse report schedule")
}

func TestRunner_NextUsesDefaultSpecAndLocation(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	r, err := NewRunner(RunnerOptions{Reports: &countingRunner{}, Location: kolkata})
	require.NoError(t, err)

	from := time.Date(2024, 3, 1, 7, 0, 0, 0, kolkata)
	next := r.Next(from)
	want := time.Date(2024, 3, 2, 6, 0, 0, 0, kolkata)
	assert.True(t, want.Equal(next), "next run %s, want %s", next, want)
}

func TestRunner_RunFiresUntilCancelled(t *testing.T) {
	reports := &countingRunner{}
	r, err := NewRunner(RunnerOptions{Reports: reports, Spec: "* * * * * *"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return reports.calls.Load() >= 2 }, 5*time.Second, 50*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop")
	}

	stopped := reports.calls.Load()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, stopped, reports.calls.Load(), "no runs after stop")
}

func TestReportJob_SkipsOverlappingTicks(t *testing.T) {
	reports := &countingRunner{delay: 200 * time.Millisecond}
	job := &reportJob{ctx: context.Background(), reports: reports, logger: discardLogger()}

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			job.Run()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), reports.calls.Load())
}

func TestReportJob_StopRefusesNewRuns(t *testing.T) {
	reports := &countingRunner{}
	job := &reportJob{ctx: context.Background(), reports: reports, logger: discardLogger()}

	job.stop()
	job.Run()

	assert.Zero(t, reports.calls.Load())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
