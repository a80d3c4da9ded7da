package notify

import (
	"context"
	"time"
)

// Severity constants recognised by downstream sinks.
const (
	SeverityCritical = "critical"
	SeverityError    = "error"
)

// ReportFailurePayload is what sinks receive when a report run ends in Failed.
type ReportFailurePayload struct {
	RunID      string
	ErrorKind  string
	Stage      string
	Error      string
	Severity   string
	OccurredAt time.Time
	DurationMs int64
	Metadata   map[string]string
}

// Sink describes a destination capable of consuming report failure notifications.
type Sink interface {
	SendReportFailure(ctx context.Context, payload ReportFailurePayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload ReportFailurePayload) error

// SendReportFailure implements the Sink interface.
func (f SinkFunc) SendReportFailure(ctx context.Context, payload ReportFailurePayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}
