// Package pagerduty raises PagerDuty incidents for failed report runs.
package pagerduty

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hap-eb/ebill-reports/internal/observability/notify"
)

// APIEndpoint is the Events API v2 ingest URL.
const APIEndpoint = "https://events.pagerduty.com/v2/enqueue"

const (
	defaultSource    = "ebill-reports"
	defaultComponent = "report-pipeline"
	dedupPrefix      = "ebill-report"
)

// Config captures runtime configuration for the PagerDuty sink.
type Config struct {
	RoutingKey string
	Source     string
	Component  string
	Endpoint   string
	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client
}

// Event is an Events API v2 trigger.
type Event struct {
	RoutingKey  string       `json:"routing_key"`
	EventAction string       `json:"event_action"`
	DedupKey    string       `json:"dedup_key,omitempty"`
	Payload     EventPayload `json:"payload"`
}

// EventPayload is the incident body shown in PagerDuty.
type EventPayload struct {
	Summary       string         `json:"summary"`
	Severity      string         `json:"severity"`
	Source        string         `json:"source"`
	Component     string         `json:"component"`
	Class         string         `json:"class,omitempty"`
	Timestamp     string         `json:"timestamp"`
	CustomDetails map[string]any `json:"custom_details"`
}

// Client publishes report failures as PagerDuty trigger events.
type Client struct {
	routingKey string
	source     string
	component  string
	hook       *notify.Webhook
	now        func() time.Time
}

// NewClient requires a routing key.
func NewClient(cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.RoutingKey)
	if key == "" {
		return nil, errors.New("pagerduty routing key is required")
	}
	return &Client{
		routingKey: key,
		source:     strings.TrimSpace(notify.FirstNonEmpty(cfg.Source, defaultSource)),
		component:  strings.TrimSpace(notify.FirstNonEmpty(cfg.Component, defaultComponent)),
		hook: notify.NewWebhook(notify.WebhookOptions{
			Name:    "pagerduty",
			URL:     strings.TrimSpace(notify.FirstNonEmpty(cfg.Endpoint, APIEndpoint)),
			Client:  cfg.Client,
			Timeout: cfg.Timeout,
			Retries: cfg.RetryLimit,
		}),
		now: time.Now,
	}, nil
}

// SendReportFailure triggers an incident for the run.
func (c *Client) SendReportFailure(ctx context.Context, payload notify.ReportFailurePayload) error {
	return c.hook.PostJSON(ctx, c.event(payload))
}

// event builds the trigger. Repeated alerts for one run collapse into one
// incident through the dedup key.
func (c *Client) event(p notify.ReportFailurePayload) Event {
	at := p.OccurredAt
	if at.IsZero() {
		at = c.now()
	}
	runID := notify.FirstNonEmpty(p.RunID, "unknown")

	details := make(map[string]any, len(p.Metadata)+5)
	for k, v := range p.Metadata {
		details[k] = v
	}
	details["run_id"] = p.RunID
	details["error_kind"] = p.ErrorKind
	details["stage"] = p.Stage
	details["error"] = p.Error
	details["duration_ms"] = p.DurationMs

	return Event{
		RoutingKey:  c.routingKey,
		EventAction: "trigger",
		DedupKey:    dedupPrefix + ":" + runID,
		Payload: EventPayload{
			Summary:       fmt.Sprintf("Billing report run %s failed (%s)", runID, notify.FirstNonEmpty(p.ErrorKind, "unknown")),
			Severity:      strings.ToLower(notify.FirstNonEmpty(p.Severity, notify.SeverityCritical)),
			Source:        c.source,
			Component:     c.component,
			Class:         p.ErrorKind,
			Timestamp:     at.UTC().Format(time.RFC3339),
			CustomDetails: details,
		},
	}
}
