// Package slack posts report failure alerts to an incoming webhook.
package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/hap-eb/ebill-reports/internal/observability/notify"
)

const defaultUsername = "ebill-reports"

// Config captures webhook settings. DashboardURL, when set, turns the run
// id into a link to the run list.
type Config struct {
	WebhookURL   string
	Channel      string
	Username     string
	Timeout      time.Duration
	RetryLimit   int
	Client       *http.Client
	DashboardURL string
}

// Message is the webhook body.
type Message struct {
	Text     string `json:"text"`
	Username string `json:"username,omitempty"`
	Channel  string `json:"channel,omitempty"`
}

// Client delivers report failure notifications to Slack.
type Client struct {
	channel   string
	username  string
	dashboard *url.URL
	hook      *notify.Webhook
	now       func() time.Time
}

// NewClient requires a webhook URL. An unparseable DashboardURL is ignored.
func NewClient(cfg Config) (*Client, error) {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, errors.New("slack webhook url is required")
	}
	return &Client{
		channel:   strings.TrimSpace(cfg.Channel),
		username:  strings.TrimSpace(notify.FirstNonEmpty(cfg.Username, defaultUsername)),
		dashboard: parseDashboard(cfg.DashboardURL),
		hook: notify.NewWebhook(notify.WebhookOptions{
			Name:    "slack",
			URL:     webhookURL,
			Client:  cfg.Client,
			Timeout: cfg.Timeout,
			Retries: cfg.RetryLimit,
		}),
		now: time.Now,
	}, nil
}

func parseDashboard(raw string) *url.URL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}
	return u
}

// SendReportFailure posts the formatted alert.
func (c *Client) SendReportFailure(ctx context.Context, payload notify.ReportFailurePayload) error {
	return c.hook.PostJSON(ctx, c.formatMessage(payload))
}

func (c *Client) formatMessage(p notify.ReportFailurePayload) Message {
	at := p.OccurredAt
	if at.IsZero() {
		at = c.now()
	}

	headline := "*Billing report run failed*"
	if p.ErrorKind != "" {
		headline += " (" + p.ErrorKind + ")"
	}
	lines := []string{headline}

	var duration string
	if p.DurationMs > 0 {
		duration = fmt.Sprintf("%dms", p.DurationMs)
	}
	lines = appendField(lines, "Severity", notify.FirstNonEmpty(p.Severity, notify.SeverityCritical))
	lines = appendField(lines, "Run", c.runLink(p.RunID))
	lines = appendField(lines, "Stage", p.Stage)
	lines = appendField(lines, "Duration", duration)
	lines = appendField(lines, "Error", escape(p.Error))

	if len(p.Metadata) > 0 {
		lines = append(lines, "• Metadata:")
		keys := make([]string, 0, len(p.Metadata))
		for k := range p.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("    • %s: %s", k, escape(p.Metadata[k])))
		}
	}
	lines = append(lines, "• Timestamp: "+at.UTC().Format(time.RFC3339))

	return Message{
		Text:     strings.Join(lines, "\n"),
		Username: c.username,
		Channel:  c.channel,
	}
}

func appendField(lines []string, label, value string) []string {
	if strings.TrimSpace(value) == "" {
		return lines
	}
	return append(lines, "• "+label+": "+value)
}

// runLink renders the run id, linked to the dashboard when one is configured.
func (c *Client) runLink(runID string) string {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return ""
	}
	if c.dashboard == nil {
		return "`" + escape(runID) + "`"
	}
	u := *c.dashboard
	q := u.Query()
	q.Set("run", runID)
	u.RawQuery = q.Encode()
	return fmt.Sprintf("<%s|%s>", u.String(), escape(runID))
}

var slackEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string { return slackEscaper.Replace(s) }
