// Package sesmail sends the "report ready" email through Amazon SES.
package sesmail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	texttemplate "text/template"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"

	"github.com/hap-eb/ebill-reports/internal/core"
	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

const charset = "UTF-8"

// ErrMissingURL is returned when asked to notify about an artifact without a link.
var ErrMissingURL = errors.New("artifact url is required")

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2933;">
  <h2 style="color: #1d4ed8;">HAP-EB Billing Report</h2>
  <p>The billing report is ready.</p>
  <p><strong>Period:</strong> {{.Period}}<br><strong>Records:</strong> {{.Count}}<br><strong>Generated:</strong> {{.Generated}}</p>
  <p>
    <a href="{{.URL}}" style="display: inline-block; padding: 12px 24px; background-color: #1d4ed8; color: #ffffff; text-decoration: none; border-radius: 6px; font-weight: bold;">Download Report</a>
  </p>
  <p style="font-size: 12px; color: #6b7280;">This link expires; download the file to keep a copy.</p>
</body>
</html>
`))

var textBody = texttemplate.Must(texttemplate.New("text").Parse(`HAP-EB Billing Report

The billing report is ready.

Period: {{.Period}}
Records: {{.Count}}
Generated: {{.Generated}}

Download: {{.URL}}

This link expires; download the file to keep a copy.
`))

type messageData struct {
	Period    string
	Count     int
	Generated string
	URL       string
}

// Options configures a Notifier.
type Options struct {
	Client sesiface.SESAPI // required
	Now    func() time.Time
	Logger *slog.Logger
}

// Notifier implements core.ReportNotifier with one SES SendEmail call.
type Notifier struct {
	client sesiface.SESAPI
	now    func() time.Time
	logger *slog.Logger
}

var _ core.ReportNotifier = (*Notifier)(nil)

// New constructs a Notifier. It panics when Client is nil.
func New(opts Options) *Notifier {
	if opts.Client == nil {
		panic("sesmail: Client is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{client: opts.Client, now: now, logger: logger.With("component", "sesmail")}
}

// Subject returns the email subject for a report generated at t.
func Subject(t time.Time) string {
	return "HAP-EB Billing Report - " + t.Format(time.DateOnly)
}

// Notify sends exactly one message to cfg.RecipientAddress. It never retries.
func (n *Notifier) Notify(ctx context.Context, ref model.StoredArtifactRef, recordCount int, cfg model.ReportJobConfig) error {
	if ref.URL == "" {
		return ErrMissingURL
	}
	now := n.now()
	data := messageData{
		Period:    model.LookbackDescription(cfg.LookbackDays),
		Count:     recordCount,
		Generated: now.Format(time.RFC1123),
		URL:       ref.URL,
	}

	var html, text bytes.Buffer
	if err := htmlBody.Execute(&html, data); err != nil {
		return fmt.Errorf("render html body: %w", err)
	}
	if err := textBody.Execute(&text, data); err != nil {
		return fmt.Errorf("render text body: %w", err)
	}

	out, err := n.client.SendEmailWithContext(ctx, &ses.SendEmailInput{
		Source:      aws.String(cfg.SenderAddress),
		Destination: &ses.Destination{ToAddresses: []*string{aws.String(cfg.RecipientAddress)}},
		Message: &ses.Message{
			Subject: &ses.Content{Charset: aws.String(charset), Data: aws.String(Subject(now))},
			Body: &ses.Body{
				Html: &ses.Content{Charset: aws.String(charset), Data: aws.String(html.String())},
				Text: &ses.Content{Charset: aws.String(charset), Data: aws.String(text.String())},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send report email to %s: %w", cfg.RecipientAddress, err)
	}
	n.logger.InfoContext(ctx, "report email sent",
		"recipient", cfg.RecipientAddress,
		"message_id", aws.StringValue(out.MessageId),
		"key", ref.Key,
	)
	return nil
}
