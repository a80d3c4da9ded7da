package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultWebhookTimeout = 5 * time.Second
	defaultRetryBackoff   = 200 * time.Millisecond
	maxErrorBody          = 4 << 10
)

// StatusError is returned when an endpoint answers with a non-2xx status.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Endpoint, e.Code, e.Body)
}

// Retryable reports whether another attempt could succeed.
func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

// Webhook posts JSON documents to a single URL, retrying transport failures,
// 429 and 5xx answers with linear backoff.
type Webhook struct {
	name    string
	url     string
	client  *http.Client
	retries int
	backoff time.Duration
}

// WebhookOptions configures a Webhook.
type WebhookOptions struct {
	// Name prefixes errors, e.g. "slack".
	Name    string
	URL     string
	Client  *http.Client
	Timeout time.Duration
	Retries int
	Backoff time.Duration
}

// NewWebhook builds a Webhook. Client wins over Timeout when both are set.
func NewWebhook(opts WebhookOptions) *Webhook {
	hc := opts.Client
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultWebhookTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	return &Webhook{
		name:    opts.Name,
		url:     opts.URL,
		client:  hc,
		retries: max(opts.Retries, 0),
		backoff: backoff,
	}
}

// PostJSON encodes doc and delivers it.
func (w *Webhook) PostJSON(ctx context.Context, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: encode payload: %w", w.name, err)
	}

	var lastErr error
	for attempt := 0; attempt <= w.retries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, time.Duration(attempt)*w.backoff); err != nil {
				return err
			}
		}
		lastErr = w.send(ctx, body)
		if lastErr == nil || !retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (w *Webhook) send(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", w.name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", w.name, err)
	}
	defer resp.Body.Close() //nolint:errcheck // body fully consumed below

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		// Drain so the transport can reuse the connection.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Endpoint: w.name, Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FirstNonEmpty returns the first value that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
