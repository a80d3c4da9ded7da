package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:     "single service - http",
			input:    "http",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true},
		},
		{
			name:     "single service - scheduler",
			input:    "scheduler",
			expected: map[ServiceMode]bool{ServiceModeScheduler: true},
		},
		{
			name:  "both services with whitespace",
			input: " http , scheduler ",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:      true,
				ServiceModeScheduler: true,
			},
		},
		{
			name:     "case-insensitive",
			input:    "HTTP,Scheduler",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true, ServiceModeScheduler: true},
		},
		{
			name:     "trailing comma ignored",
			input:    "http,",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true},
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "only commas",
			input:       ",,",
			expectError: true,
		},
		{
			name:        "unknown service",
			input:       "http,reaper",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseServices(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestConfig_ServiceEnabledMethods(t *testing.T) {
	cfg := &AppConfig{Services: "scheduler"}
	if cfg.IsHTTPServerEnabled() {
		t.Error("expected HTTP server to be disabled")
	}
	if !cfg.IsSchedulerEnabled() {
		t.Error("expected scheduler to be enabled")
	}

	cfg = &AppConfig{Services: "bogus"}
	if cfg.IsHTTPServerEnabled() || cfg.IsSchedulerEnabled() {
		t.Error("expected all services disabled for invalid config")
	}
}

func TestValidServiceModes(t *testing.T) {
	modes := ValidServiceModes()
	expected := []ServiceMode{ServiceModeHTTP, ServiceModeScheduler}
	if !reflect.DeepEqual(modes, expected) {
		t.Errorf("expected %v, got %v", expected, modes)
	}
}

func TestAppConfig_ParseReportEnvDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://ebill@db:5432/ebill")
	t.Setenv("S3_BUCKET", "hap-eb-reports")
	t.Setenv("SES_FROM", "reports@hap-eb.local")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	cfg.Sanitize()

	r := cfg.Report
	if r.LookbackDays != 30 {
		t.Errorf("expected REPORT_DAYS default 30, got %d", r.LookbackDays)
	}
	if r.Region != "us-east-1" {
		t.Errorf("expected AWS_REGION default us-east-1, got %q", r.Region)
	}
	if r.RecipientAddress != "admin@hap-eb.local" {
		t.Errorf("expected ADMIN_EMAIL default, got %q", r.RecipientAddress)
	}
	if r.KeyPrefix != "billing-report" {
		t.Errorf("expected key prefix default, got %q", r.KeyPrefix)
	}
	if r.URLTTL != 7*24*time.Hour {
		t.Errorf("expected URL TTL default 168h, got %v", r.URLTTL)
	}
	if r.Schedule != "0 0 6 * * *" {
		t.Errorf("expected schedule default, got %q", r.Schedule)
	}
	if cfg.Services != "http,scheduler" {
		t.Errorf("expected services default, got %q", cfg.Services)
	}

	job := r.ToJobConfig(cfg.Postgres.URL)
	if err := job.Validate(); err != nil {
		t.Fatalf("expected defaults plus required vars to validate: %v", err)
	}
	if job.DatabaseURL != "postgres://ebill@db:5432/ebill" || job.StorageBucket != "hap-eb-reports" {
		t.Errorf("unexpected job config: %+v", job)
	}
}

func TestAppConfig_MissingRequiredReportEnvFailsValidation(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("SES_FROM", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	cfg.Sanitize()

	if err := cfg.Report.ToJobConfig(cfg.Postgres.URL).Validate(); err == nil {
		t.Fatal("expected validation error without DATABASE_URL, S3_BUCKET and SES_FROM")
	}
}

func TestReportConfig_Sanitize(t *testing.T) {
	cfg := ReportConfig{
		Bucket:    " hap-eb-reports ",
		KeyPrefix: "/monthly/",
		URLTTL:    30 * 24 * time.Hour,
		Timezone:  "",
	}
	cfg.Sanitize()

	if cfg.Bucket != "hap-eb-reports" {
		t.Errorf("expected bucket trimmed, got %q", cfg.Bucket)
	}
	if cfg.KeyPrefix != "monthly" {
		t.Errorf("expected key prefix without slashes, got %q", cfg.KeyPrefix)
	}
	if cfg.URLTTL != 7*24*time.Hour {
		t.Errorf("expected TTL clamped to 7 days, got %v", cfg.URLTTL)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("expected UTC fallback, got %q", cfg.Timezone)
	}

	cfg.URLTTL = time.Hour
	cfg.Sanitize()
	if cfg.URLTTL != time.Hour {
		t.Errorf("expected TTL within range to be kept, got %v", cfg.URLTTL)
	}
}

func TestReportConfig_Location(t *testing.T) {
	cfg := ReportConfig{Timezone: "UTC"}
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Fatalf("expected UTC, got %v, %v", loc, err)
	}

	cfg.Timezone = "Mars/Olympus_Mons"
	if _, err := cfg.Location(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestAppConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		cfg := AppConfig{LogLevel: in}
		if got := cfg.SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRedisConfig_Sanitize(t *testing.T) {
	cfg := RedisConfig{Enabled: true, URI: " ", HistorySize: 5000}
	cfg.Sanitize()
	if cfg.Enabled {
		t.Error("expected redis disabled without a URI")
	}
	if cfg.HistorySize != 1000 {
		t.Errorf("expected history size capped, got %d", cfg.HistorySize)
	}
	if cfg.TrendCacheTTL != 5*time.Minute {
		t.Errorf("expected default trend cache ttl, got %s", cfg.TrendCacheTTL)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Enabled: true, Path: " metrics "}
	cfg.Sanitize()
	if cfg.Path != "/metrics" {
		t.Fatalf("expected normalised path, got %q", cfg.Path)
	}
}

func TestObservabilityNotificationsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityNotificationsConfig{
		Timeout:    0,
		RetryLimit: -1,
		Slack: SlackNotificationConfig{
			WebhookURL: " ",
			Channel:    "  ",
		},
		PagerDuty: PagerDutyNotificationConfig{
			RoutingKey: " ",
		},
	}

	cfg.Sanitize()

	if cfg.Timeout <= 0 {
		t.Fatalf("expected timeout to fall back to default, got %v", cfg.Timeout)
	}
	if cfg.RetryLimit < 0 {
		t.Fatalf("expected retry limit to be clamped to >= 0, got %d", cfg.RetryLimit)
	}
	if cfg.Slack.Enabled() {
		t.Fatal("expected slack to be disabled without a webhook url")
	}
	if cfg.PagerDuty.Enabled() {
		t.Fatal("expected pagerduty to be disabled without a routing key")
	}
	if cfg.Slack.Username != "ebill-reports" {
		t.Fatalf("expected slack username default, got %q", cfg.Slack.Username)
	}
	if cfg.PagerDuty.Source != "ebill-reports" {
		t.Fatalf("expected pagerduty source default, got %q", cfg.PagerDuty.Source)
	}
	if cfg.PagerDuty.Component != "report-pipeline" {
		t.Fatalf("expected pagerduty component default, got %q", cfg.PagerDuty.Component)
	}

	cfg.Slack.WebhookURL = "https://hooks.slack.com/services/test"
	cfg.PagerDuty.RoutingKey = "abc"
	cfg.Sanitize()
	if !cfg.Slack.Enabled() || !cfg.PagerDuty.Enabled() {
		t.Fatal("expected sinks to be enabled once configured")
	}
}
