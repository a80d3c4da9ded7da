package bootstrap

import (
	"context"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hap-eb/ebill-reports/config"
)

func testAppConfig() *config.AppConfig {
	return &config.AppConfig{
		Services: "http,scheduler",
		Report: config.ReportConfig{
			LookbackDays:     30,
			Region:           "us-east-1",
			Bucket:           "ebill-reports",
			SenderAddress:    "reports@hap-eb.local",
			RecipientAddress: "admin@hap-eb.local",
			KeyPrefix:        "billing-report",
			Schedule:         "0 0 6 * * *",
			Timezone:         "UTC",
		},
		Postgres: config.DBConfig{URL: "postgres://app:secret@db:5432/ebill", MaxOpenConns: 5},
		HTTP:     config.HTTPConfig{Addr: ":0", BaseURL: "http://localhost:8080"},
		Observability: config.ObservabilityConfig{
			Metrics: config.ObservabilityMetricsConfig{Enabled: true, Path: "/metrics"},
		},
	}
}

func TestGetEnabledServices(t *testing.T) {
	tests := []struct {
		name     string
		services string
		want     []string
	}{
		{name: "both sorted", services: "scheduler,http", want: []string{"http", "scheduler"}},
		{name: "single", services: "http", want: []string{"http"}},
		{name: "invalid", services: "rules", want: []string{}},
		{name: "empty", services: "", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.AppConfig{Services: tt.services}
			assert.Equal(t, tt.want, GetEnabledServices(cfg))
		})
	}

	assert.Empty(t, GetEnabledServices(nil))
}

func TestValidateServiceConfig(t *testing.T) {
	require.NoError(t, ValidateServiceConfig(&config.AppConfig{Services: "http"}))

	err := ValidateServiceConfig(&config.AppConfig{Services: "http,bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid service configuration")

	require.Error(t, ValidateServiceConfig(&config.AppConfig{}))
	require.Error(t, ValidateServiceConfig(nil))
}

func TestConfigureLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := ConfigureLogger(&config.AppConfig{LogLevel: "debug", IsDev: true})
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.Same(t, logger, slog.Default())

	logger = ConfigureLogger(nil)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewAWSSession(t *testing.T) {
	t.Run("region only", func(t *testing.T) {
		sess, err := NewAWSSession(config.ReportConfig{Region: "ap-south-1"})
		require.NoError(t, err)
		assert.Equal(t, "ap-south-1", aws.StringValue(sess.Config.Region))
		assert.Empty(t, aws.StringValue(sess.Config.Endpoint))
		assert.False(t, aws.BoolValue(sess.Config.S3ForcePathStyle))
	})

	t.Run("custom endpoint and static credentials", func(t *testing.T) {
		sess, err := NewAWSSession(config.ReportConfig{
			Region:          "us-east-1",
			AWSEndpoint:     "http://localstack:4566",
			AccessKeyID:     "test",
			SecretAccessKey: "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, "http://localstack:4566", aws.StringValue(sess.Config.Endpoint))
		assert.True(t, aws.BoolValue(sess.Config.S3ForcePathStyle))

		creds, err := sess.Config.Credentials.Get()
		require.NoError(t, err)
		assert.Equal(t, "test", creds.AccessKeyID)
		assert.Equal(t, "secret", creds.SecretAccessKey)
	})
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "postgres://db:5432/ebill", redactDSN("postgres://app:secret@db:5432/ebill?sslmode=disable"))
	assert.Equal(t, "<redacted>", redactDSN("host=db user=app password=secret"))
}

func TestNewDirectClient(t *testing.T) {
	t.Run("url keeps its own db", func(t *testing.T) {
		client, addr, err := newDirectClient(config.RedisConfig{URI: "redis://cache:6380/2", Password: "pw"})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })
		assert.Equal(t, "cache:6380", addr)
	})

	t.Run("host and port", func(t *testing.T) {
		client, addr, err := newDirectClient(config.RedisConfig{URI: " cache:6379 ", DB: 3})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })
		assert.Equal(t, "cache:6379", addr)
	})

	t.Run("empty uri", func(t *testing.T) {
		_, _, err := newDirectClient(config.RedisConfig{URI: "  "})
		require.Error(t, err)
	})

	assert.True(t, isRedisURL("rediss://cache:6380"))
	assert.False(t, isRedisURL("cache:6379"))
}

func TestConnectRedisDisabled(t *testing.T) {
	client, err := ConnectRedis(DatabaseConfig{RedisConfig: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestConnectDBRequiresURL(t *testing.T) {
	_, err := ConnectDB(DatabaseConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestBuildFailureNotifier(t *testing.T) {
	t.Run("no sinks configured", func(t *testing.T) {
		svc := buildFailureNotifier(nil, config.ObservabilityNotificationsConfig{}, "")
		require.NotNil(t, svc)
		assert.False(t, svc.Enabled())
	})

	t.Run("slack and pagerduty", func(t *testing.T) {
		svc := buildFailureNotifier(slog.Default(), config.ObservabilityNotificationsConfig{
			Slack:     config.SlackNotificationConfig{WebhookURL: "https://hooks.slack.test/abc"},
			PagerDuty: config.PagerDutyNotificationConfig{RoutingKey: "routing-key"},
		}, "http://localhost:8080")
		assert.True(t, svc.Enabled())
	})
}

func TestBuildObservability(t *testing.T) {
	on := buildObservability(nil, config.ObservabilityConfig{
		Metrics: config.ObservabilityMetricsConfig{Enabled: true, Path: "/metrics"},
	}, "")
	require.NotNil(t, on.Registry)
	require.NotNil(t, on.ReportMetrics)
	assert.NotNil(t, on.FailureNotifier)

	off := buildObservability(nil, config.ObservabilityConfig{}, "")
	assert.Nil(t, off.Registry)
	assert.Nil(t, off.ReportMetrics)
}

func TestNewServices(t *testing.T) {
	cfg := testAppConfig()
	sess, err := NewAWSSession(cfg.Report)
	require.NoError(t, err)

	container, err := NewServices(&ServiceDeps{Config: cfg, AWS: sess})
	require.NoError(t, err)
	assert.Nil(t, container.Bills, "bills API needs a database pool")
	assert.NotNil(t, container.Reports)
	assert.NotNil(t, container.MetricsHandler)

	_, err = NewServices(&ServiceDeps{Config: cfg})
	require.Error(t, err)

	_, err = NewServices(nil)
	require.Error(t, err)
}

func TestNewHTTPServer(t *testing.T) {
	assert.Nil(t, NewHTTPServer(nil))

	srv := NewHTTPServer(&HTTPServerConfig{Config: &config.AppConfig{}})
	require.NotNil(t, srv)
	assert.Equal(t, ":8080", srv.Addr)
	assert.NotNil(t, srv.Handler)
}

func TestRunServicesWithShutdown(t *testing.T) {
	t.Run("scheduler stops on cancelled context", func(t *testing.T) {
		cfg := testAppConfig()
		cfg.Services = "scheduler"
		sess, err := NewAWSSession(cfg.Report)
		require.NoError(t, err)
		container, err := NewServices(&ServiceDeps{Config: cfg, AWS: sess})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err = RunServicesWithShutdown(ctx, &ServiceOrchestrationConfig{Config: cfg, Services: container})
		require.NoError(t, err)
	})

	t.Run("scheduler without report service", func(t *testing.T) {
		cfg := testAppConfig()
		cfg.Services = "scheduler"
		err := RunServicesWithShutdown(context.Background(), &ServiceOrchestrationConfig{Config: cfg})
		require.Error(t, err)
	})

	t.Run("invalid services", func(t *testing.T) {
		cfg := testAppConfig()
		cfg.Services = "rules"
		err := RunServicesWithShutdown(context.Background(), &ServiceOrchestrationConfig{Config: cfg})
		require.Error(t, err)
	})

	t.Run("nil config", func(t *testing.T) {
		require.Error(t, RunServicesWithShutdown(context.Background(), nil))
	})
}
