package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/hap-eb/ebill-reports/config"
	"github.com/hap-eb/ebill-reports/internal/data"
	"github.com/hap-eb/ebill-reports/internal/observability/metrics"
	"github.com/hap-eb/ebill-reports/internal/observability/notify/pagerduty"
	"github.com/hap-eb/ebill-reports/internal/observability/notify/slack"
	"github.com/hap-eb/ebill-reports/internal/service"
	"github.com/hap-eb/ebill-reports/internal/service/failurenotifier"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Bills         *service.BillService
	Reports       *service.ReportService
	Observability ObservabilityContainer

	// MetricsHandler serves the Prometheus registry; nil when metrics are disabled.
	MetricsHandler http.Handler
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	Registry        *prometheus.Registry
	ReportMetrics   *metrics.ReportMetrics
	MetricsConfig   config.ObservabilityMetricsConfig
	FailureNotifier *failurenotifier.Service
	NotifierConfig  config.ObservabilityNotificationsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB               // optional; the bills API is only mounted with a pool
	RedisClient redis.UniversalClient // optional
	AWS         *session.Session
	Logger      *slog.Logger
}

// buildObservability configures metrics and notification adapters.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig, dashboardURL string) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	container := ObservabilityContainer{
		MetricsConfig:   cfg.Metrics,
		FailureNotifier: buildFailureNotifier(obsLogger, cfg.Notifications, dashboardURL),
		NotifierConfig:  cfg.Notifications,
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		container.Registry = reg
		container.ReportMetrics = metrics.NewReportMetrics(reg)
	}
	return container
}

// NewServices wires the bill and report services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	observability := buildObservability(logger, deps.Config.Observability, deps.Config.HTTP.BaseURL)

	reports, err := NewReportService(ReportPipelineConfig{
		Config:          deps.Config,
		AWS:             deps.AWS,
		RedisClient:     deps.RedisClient,
		Metrics:         observability.ReportMetrics,
		FailureNotifier: observability.FailureNotifier,
		Logger:          logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build report service: %w", err)
	}

	container := ServiceContainer{
		Reports:       reports,
		Observability: observability,
	}
	if deps.DB != nil {
		billOpts := service.BillServiceOptions{
			Repo:   data.NewBillRepo(deps.DB),
			Logger: logger,
		}
		if deps.RedisClient != nil {
			billOpts.Cache = data.NewRedisTrendCache(deps.RedisClient)
			billOpts.CacheTTL = deps.Config.Redis.TrendCacheTTL
		}
		container.Bills = service.NewBillService(billOpts)
	}
	if observability.Registry != nil {
		container.MetricsHandler = promhttp.HandlerFor(observability.Registry, promhttp.HandlerOpts{})
	}
	return container, nil
}

func buildFailureNotifier(
	logger *slog.Logger,
	cfg config.ObservabilityNotificationsConfig,
	dashboardURL string,
) *failurenotifier.Service {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	sinks := make([]failurenotifier.SinkRegistration, 0, 2)

	if cfg.Slack.Enabled() {
		client, err := slack.NewClient(slack.Config{
			WebhookURL:   cfg.Slack.WebhookURL,
			Channel:      cfg.Slack.Channel,
			Username:     cfg.Slack.Username,
			Timeout:      cfg.Timeout,
			RetryLimit:   cfg.RetryLimit,
			DashboardURL: dashboardURL,
		})
		if err != nil {
			baseLogger.Error("failed to initialise slack notifier", "error", err)
		} else {
			sinks = append(sinks, failurenotifier.SinkRegistration{
				Name: "slack",
				Sink: client,
			})
		}
	}

	if cfg.PagerDuty.Enabled() {
		client, err := pagerduty.NewClient(pagerduty.Config{
			RoutingKey: cfg.PagerDuty.RoutingKey,
			Source:     cfg.PagerDuty.Source,
			Component:  cfg.PagerDuty.Component,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
		})
		if err != nil {
			baseLogger.Error("failed to initialise pagerduty notifier", "error", err)
		} else {
			sinks = append(sinks, failurenotifier.SinkRegistration{
				Name: "pagerduty",
				Sink: client,
			})
		}
	}

	// Room for every retry plus backoff.
	sinkTimeout := cfg.Timeout*time.Duration(cfg.RetryLimit+1) + 2*time.Second
	svc := failurenotifier.NewService(failurenotifier.Options{
		Logger:  baseLogger.With("component", "failure_notifier"),
		Sinks:   sinks,
		Timeout: sinkTimeout,
	})
	if svc.Enabled() {
		baseLogger.Info("failure alerts enabled", "sinks", svc.SinkNames())
	}
	return svc
}

// ServiceOrchestrationConfig contains everything RunServicesWithShutdown starts.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// It blocks until SIGINT/SIGTERM, ctx cancellation, or the first service failure,
// then stops the remaining services.
func RunServicesWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	if enabledServices[config.ServiceModeScheduler] && cfg.Services.Reports == nil {
		return errors.New("scheduler enabled without a report service")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	if enabledServices[config.ServiceModeHTTP] {
		startHTTP(gctx, g, cfg, logger)
	}

	if enabledServices[config.ServiceModeScheduler] {
		g.Go(func() error {
			logger.InfoContext(gctx, "background service started", "service", "scheduler",
				"schedule", cfg.Config.Report.Schedule, "timezone", cfg.Config.Report.Timezone)
			if err := RunScheduler(gctx, SchedulerConfig{
				Reports: cfg.Services.Reports,
				Report:  cfg.Config.Report,
				Logger:  logger,
			}); err != nil {
				return fmt.Errorf("scheduler failed: %w", err)
			}
			logger.Info("scheduler stopped")
			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		logger.Error("service error", "error", err)
	}
	return err
}

func startHTTP(ctx context.Context, g *errgroup.Group, cfg *ServiceOrchestrationConfig, logger *slog.Logger) {
	server := NewHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return ShutdownHTTPServer(ShutdownConfig{
			Context: context.WithoutCancel(ctx),
			Server:  server,
			Timeout: cfg.Config.HTTP.ShutdownTimeout,
			Logger:  logger,
		})
	})
}
