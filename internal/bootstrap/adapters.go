package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/redis/go-redis/v9"

	"github.com/hap-eb/ebill-reports/config"
	"github.com/hap-eb/ebill-reports/internal/adapters/s3store"
	schedrunner "github.com/hap-eb/ebill-reports/internal/adapters/scheduler"
	"github.com/hap-eb/ebill-reports/internal/adapters/sesmail"
	"github.com/hap-eb/ebill-reports/internal/adapters/xlsx"
	"github.com/hap-eb/ebill-reports/internal/core"
	"github.com/hap-eb/ebill-reports/internal/data"
	"github.com/hap-eb/ebill-reports/internal/observability/metrics"
	"github.com/hap-eb/ebill-reports/internal/service"
	"github.com/hap-eb/ebill-reports/internal/service/failurenotifier"
)

// NewAWSSession builds the session shared by the S3 and SES clients.
// AWS_ENDPOINT_URL switches S3 to path-style addressing for LocalStack and MinIO.
func NewAWSSession(cfg config.ReportConfig) (*session.Session, error) {
	awsCfg := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.AWSEndpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.AWSEndpoint).WithS3ForcePathStyle(true)
	}
	if cfg.HasStaticCredentials() {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""))
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return sess, nil
}

// ReportPipelineConfig contains the dependencies for the report pipeline.
type ReportPipelineConfig struct {
	Config          *config.AppConfig
	AWS             *session.Session
	RedisClient     redis.UniversalClient // optional; enables run history
	Metrics         *metrics.ReportMetrics
	FailureNotifier *failurenotifier.Service
	Logger          *slog.Logger
}

// NewReportService wires the report pipeline adapters into a ReportService.
func NewReportService(cfg ReportPipelineConfig) (*service.ReportService, error) {
	if cfg.Config == nil {
		return nil, errors.New("report pipeline: config is required")
	}
	if cfg.AWS == nil {
		return nil, errors.New("report pipeline: aws session is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reportCfg := cfg.Config.Report

	loc, err := reportCfg.Location()
	if err != nil {
		return nil, err
	}
	now := func() time.Time { return time.Now().In(loc) }

	var history core.RunHistoryRepository
	if cfg.RedisClient != nil {
		history = data.NewRedisRunHistoryRepo(cfg.RedisClient, cfg.Config.Redis.HistorySize)
	}

	return service.NewReportService(service.ReportServiceOptions{
		Config: reportCfg.ToJobConfig(cfg.Config.Postgres.URL),
		Source: data.NewBillReportSource(data.BillReportSourceOptions{
			DatabaseURL: cfg.Config.Postgres.URL,
			Logger:      logger,
		}),
		Renderer: xlsx.NewRenderer(xlsx.Options{Now: now}),
		Store: s3store.New(s3store.Options{
			Client:    s3.New(cfg.AWS),
			Bucket:    reportCfg.Bucket,
			KeyPrefix: reportCfg.KeyPrefix,
			URLTTL:    reportCfg.URLTTL,
			Now:       now,
			Logger:    logger,
		}),
		Notifier: sesmail.New(sesmail.Options{
			Client: ses.New(cfg.AWS),
			Now:    now,
			Logger: logger,
		}),
		History:         history,
		Metrics:         cfg.Metrics,
		FailureNotifier: cfg.FailureNotifier,
		Now:             now,
		Logger:          logger,
	})
}

// SchedulerConfig contains configuration for the report scheduler.
type SchedulerConfig struct {
	Reports schedrunner.ReportRunner
	Report  config.ReportConfig
	Logger  *slog.Logger
}

// RunScheduler fires report runs on REPORT_SCHEDULE until ctx is cancelled.
func RunScheduler(ctx context.Context, cfg SchedulerConfig) error {
	loc, err := cfg.Report.Location()
	if err != nil {
		return err
	}
	runner, err := schedrunner.NewRunner(schedrunner.RunnerOptions{
		Reports:  cfg.Reports,
		Spec:     cfg.Report.Schedule,
		Location: loc,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return fmt.Errorf("create report scheduler: %w", err)
	}
	return runner.Run(ctx)
}
