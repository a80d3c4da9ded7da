package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

// maxReportURLTTL is the longest lifetime SigV4 allows for a presigned URL.
const maxReportURLTTL = 7 * 24 * time.Hour

// ReportConfig contains the report pipeline configuration.
// Required values are checked when a run starts, not at load time.
type ReportConfig struct {
	// LookbackDays selects bills dated within the last N days.
	LookbackDays int `env:"REPORT_DAYS" envDefault:"30"`

	// Region is the AWS region for S3 and SES.
	Region string `env:"AWS_REGION" envDefault:"us-east-1"`

	// Bucket receives the rendered workbooks.
	Bucket string `env:"S3_BUCKET"`

	// SenderAddress is the verified SES identity the notification is sent from.
	SenderAddress string `env:"SES_FROM"`

	// RecipientAddress receives the "report ready" message.
	RecipientAddress string `env:"ADMIN_EMAIL" envDefault:"admin@hap-eb.local"`

	// KeyPrefix names artifacts reports/<prefix>-<date>-<uuid>.xlsx.
	KeyPrefix string `env:"REPORT_KEY_PREFIX" envDefault:"billing-report"`

	// URLTTL is the presigned download link lifetime.
	URLTTL time.Duration `env:"REPORT_URL_TTL" envDefault:"168h"`

	// Schedule is a six-field cron spec (seconds first).
	Schedule string `env:"REPORT_SCHEDULE" envDefault:"0 0 6 * * *"`

	// Timezone is the IANA zone for the schedule and report timestamps.
	Timezone string `env:"REPORT_TIMEZONE" envDefault:"UTC"`

	// AWSEndpoint overrides the S3 and SES endpoint (LocalStack, MinIO).
	AWSEndpoint string `env:"AWS_ENDPOINT_URL"`

	// Static credentials are optional; the SDK's default chain applies when unset.
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
}

// HasStaticCredentials reports whether both static credential values are set.
func (c *ReportConfig) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// Sanitize applies guardrails to report configuration values.
func (c *ReportConfig) Sanitize() {
	c.Region = strings.TrimSpace(c.Region)
	c.Bucket = strings.TrimSpace(c.Bucket)
	c.SenderAddress = strings.TrimSpace(c.SenderAddress)
	c.RecipientAddress = strings.TrimSpace(c.RecipientAddress)
	c.KeyPrefix = strings.Trim(strings.TrimSpace(c.KeyPrefix), "/")
	c.Schedule = strings.TrimSpace(c.Schedule)
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.AWSEndpoint = strings.TrimSpace(c.AWSEndpoint)
	c.AccessKeyID = strings.TrimSpace(c.AccessKeyID)
	c.SecretAccessKey = strings.TrimSpace(c.SecretAccessKey)

	if c.URLTTL <= 0 || c.URLTTL > maxReportURLTTL {
		c.URLTTL = maxReportURLTTL
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
}

// Location resolves Timezone.
func (c *ReportConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load REPORT_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ToJobConfig builds the per-run pipeline configuration.
func (c *ReportConfig) ToJobConfig(databaseURL string) model.ReportJobConfig {
	return model.ReportJobConfig{
		DatabaseURL:      databaseURL,
		LookbackDays:     c.LookbackDays,
		StorageBucket:    c.Bucket,
		Region:           c.Region,
		SenderAddress:    c.SenderAddress,
		RecipientAddress: c.RecipientAddress,
		KeyPrefix:        c.KeyPrefix,
		URLTTL:           c.URLTTL,
	}
}
