//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// XLSXContentType is the MIME type of rendered report artifacts.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrInvalidReportConfig is returned by ReportJobConfig.Validate.
var ErrInvalidReportConfig = errors.New("invalid report configuration")

// ReportJobConfig is built once per run from the process configuration.
// Every field must be present before the pipeline performs any I/O.
type ReportJobConfig struct {
	DatabaseURL      string        `json:"-"                 label:"DATABASE_URL"      validate:"required"`
	LookbackDays     int           `json:"lookback_days"     label:"REPORT_DAYS"       validate:"min=0"`
	StorageBucket    string        `json:"storage_bucket"    label:"S3_BUCKET"         validate:"required"`
	Region           string        `json:"region"            label:"AWS_REGION"        validate:"required"`
	SenderAddress    string        `json:"sender_address"    label:"SES_FROM"          validate:"required,email"`
	RecipientAddress string        `json:"recipient_address" label:"ADMIN_EMAIL"       validate:"required,email"`
	KeyPrefix        string        `json:"key_prefix"        label:"REPORT_KEY_PREFIX" validate:"required"`
	URLTTL           time.Duration `json:"url_ttl"           label:"REPORT_URL_TTL"    validate:"gt=0"`
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	return v
}

// LookbackDescription names a lookback window for people: "Today",
// "Last 1 day" or "Last N days".
func LookbackDescription(days int) string {
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Last 1 day"
	default:
		return fmt.Sprintf("Last %d days", days)
	}
}

// Validate checks that every required value is present and well-formed.
// The error lists each offending environment variable.
func (c ReportJobConfig) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidReportConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidReportConfig, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " environment variable is required"
	case "email":
		return fe.Field() + " must be an email address"
	case "min":
		return fe.Field() + " must be >= " + fe.Param()
	case "gt":
		return fe.Field() + " must be positive"
	default:
		return fe.Field() + " is invalid"
	}
}

// ReportWindow is the closed bill_date range selected by one run.
type ReportWindow struct {
	Start time.Time
	End   time.Time
}

// LookbackWindow returns [now - days, now].
func LookbackWindow(now time.Time, days int) ReportWindow {
	return ReportWindow{Start: now.AddDate(0, 0, -days), End: now}
}

// ReportArtifact is the rendered workbook. It is consumed once by the artifact store.
type ReportArtifact struct {
	Buffer       []byte
	RowCount     int
	TotalCost    decimal.Decimal
	TotalPenalty decimal.Decimal
}

// StoredArtifactRef locates a stored artifact. URL is only set after a successful write.
type StoredArtifactRef struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// StoredReport is one artifact listed from object storage.
type StoredReport struct {
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// DateRange is an inclusive pair of ISO calendar dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ReportSummary aggregates the fetched rows for the trigger response.
type ReportSummary struct {
	TotalRecords   int             `json:"totalRecords"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	TotalPenalties decimal.Decimal `json:"totalPenalties"`
	DateRange      DateRange       `json:"dateRange"`
	UniqueServices int             `json:"uniqueServices"`
}

// SummarizeBills computes totals and distinct service numbers over rows.
func SummarizeBills(rows []BillRecord, window ReportWindow) ReportSummary {
	s := ReportSummary{
		TotalRecords:   len(rows),
		TotalCost:      decimal.Zero,
		TotalPenalties: decimal.Zero,
		DateRange: DateRange{
			Start: window.Start.Format(time.DateOnly),
			End:   window.End.Format(time.DateOnly),
		},
	}
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		s.TotalCost = s.TotalCost.Add(r.TotalCost)
		s.TotalPenalties = s.TotalPenalties.Add(r.PFPenalty)
		seen[r.ServiceNumber] = struct{}{}
	}
	s.UniqueServices = len(seen)
	return s
}

// JobResult is the terminal outcome of one report run. Exactly one is produced per run.
type JobResult struct {
	RunID           string         `json:"reportId"`
	Success         bool           `json:"success"`
	Message         string         `json:"message,omitempty"`
	Error           string         `json:"error,omitempty"`
	ErrorKind       string         `json:"errorKind,omitempty"`
	Stage           string         `json:"stage,omitempty"`
	RecordCount     int            `json:"recordCount"`
	ArtifactKey     string         `json:"reportKey,omitempty"`
	ArtifactURL     string         `json:"reportUrl,omitempty"`
	ExecutionTimeMs int64          `json:"executionTime"`
	Timestamp       time.Time      `json:"timestamp"`
	Summary         *ReportSummary `json:"summary,omitempty"`
}
