package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/hap-eb/ebill-reports/internal/core"
	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

// billReportQuery is the only statement issued by a report run.
const billReportQuery = `
	SELECT service_number, month, year, total_cost, pf_penalty, bill_date, created_at
	FROM bills
	WHERE bill_date >= $1 AND bill_date <= $2
	ORDER BY bill_date DESC, service_number ASC`

// Connector opens a single pgx connection. pgx.Connect satisfies it.
type Connector func(ctx context.Context, connString string) (*pgx.Conn, error)

// BillReportSourceOptions configures a BillReportSource.
type BillReportSourceOptions struct {
	DatabaseURL string
	Connect     Connector    // optional; defaults to pgx.Connect
	Logger      *slog.Logger // optional
}

// BillReportSource opens one dedicated connection per report run rather than
// borrowing from the API pool, so a run's connection lifetime is bounded by
// its Fetching stage.
type BillReportSource struct {
	dsn     string
	connect Connector
	logger  *slog.Logger
}

var _ core.BillReportSource = (*BillReportSource)(nil)

// NewBillReportSource constructs a BillReportSource. An empty DatabaseURL is
// accepted so the report's Validating stage can report it; Open refuses it.
func NewBillReportSource(opts BillReportSourceOptions) *BillReportSource {
	connect := opts.Connect
	if connect == nil {
		connect = pgx.Connect
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BillReportSource{
		dsn:     opts.DatabaseURL,
		connect: connect,
		logger:  logger.With("component", "bill_report_source"),
	}
}

// Open connects to the database.
func (s *BillReportSource) Open(ctx context.Context) (core.BillReportSession, error) {
	if s.dsn == "" {
		return nil, ErrDatabaseURLRequired
	}
	conn, err := s.connect(ctx, s.dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	s.logger.DebugContext(ctx, "report connection opened")
	return &billReportSession{conn: conn, logger: s.logger}, nil
}

type billReportSession struct {
	conn   *pgx.Conn
	logger *slog.Logger
}

// Fetch runs the report query for the window, preserving the query's ordering.
func (s *billReportSession) Fetch(ctx context.Context, window model.ReportWindow) ([]model.BillRecord, error) {
	if s.conn == nil {
		return nil, ErrReportSessionClosed
	}
	rows, err := s.conn.Query(ctx, billReportQuery, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("query bills: %w", err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.BillRecord])
	if err != nil {
		return nil, fmt.Errorf("scan bills: %w", err)
	}
	return records, nil
}

// Close releases the connection. Subsequent calls are no-ops.
func (s *billReportSession) Close(ctx context.Context) error {
	if s.conn == nil {
		return nil
	}
	conn := s.conn
	s.conn = nil
	if err := conn.Close(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("close report connection: %w", err)
	}
	s.logger.DebugContext(ctx, "report connection closed")
	return nil
}
