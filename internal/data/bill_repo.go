package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hap-eb/ebill-reports/internal/core"
	"github.com/hap-eb/ebill-reports/internal/data/pgxutil"
	"github.com/hap-eb/ebill-reports/internal/domain/model"
	apperrors "github.com/hap-eb/ebill-reports/internal/errors"
)

const (
	defaultBillListLimit = 50
	maxBillListLimit     = 500
	maxTrendMonths       = 36
)

const billColumns = `id, service_number, month, year, total_cost, pf_penalty, bill_date, created_at, updated_at`

const (
	billGetByIDQuery = `SELECT ` + billColumns + ` FROM bills WHERE id = $1`

	billListQuery = `
		SELECT ` + billColumns + `
		FROM bills
		WHERE ($1::text IS NULL OR service_number = $1)
		  AND ($2::int IS NULL OR year = $2)
		ORDER BY bill_date DESC, service_number ASC
		LIMIT $3 OFFSET $4`

	billInsertQuery = `
		INSERT INTO bills (service_number, month, year, total_cost, pf_penalty, bill_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + billColumns

	billTrendQuery = `
		SELECT to_char(date_trunc('month', bill_date), 'YYYY-MM') AS month,
		       COALESCE(SUM(total_cost), 0) AS total_cost,
		       COALESCE(SUM(pf_penalty), 0) AS total_penalties,
		       COUNT(*)::int AS bill_count
		FROM bills
		WHERE bill_date >= (date_trunc('month', $1::date) - make_interval(months => $2 - 1))::date
		GROUP BY 1
		ORDER BY 1 ASC`
)

// BillRepo provides pool-backed CRUD over the bills table for the dashboard grid.
type BillRepo struct {
	DB    *sql.DB
	clock Clock
}

var _ core.BillRepository = (*BillRepo)(nil)

// NewBillRepo creates a BillRepo on the wall clock.
func NewBillRepo(db *sql.DB) *BillRepo {
	return NewBillRepoWithClock(db, SystemClock)
}

// NewBillRepoWithClock creates a BillRepo whose timestamps come from clock.
func NewBillRepoWithClock(db *sql.DB, clock Clock) *BillRepo {
	return &BillRepo{DB: db, clock: clock}
}

// List returns bills ordered like the report (bill_date DESC, service_number ASC).
func (r *BillRepo) List(ctx context.Context, opts model.BillListOptions) ([]*model.Bill, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultBillListLimit
	}
	limit = min(limit, maxBillListLimit)
	offset := max(opts.Offset, 0)

	var serviceNumber *string
	if opts.ServiceNumber != nil && strings.TrimSpace(*opts.ServiceNumber) != "" {
		sn := strings.ToUpper(strings.TrimSpace(*opts.ServiceNumber))
		serviceNumber = &sn
	}

	var out []model.Bill
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, billListQuery, serviceNumber, opts.Year, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Bill])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Bill, len(out))
	for i := range out {
		res[i] = &out[i]
	}
	return res, nil
}

// GetByID retrieves a bill by ID.
func (r *BillRepo) GetByID(ctx context.Context, id string) (*model.Bill, error) {
	return r.queryOne(ctx, billGetByIDQuery, id)
}

// Create inserts a new bill. The request is validated and normalized first.
func (r *BillRepo) Create(ctx context.Context, req *model.CreateBillRequest) (*model.Bill, error) {
	if req == nil {
		return nil, ErrBillRequestRequired
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	return r.queryOne(ctx, billInsertQuery,
		req.ServiceNumber,
		req.Month,
		req.Year,
		req.TotalCost,
		req.PFPenalty,
		req.ParsedBillDate(),
		r.clock.Now().UTC(),
	)
}

// Update applies the set fields of req to the bill.
func (r *BillRepo) Update(ctx context.Context, id string, req *model.UpdateBillRequest) (*model.Bill, error) {
	if req == nil {
		return nil, ErrBillRequestRequired
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE bills SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + billColumns
	return r.queryOne(ctx, query, args...)
}

// buildUpdateClause builds the SQL SET clause and args for req. updated_at is always set.
func (r *BillRepo) buildUpdateClause(req *model.UpdateBillRequest) (string, []any) {
	setParts := make([]string, 0, 7)
	args := make([]any, 0, 8)
	add := func(col string, v any) {
		args = append(args, v)
		setParts = append(setParts, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.ServiceNumber != nil {
		add("service_number", *req.ServiceNumber)
	}
	if req.Month != nil {
		add("month", *req.Month)
	}
	if req.Year != nil {
		add("year", *req.Year)
	}
	if req.TotalCost != nil {
		add("total_cost", *req.TotalCost)
	}
	if req.PFPenalty != nil {
		add("pf_penalty", *req.PFPenalty)
	}
	if d := req.ParsedBillDate(); d != nil {
		add("bill_date", *d)
	}
	add("updated_at", r.clock.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// Delete deletes a bill by ID and reports whether a row was removed.
func (r *BillRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		mapped := apperrors.MapDBError(err)
		if apperrors.IsNotFound(mapped) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete bill: %w", mapped)
	}
	return affected > 0, nil
}

// MonthlyTrend aggregates cost and penalties per calendar month over the last
// months months, oldest first.
func (r *BillRepo) MonthlyTrend(ctx context.Context, months int) ([]model.MonthlyTrendPoint, error) {
	if months <= 0 {
		months = 12
	}
	months = min(months, maxTrendMonths)

	var out []model.MonthlyTrendPoint
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, billTrendQuery, r.clock.Now().UTC(), months)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.MonthlyTrendPoint])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to compute bill trend: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

func (r *BillRepo) queryOne(ctx context.Context, q string, args ...any) (*model.Bill, error) {
	var bill model.Bill
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		bill, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Bill])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &apperrors.AppError{Code: apperrors.ErrCodeNotFound, Message: "Bill not found", Cause: ErrBillNotFound}
		}
		return nil, apperrors.MapDBError(err)
	}
	return &bill, nil
}
