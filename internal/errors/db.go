package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// reKeyFields extracts the column list from "Key (a, b)=(x, y) already exists.".
var reKeyFields = regexp.MustCompile(`Key \(([^)]+)\)=`)

// billPeriodConstraint is the unique constraint guarding one bill per service and month.
const billPeriodConstraint = "bills_service_period_key"

// MapDBError maps database errors to AppError instances:
//   - pgx.ErrNoRows → NotFound
//   - unique violations → Conflict
//   - check and NOT NULL violations → Validation
//   - invalid text representation (bad uuid) → NotFound
//   - context deadline/cancel → Timeout/Canceled
//
// Unrecognized errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &AppError{Code: ErrCodeTimeout, Message: "Request timed out. Please try again.", Cause: err}
	case errors.Is(err, context.Canceled):
		return &AppError{Code: ErrCodeCanceled, Message: "Request was canceled.", Cause: err}
	case errors.Is(err, pgx.ErrNoRows):
		return &AppError{Code: ErrCodeNotFound, Message: "Bill not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}
	return err
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return mapUniqueViolation(pgErr)
	case pgerrcode.CheckViolation:
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "Invalid data. Please check your input.",
			Field:   fieldFromConstraint(pgErr.ConstraintName),
			Cause:   pgErr,
		}
	case pgerrcode.NotNullViolation:
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "This field is required.",
			Field:   pgErr.ColumnName,
			Cause:   pgErr,
		}
	case pgerrcode.InvalidTextRepresentation:
		return &AppError{Code: ErrCodeNotFound, Message: "Bill not found", Cause: pgErr}
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "A database error occurred. Please try again.",
			Cause:   pgErr,
		}
	}
}

func mapUniqueViolation(pgErr *pgconn.PgError) error {
	field := pgErr.ColumnName
	if field == "" && pgErr.Detail != "" {
		if m := reKeyFields.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			field = strings.ReplaceAll(m[1], " ", "")
		}
	}

	msg := "This value already exists. Please choose a different one."
	if pgErr.ConstraintName == billPeriodConstraint {
		msg = "A bill for this service number and billing month already exists."
	}
	return &AppError{Code: ErrCodeConflict, Message: msg, Field: field, Cause: pgErr}
}

// fieldFromConstraint infers the column from check constraint names such as
// "bills_total_cost_check" → "total_cost".
func fieldFromConstraint(name string) string {
	name = strings.TrimPrefix(name, "bills_")
	name = strings.TrimSuffix(name, "_check")
	if name == "" || strings.Contains(name, "bills") {
		return ""
	}
	return name
}
