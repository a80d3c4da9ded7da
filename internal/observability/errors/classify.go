// Package errors derives low-cardinality labels from pipeline errors for logs and alerts.
package errors

import (
	"context"
	goerrors "errors"
	"net"
	"reflect"
	"strings"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/jackc/pgx/v5/pgconn"
)

// Classify names the root cause of err. Deadlines, cancellations, AWS service
// codes, Postgres SQLSTATEs and network failures get stable names; anything
// else falls back to the innermost concrete type, e.g. "errors_errorstring".
func Classify(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case goerrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case goerrors.Is(err, context.Canceled):
		return "canceled"
	}

	var awsErr awserr.Error
	if goerrors.As(err, &awsErr) && awsErr.Code() != "" {
		return "aws_" + strings.ToLower(awsErr.Code())
	}
	var pgErr *pgconn.PgError
	if goerrors.As(err, &pgErr) && pgErr.Code != "" {
		return "postgres_" + pgErr.Code
	}
	var netErr net.Error
	if goerrors.As(err, &netErr) {
		return "network"
	}

	return typeName(innermost(err))
}

func innermost(err error) error {
	for {
		next := goerrors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func typeName(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.String() == "" {
		return "unknown"
	}
	return strings.ReplaceAll(strings.ToLower(t.String()), ".", "_")
}
