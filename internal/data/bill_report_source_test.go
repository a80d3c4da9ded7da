package data

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hap-eb/ebill-reports/internal/domain/model"
	"github.com/hap-eb/ebill-reports/internal/testutil"
)

func TestBillReportSource_OpenRequiresDSN(t *testing.T) {
	src := NewBillReportSource(BillReportSourceOptions{
		Connect: func(context.Context, string) (*pgx.Conn, error) {
			t.Fatal("connect must not be called without a DSN")
			return nil, nil
		},
	})

	_, err := src.Open(context.Background())
	assert.ErrorIs(t, err, ErrDatabaseURLRequired)
}

func TestBillReportSource_ConnectFailure(t *testing.T) {
	boom := errors.New("connection refused")
	src := NewBillReportSource(BillReportSourceOptions{
		DatabaseURL: "postgres://unused",
		Connect: func(context.Context, string) (*pgx.Conn, error) {
			return nil, boom
		},
	})

	_, err := src.Open(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestBillReportSession_ClosedSession(t *testing.T) {
	s := &billReportSession{}
	_, err := s.Fetch(context.Background(), model.ReportWindow{})
	assert.ErrorIs(t, err, ErrReportSessionClosed)
	assert.NoError(t, s.Close(context.Background()))
}

func TestBillReportSource_FetchWindowAndOrder(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewBillRepo(db)
		for _, req := range []*model.CreateBillRequest{
			testutil.NewBillRequest().WithServiceNumber("ABC002").WithAmounts("8500", "0").Build(),
			testutil.NewBillRequest().WithAmounts("12345", "120").Build(),
			testutil.NewBillRequest().WithServiceNumber("ABC003").
				WithBillDate(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)).Build(),
			testutil.NewBillRequest().WithServiceNumber("OLD001").
				WithBillDate(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)).Build(),
		} {
			_, err := repo.Create(ctx, req)
			require.NoError(t, err)
		}

		src := NewBillReportSource(BillReportSourceOptions{DatabaseURL: testutil.DefaultTestDBConfig().DSN()})

		session, err := src.Open(ctx)
		require.NoError(t, err)
		defer func() { require.NoError(t, session.Close(ctx)) }()

		window := model.ReportWindow{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		}
		rows, err := session.Fetch(ctx, window)
		require.NoError(t, err)
		require.Len(t, rows, 3)

		got := []string{rows[0].ServiceNumber, rows[1].ServiceNumber, rows[2].ServiceNumber}
		assert.Equal(t, []string{"ABC003", "ABC001", "ABC002"}, got)
		assert.Equal(t, "12345.00", rows[1].TotalCost.StringFixed(2))
	})
}
