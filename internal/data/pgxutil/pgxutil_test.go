package pgxutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hap-eb/ebill-reports/internal/testutil"
)

func TestWithPgxConn(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		var got int
		err := WithPgxConn(context.Background(), db, func(conn *pgx.Conn) error {
			return conn.QueryRow(context.Background(), "SELECT 41 + 1").Scan(&got)
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})
}
