package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hap-eb/ebill-reports/config"
	"github.com/hap-eb/ebill-reports/internal/domain/model"
	"github.com/hap-eb/ebill-reports/internal/migrate"
)

func testCommandContext(out *bytes.Buffer, cfg config.AppConfig) *commandContext {
	return &commandContext{
		Ctx:        context.Background(),
		Logger:     slog.Default(),
		Out:        out,
		loadConfig: func() (config.AppConfig, error) { return cfg, nil },
	}
}

func TestRoutesCommandPrintsAccessTable(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var out bytes.Buffer
	root := newRootCmd(testCommandContext(&out, config.AppConfig{}))
	root.SetArgs([]string{"routes"})
	require.NoError(t, root.Execute())

	text := out.String()
	assert.Contains(t, text, "METHOD")
	assert.Contains(t, text, "/api/reports/run")
	assert.Contains(t, text, "admin, master-admin, msp")
	assert.Contains(t, text, "/master-admin/")
}

func TestRootCommandConfigFailure(t *testing.T) {
	var out bytes.Buffer
	cmdCtx := testCommandContext(&out, config.AppConfig{})
	cmdCtx.loadConfig = func() (config.AppConfig, error) { return config.AppConfig{}, errors.New("bad env") }

	root := newRootCmd(cmdCtx)
	root.SetArgs([]string{"routes"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestPrintJobResult(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var out bytes.Buffer
		err := printJobResult(&out, model.JobResult{RunID: "run-1", Success: true, RecordCount: 2})
		require.NoError(t, err)
		assert.Contains(t, out.String(), `"reportId": "run-1"`)
		assert.Contains(t, out.String(), `"recordCount": 2`)
	})

	t.Run("failure exits non-zero", func(t *testing.T) {
		var out bytes.Buffer
		err := printJobResult(&out, model.JobResult{RunID: "run-2", Error: "S3_BUCKET is required"})
		require.ErrorIs(t, err, errReportRunFailed)
		assert.Contains(t, err.Error(), "S3_BUCKET")
		assert.Contains(t, out.String(), `"success": false`)
	})
}

func TestPrintStoredReports(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printStoredReports(&out, nil))
	assert.Equal(t, "No stored reports\n", out.String())

	out.Reset()
	require.NoError(t, printStoredReports(&out, []model.StoredReport{{
		Key:          "billing-report/2026-03-20.xlsx",
		Size:         2048,
		LastModified: time.Date(2026, 3, 20, 6, 0, 0, 0, time.UTC),
	}}))
	assert.Contains(t, out.String(), "billing-report/2026-03-20.xlsx")
	assert.Contains(t, out.String(), "2026-03-20T06:00:00Z")
}

func TestPrintMigrationStatus(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var out bytes.Buffer
	require.NoError(t, printMigrationStatus(&out, []migrate.Migration{
		{Version: "001_bills", Applied: true, AppliedAt: &at},
		{Version: "002_bills_trend_index"},
	}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "2026-01-02T03:04:05Z")
	assert.Contains(t, lines[2], "false")
}

func TestGuardRemoteHost(t *testing.T) {
	local := &commandContext{Config: config.AppConfig{Postgres: config.DBConfig{URL: "postgres://u:p@localhost:5432/ebill"}}}
	require.NoError(t, guardRemoteHost(local, false, "seed sample bills"))

	remote := &commandContext{Config: config.AppConfig{Postgres: config.DBConfig{URL: "postgres://u:p@db.prod.example.com/ebill"}}}
	err := guardRemoteHost(remote, false, "seed sample bills")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--allow-remote")
	require.NoError(t, guardRemoteHost(remote, true, "seed sample bills"))
}

func TestIsLikelyRemoteHost(t *testing.T) {
	assert.False(t, isLikelyRemoteHost(""))
	assert.False(t, isLikelyRemoteHost("localhost"))
	assert.False(t, isLikelyRemoteHost("127.0.0.1"))
	assert.False(t, isLikelyRemoteHost("postgres.local"))
	assert.True(t, isLikelyRemoteHost("10.0.0.5"))
	assert.True(t, isLikelyRemoteHost("db.example.com"))
}
