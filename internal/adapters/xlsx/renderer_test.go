package xlsx

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

var frozen = time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)

func sampleRows() []model.BillRecord {
	return []model.BillRecord{
		{
			ServiceNumber: "ABC001", Month: "January", Year: 2024,
			TotalCost: decimal.RequireFromString("12345"), PFPenalty: decimal.RequireFromString("120"),
			BillDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ServiceNumber: "ABC002", Month: "January", Year: 2024,
			TotalCost: decimal.RequireFromString("8500"), PFPenalty: decimal.Zero,
			BillDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		},
	}
}

func openArtifact(t *testing.T, a *model.ReportArtifact) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(a.Buffer), excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	require.NoError(t, err)
	return v
}

func money(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	d, err := decimal.NewFromString(cell(t, f, sheet, ref))
	require.NoError(t, err, ref)
	return d.StringFixed(2)
}

func TestRender_TotalsScenario(t *testing.T) {
	r := NewRenderer(Options{Now: func() time.Time { return frozen }})

	a, err := r.Render(sampleRows(), 30)
	require.NoError(t, err)
	assert.Equal(t, 2, a.RowCount)
	assert.Equal(t, "20845.00", a.TotalCost.StringFixed(2))
	assert.Equal(t, "120.00", a.TotalPenalty.StringFixed(2))

	f := openArtifact(t, a)
	assert.Equal(t, []string{DataSheet, InfoSheet}, f.GetSheetList())

	header, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	require.Len(t, header, 4, "header, two data rows, totals")
	assert.Equal(t, Headers, header[0])

	assert.Equal(t, TotalLabel, cell(t, f, DataSheet, "A4"))
	assert.Equal(t, "20845.00", money(t, f, DataSheet, "D4"))
	assert.Equal(t, "120.00", money(t, f, DataSheet, "E4"))
}

func TestRender_PreservesOrderAndValues(t *testing.T) {
	rows := sampleRows()
	// Reverse to prove the renderer does not sort.
	rows[0], rows[1] = rows[1], rows[0]

	a, err := NewRenderer(Options{Now: func() time.Time { return frozen }}).Render(rows, 30)
	require.NoError(t, err)
	f := openArtifact(t, a)

	assert.Equal(t, "ABC002", cell(t, f, DataSheet, "A2"))
	assert.Equal(t, "ABC001", cell(t, f, DataSheet, "A3"))
	assert.Equal(t, "January", cell(t, f, DataSheet, "B3"))
	assert.Equal(t, "2024", cell(t, f, DataSheet, "C3"))
	assert.Equal(t, "12345.00", money(t, f, DataSheet, "D3"))
	assert.Equal(t, "0.00", money(t, f, DataSheet, "E2"))

	serial, err := strconv.ParseFloat(cell(t, f, DataSheet, "F3"), 64)
	require.NoError(t, err)
	d, err := excelize.ExcelDateToTime(serial, false)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", d.Format(time.DateOnly))
}

func TestRender_TotalsMatchSumOfRows(t *testing.T) {
	rows := make([]model.BillRecord, 0, 25)
	wantCost, wantPenalty := decimal.Zero, decimal.Zero
	for i := range 25 {
		cost := decimal.New(int64(1000+i*37), -2).Add(decimal.NewFromInt(int64(i * 11)))
		penalty := decimal.New(int64(i*3), -1)
		rows = append(rows, model.BillRecord{
			ServiceNumber: "SN" + strconv.Itoa(i), Month: "February", Year: 2024,
			TotalCost: cost, PFPenalty: penalty,
			BillDate: time.Date(2024, 2, 28-i%27, 0, 0, 0, 0, time.UTC),
		})
		wantCost = wantCost.Add(cost)
		wantPenalty = wantPenalty.Add(penalty)
	}

	a, err := NewRenderer(Options{Now: func() time.Time { return frozen }}).Render(rows, 60)
	require.NoError(t, err)
	f := openArtifact(t, a)

	totalRow := strconv.Itoa(len(rows) + 2)
	assert.Equal(t, TotalLabel, cell(t, f, DataSheet, "A"+totalRow))
	assert.Equal(t, wantCost.StringFixed(2), money(t, f, DataSheet, "D"+totalRow))
	assert.Equal(t, wantPenalty.StringFixed(2), money(t, f, DataSheet, "E"+totalRow))
	for i, row := range rows {
		assert.Equal(t, row.ServiceNumber, cell(t, f, DataSheet, "A"+strconv.Itoa(i+2)))
	}
}

func TestRender_InfoSheet(t *testing.T) {
	a, err := NewRenderer(Options{Now: func() time.Time { return frozen }}).Render(sampleRows(), 30)
	require.NoError(t, err)
	f := openArtifact(t, a)

	assert.Equal(t, "Generated At", cell(t, f, InfoSheet, "A1"))
	assert.Equal(t, "2024-03-01 06:00:00 UTC", cell(t, f, InfoSheet, "B1"))
	assert.Equal(t, "Report Period", cell(t, f, InfoSheet, "A2"))
	assert.Equal(t, "Last 30 days", cell(t, f, InfoSheet, "B2"))
	assert.Equal(t, "Total Records", cell(t, f, InfoSheet, "A3"))
	assert.Equal(t, "2", cell(t, f, InfoSheet, "B3"))
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer(Options{Now: func() time.Time { return frozen }})
	a1, err := r.Render(sampleRows(), 30)
	require.NoError(t, err)
	a2, err := r.Render(sampleRows(), 30)
	require.NoError(t, err)

	f1, f2 := openArtifact(t, a1), openArtifact(t, a2)
	for _, sheet := range []string{DataSheet, InfoSheet} {
		rows1, err := f1.GetRows(sheet)
		require.NoError(t, err)
		rows2, err := f2.GetRows(sheet)
		require.NoError(t, err)
		assert.Equal(t, rows1, rows2, sheet)
	}
}

func TestRender_NoTotalsForEmptyInput(t *testing.T) {
	a, err := NewRenderer(Options{}).Render(nil, 7)
	require.NoError(t, err)
	assert.Zero(t, a.RowCount)
	assert.True(t, a.TotalCost.IsZero())

	f := openArtifact(t, a)
	rows, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
	assert.Equal(t, "Last 7 days", cell(t, f, InfoSheet, "B2"))
}

func TestRender_MalformedRow(t *testing.T) {
	rows := sampleRows()
	rows[1].BillDate = time.Time{}

	_, err := NewRenderer(Options{}).Render(rows, 30)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRow)
	assert.Contains(t, err.Error(), "row 2")
}
