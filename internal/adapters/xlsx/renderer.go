// Package xlsx renders bill records into the two-sheet billing report workbook.
package xlsx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/hap-eb/ebill-reports/internal/core"
	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

const (
	// DataSheet holds one row per bill plus the totals row.
	DataSheet = "Billing Report"
	// InfoSheet holds the run metadata.
	InfoSheet = "Report Info"
	// TotalLabel marks the totals row in the service number column.
	TotalLabel = "TOTAL:"

	// CurrencyFormat is applied to cost and penalty cells, totals included.
	CurrencyFormat = `"₹"#,##0.00`
	// DateFormat is applied to the bill date column.
	DateFormat = "yyyy-mm-dd"

	generatedAtLayout = "2006-01-02 15:04:05 MST"
	defaultSheet      = "Sheet1"
)

// Headers are the data sheet columns, in order.
var Headers = []string{"Service Number", "Month", "Year", "Total Cost", "PF Penalty", "Bill Date"}

var columnWidths = []float64{18, 12, 8, 16, 14, 14}

// ErrMalformedRow is wrapped by Render when a record cannot be laid out.
var ErrMalformedRow = errors.New("malformed bill row")

// Renderer builds report workbooks. It performs no I/O; with a fixed Now it is deterministic.
type Renderer struct {
	now func() time.Time
}

var _ core.ReportRenderer = (*Renderer)(nil)

// Options configures a Renderer.
type Options struct {
	Now func() time.Time // optional; defaults to time.Now
}

// NewRenderer constructs a Renderer.
func NewRenderer(opts Options) *Renderer {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Renderer{now: now}
}

type styles struct {
	header   int
	currency int
	date     int
	total    int
	totalCur int
}

// Render lays rows out in input order, appends a totals row when rows is
// non-empty, and adds the metadata sheet.
func (r *Renderer) Render(rows []model.BillRecord, lookbackDays int) (*model.ReportArtifact, error) {
	for i, row := range rows {
		if err := checkRow(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, DataSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(InfoSheet); err != nil {
		return nil, fmt.Errorf("create info sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	totalCost, totalPenalty, err := writeData(f, st, rows)
	if err != nil {
		return nil, err
	}
	if err := r.writeInfo(f, st, len(rows), lookbackDays); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &model.ReportArtifact{
		Buffer:       buf.Bytes(),
		RowCount:     len(rows),
		TotalCost:    totalCost,
		TotalPenalty: totalPenalty,
	}, nil
}

func checkRow(row model.BillRecord) error {
	switch {
	case strings.TrimSpace(row.ServiceNumber) == "":
		return fmt.Errorf("%w: empty service number", ErrMalformedRow)
	case row.BillDate.IsZero():
		return fmt.Errorf("%w: missing bill date for %s", ErrMalformedRow, row.ServiceNumber)
	}
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	currency := CurrencyFormat
	date := DateFormat
	defs := []*excelize.Style{
		{Font: &excelize.Font{Bold: true}, Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}}},
		{CustomNumFmt: &currency},
		{CustomNumFmt: &date},
		{Font: &excelize.Font{Bold: true}},
		{Font: &excelize.Font{Bold: true}, CustomNumFmt: &currency},
	}
	ids := make([]int, len(defs))
	for i, d := range defs {
		id, err := f.NewStyle(d)
		if err != nil {
			return styles{}, fmt.Errorf("create style: %w", err)
		}
		ids[i] = id
	}
	return styles{header: ids[0], currency: ids[1], date: ids[2], total: ids[3], totalCur: ids[4]}, nil
}

func writeData(f *excelize.File, st styles, rows []model.BillRecord) (decimal.Decimal, decimal.Decimal, error) {
	totalCost, totalPenalty := decimal.Zero, decimal.Zero

	for col, h := range Headers {
		if err := setCell(f, DataSheet, col+1, 1, h); err != nil {
			return totalCost, totalPenalty, err
		}
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(DataSheet, name, name, columnWidths[col]); err != nil {
			return totalCost, totalPenalty, fmt.Errorf("set column width: %w", err)
		}
	}
	if err := f.SetCellStyle(DataSheet, "A1", "F1", st.header); err != nil {
		return totalCost, totalPenalty, fmt.Errorf("style header: %w", err)
	}

	for i, row := range rows {
		line := i + 2
		if err := writeRow(f, st, line, row); err != nil {
			return totalCost, totalPenalty, fmt.Errorf("row %d: %w", i+1, err)
		}
		totalCost = totalCost.Add(row.TotalCost)
		totalPenalty = totalPenalty.Add(row.PFPenalty)
	}

	if len(rows) == 0 {
		return totalCost, totalPenalty, nil
	}

	line := len(rows) + 2
	if err := setCell(f, DataSheet, 1, line, TotalLabel); err != nil {
		return totalCost, totalPenalty, err
	}
	if err := setMoney(f, DataSheet, 4, line, totalCost); err != nil {
		return totalCost, totalPenalty, err
	}
	if err := setMoney(f, DataSheet, 5, line, totalPenalty); err != nil {
		return totalCost, totalPenalty, err
	}
	if err := styleRange(f, DataSheet, line, 1, 3, st.total); err != nil {
		return totalCost, totalPenalty, err
	}
	if err := styleRange(f, DataSheet, line, 4, 5, st.totalCur); err != nil {
		return totalCost, totalPenalty, err
	}
	return totalCost, totalPenalty, nil
}

func writeRow(f *excelize.File, st styles, line int, row model.BillRecord) error {
	if err := setCell(f, DataSheet, 1, line, row.ServiceNumber); err != nil {
		return err
	}
	if err := setCell(f, DataSheet, 2, line, row.Month); err != nil {
		return err
	}
	if err := setCell(f, DataSheet, 3, line, row.Year); err != nil {
		return err
	}
	if err := setMoney(f, DataSheet, 4, line, row.TotalCost); err != nil {
		return err
	}
	if err := setMoney(f, DataSheet, 5, line, row.PFPenalty); err != nil {
		return err
	}
	y, m, d := row.BillDate.Date()
	if err := setCell(f, DataSheet, 6, line, time.Date(y, m, d, 0, 0, 0, 0, time.UTC)); err != nil {
		return err
	}
	if err := styleRange(f, DataSheet, line, 4, 5, st.currency); err != nil {
		return err
	}
	return styleRange(f, DataSheet, line, 6, 6, st.date)
}

func (r *Renderer) writeInfo(f *excelize.File, st styles, count, lookbackDays int) error {
	info := [][2]any{
		{"Generated At", r.now().Format(generatedAtLayout)},
		{"Report Period", model.LookbackDescription(lookbackDays)},
		{"Total Records", count},
	}
	for i, kv := range info {
		if err := setCell(f, InfoSheet, 1, i+1, kv[0]); err != nil {
			return err
		}
		if err := setCell(f, InfoSheet, 2, i+1, kv[1]); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(InfoSheet, "A", "B", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return styleRange(f, InfoSheet, 1, 1, 1, st.total)
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// setMoney writes d as a number rounded to two decimals.
func setMoney(f *excelize.File, sheet string, col, row int, d decimal.Decimal) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	v, _ := d.Round(2).Float64()
	if err := f.SetCellFloat(sheet, cell, v, 2, 64); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func styleRange(f *excelize.File, sheet string, row, fromCol, toCol, style int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, row)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(toCol, row)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, from, to, style); err != nil {
		return fmt.Errorf("style %s!%s:%s: %w", sheet, from, to, err)
	}
	return nil
}
