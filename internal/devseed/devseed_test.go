package devseed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

type memoryBills struct {
	rows      []*model.Bill
	createErr error
}

func (m *memoryBills) List(_ context.Context, opts model.BillListOptions) ([]*model.Bill, error) {
	out := make([]*model.Bill, 0, len(m.rows))
	for _, b := range m.rows {
		if opts.ServiceNumber != nil && b.ServiceNumber != *opts.ServiceNumber {
			continue
		}
		if opts.Year != nil && b.Year != *opts.Year {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *memoryBills) Create(_ context.Context, req *model.CreateBillRequest) (*model.Bill, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	b := &model.Bill{
		ServiceNumber: req.ServiceNumber,
		Month:         req.Month,
		Year:          req.Year,
		TotalCost:     req.TotalCost,
		PFPenalty:     req.PFPenalty,
		BillDate:      req.ParsedBillDate(),
	}
	m.rows = append(m.rows, b)
	return b, nil
}

func TestRunSeedsDefaultBills(t *testing.T) {
	now := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	bills := &memoryBills{}

	require.NoError(t, Run(context.Background(), Services{Bills: bills}, now, nil))
	require.Len(t, bills.rows, len(DefaultBills()))

	first := bills.rows[0]
	assert.Equal(t, "ABC001", first.ServiceNumber)
	assert.Equal(t, "March", first.Month)
	assert.Equal(t, 2026, first.Year)
	assert.Equal(t, "12345", first.TotalCost.String())
	assert.Equal(t, "120", first.PFPenalty.String())
	assert.Equal(t, now.AddDate(0, 0, -3).Format(time.DateOnly), first.BillDate.Format(time.DateOnly))
}

func TestRunIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	bills := &memoryBills{}

	require.NoError(t, Run(context.Background(), Services{Bills: bills}, now, nil))
	require.NoError(t, Run(context.Background(), Services{Bills: bills}, now, nil))
	assert.Len(t, bills.rows, len(DefaultBills()))
}

func TestRunReportsFailures(t *testing.T) {
	bills := &memoryBills{createErr: errors.New("insert failed")}

	err := Run(context.Background(), Services{Bills: bills}, time.Now(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed errors")
}

func TestRunRequiresBillService(t *testing.T) {
	require.Error(t, Run(context.Background(), Services{}, time.Now(), nil))
}
