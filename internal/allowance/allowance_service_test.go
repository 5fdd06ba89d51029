package allowance

import (
	"context"
	"testing"
	"time"

	allowanceerrors "github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/allowance/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	countFn    func(ctx context.Context) (int64, error)
	findPageFn func(ctx context.Context, start, limit int) ([]ShiftAllowance, error)
	findByIDFn func(ctx context.Context, id uint) (*ShiftAllowance, error)
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) { return f.countFn(ctx) }

func (f *fakeRepo) FindPage(ctx context.Context, start, limit int) ([]ShiftAllowance, error) {
	return f.findPageFn(ctx, start, limit)
}

func (f *fakeRepo) FindByID(ctx context.Context, id uint) (*ShiftAllowance, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) LatestDurationMonth(ctx context.Context) (time.Time, error) {
	return time.Time{}, gorm.ErrRecordNotFound
}

func (f *fakeRepo) LatestPayrollMonth(ctx context.Context) (time.Time, error) {
	return time.Time{}, gorm.ErrRecordNotFound
}

func sampleRecord() ShiftAllowance {
	return ShiftAllowance{
		ID:             42,
		EmpID:          "E1",
		EmpName:        "Asha",
		Department:     "Support",
		Client:         "Acme",
		AccountManager: "Ravi",
		DurationMonth:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PayrollMonth:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Mappings: []ShiftMapping{
			{ShiftAllowanceID: 42, ShiftType: ShiftTypeA, Days: 10},
			{ShiftAllowanceID: 42, ShiftType: ShiftTypePrime, Days: 2},
		},
	}
}

func TestService_GetPage(t *testing.T) {
	repo := &fakeRepo{
		countFn: func(ctx context.Context) (int64, error) { return 57, nil },
		findPageFn: func(ctx context.Context, start, limit int) ([]ShiftAllowance, error) {
			assert.Equal(t, 10, start)
			assert.Equal(t, 5, limit)
			return []ShiftAllowance{sampleRecord()}, nil
		},
	}
	svc := NewService(repo)

	resp, err := svc.GetPage(context.Background(), 10, 5)
	require.NoError(t, err)

	assert.Equal(t, int64(57), resp.TotalRecords)
	require.Len(t, resp.Data, 1)

	got := resp.Data[0]
	assert.Equal(t, "E1", got.EmpID)
	assert.Equal(t, "2025-03", got.DurationMonth)
	assert.Equal(t, "2025-04", got.PayrollMonth)
	require.Len(t, got.Shifts, 2)
	assert.Equal(t, ShiftDetail{ShiftType: ShiftTypeA, Days: 10}, got.Shifts[0])
}

func TestService_GetPage_EmptyPage(t *testing.T) {
	repo := &fakeRepo{
		countFn: func(ctx context.Context) (int64, error) { return 3, nil },
		findPageFn: func(ctx context.Context, start, limit int) ([]ShiftAllowance, error) {
			return nil, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.GetPage(context.Background(), 100, 10)
	assert.ErrorIs(t, err, allowanceerrors.ErrNoDataForRange)
}

func TestService_GetByID(t *testing.T) {
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uint) (*ShiftAllowance, error) {
			assert.Equal(t, uint(42), id)
			record := sampleRecord()
			return &record, nil
		},
	}
	svc := NewService(repo)

	got, err := svc.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), got.ID)
	assert.Equal(t, "Asha", got.EmpName)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uint) (*ShiftAllowance, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo)

	_, err := svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, allowanceerrors.ErrRecordNotFound)
}
