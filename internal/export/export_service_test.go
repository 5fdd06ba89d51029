package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	exporterrors "github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/export/errors"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/cache"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/summary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type fakeRepo struct {
	findRecordsFn  func(ctx context.Context, filter RecordFilter) ([]RecordRow, error)
	latestSinceFn  func(ctx context.Context, filter RecordFilter, oldest time.Time) (time.Time, error)
	lastFindFilter RecordFilter
}

func (f *fakeRepo) FindRecords(ctx context.Context, filter RecordFilter) ([]RecordRow, error) {
	f.lastFindFilter = filter
	return f.findRecordsFn(ctx, filter)
}

func (f *fakeRepo) LatestMonthSince(ctx context.Context, filter RecordFilter, oldest time.Time) (time.Time, error) {
	return f.latestSinceFn(ctx, filter, oldest)
}

type fakeSummaryService struct {
	clientSummaryFn func(ctx context.Context, req summary.SummaryRequest) (*summary.PeriodMap, error)
	calls           int
}

func (f *fakeSummaryService) ClientSummary(ctx context.Context, req summary.SummaryRequest) (*summary.PeriodMap, error) {
	f.calls++
	return f.clientSummaryFn(ctx, req)
}

func (f *fakeSummaryService) ClientShiftSummary(ctx context.Context, payrollMonth string) (string, []summary.ClientMonthSummary, error) {
	return "", nil, nil
}

func (f *fakeSummaryService) IntervalSummary(ctx context.Context, startMonth, endMonth string) (map[string][]summary.ClientMonthSummary, error) {
	return nil, nil
}

type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{entries: map[string][]byte{}} }

func (c *fakeCache) GetJSON(ctx context.Context, key string, dest any) error {
	raw, ok := c.entries[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func sampleTree() *summary.PeriodMap {
	period := &summary.PeriodSummary{
		Clients:    summary.NewClientMap(),
		MonthTotal: &summary.PeriodTotals{},
	}

	acme := period.Clients.GetOrCreate("Acme")
	support := acme.Departments.GetOrCreate("Support")
	support.Employees = append(support.Employees,
		&summary.EmployeeSummary{EmpID: "E2", EmpName: "Balu", AccountManager: "Ravi", ShiftA: 1200, Total: 1200},
		&summary.EmployeeSummary{EmpID: "E1", EmpName: "Asha", AccountManager: "Ravi", ShiftPrime: 1000, Total: 1000},
	)
	support.DeptHeadCount = 2

	// Department tanpa rincian karyawan tetap harus muncul sebagai baris total
	infra := acme.Departments.GetOrCreate("Infra")
	infra.DeptA = 123456.5
	infra.DeptTotal = 123456.5
	infra.DeptHeadCount = 4

	m := summary.NewPeriodMap()
	m.Set("2025-03", period)
	return m
}

func readSheet(t *testing.T, path string) [][]string {
	t.Helper()
	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(summarySheetName)
	require.NoError(t, err)
	return rows
}

func TestService_DownloadClientSummary_Default(t *testing.T) {
	dir := t.TempDir()
	summarySvc := &fakeSummaryService{
		clientSummaryFn: func(ctx context.Context, req summary.SummaryRequest) (*summary.PeriodMap, error) {
			return sampleTree(), nil
		},
	}
	cacheSvc := newFakeCache()
	svc := NewService(&fakeRepo{}, summarySvc, cacheSvc, dir)

	path, err := svc.DownloadClientSummary(context.Background(), summary.SummaryRequest{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, defaultExportFile), path)

	rows := readSheet(t, path)
	require.Len(t, rows, 4) // header + baris dept Infra + 2 baris karyawan

	assert.Equal(t, summaryHeaders, rows[0])

	// Sort: department "Infra" < "Support"; baris dept punya Employee ID kosong
	infraRow := rows[1]
	assert.Equal(t, "Infra", infraRow[4])
	assert.Equal(t, "4", infraRow[5])
	assert.Equal(t, "₹123,456.5", infraRow[6])

	// Karyawan diurutkan per emp id
	assert.Equal(t, "E1", rows[2][3])
	assert.Equal(t, "E2", rows[3][3])
	assert.Equal(t, "₹1,200", rows[3][6])

	// Entry cache menunjuk ke file default
	assert.Contains(t, cacheSvc.entries, excelCacheKey)
}

func TestService_DownloadClientSummary_CacheHitSkipsRebuild(t *testing.T) {
	dir := t.TempDir()
	summarySvc := &fakeSummaryService{
		clientSummaryFn: func(ctx context.Context, req summary.SummaryRequest) (*summary.PeriodMap, error) {
			return sampleTree(), nil
		},
	}
	cacheSvc := newFakeCache()
	svc := NewService(&fakeRepo{}, summarySvc, cacheSvc, dir)
	ctx := context.Background()

	first, err := svc.DownloadClientSummary(ctx, summary.SummaryRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, summarySvc.calls)

	second, err := svc.DownloadClientSummary(ctx, summary.SummaryRequest{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, summarySvc.calls)

	// File hilang dari disk: cache entry tidak dipercaya, file dibangun ulang
	require.NoError(t, os.Remove(first))
	third, err := svc.DownloadClientSummary(ctx, summary.SummaryRequest{})
	require.NoError(t, err)
	assert.Equal(t, first, third)
	assert.Equal(t, 2, summarySvc.calls)
}

func TestService_DownloadClientSummary_NonDefaultTimestampedFile(t *testing.T) {
	dir := t.TempDir()
	summarySvc := &fakeSummaryService{
		clientSummaryFn: func(ctx context.Context, req summary.SummaryRequest) (*summary.PeriodMap, error) {
			return sampleTree(), nil
		},
	}
	cacheSvc := newFakeCache()
	svc := NewService(&fakeRepo{}, summarySvc, cacheSvc, dir)

	req := summary.SummaryRequest{SelectedYear: "2025", SelectedMonths: []string{"03"}}
	path, err := svc.DownloadClientSummary(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, filepath.Join(dir, defaultExportFile), path)
	assert.Contains(t, filepath.Base(path), "client_summary_")
	assert.Empty(t, cacheSvc.entries)
}

func TestService_DownloadClientSummary_EmptyTree(t *testing.T) {
	summarySvc := &fakeSummaryService{
		clientSummaryFn: func(ctx context.Context, req summary.SummaryRequest) (*summary.PeriodMap, error) {
			m := summary.NewPeriodMap()
			m.Set("2025-03", &summary.PeriodSummary{Message: "No data found for 2025-03"})
			return m, nil
		},
	}
	svc := NewService(&fakeRepo{}, summarySvc, newFakeCache(), t.TempDir())

	req := summary.SummaryRequest{SelectedYear: "2025", SelectedMonths: []string{"03"}}
	_, err := svc.DownloadClientSummary(context.Background(), req)
	assert.ErrorIs(t, err, exporterrors.ErrNoDataForExport)
}

func TestFlattenSummary_Filters(t *testing.T) {
	rows := flattenSummary(sampleTree(), "E1", "")
	require.Len(t, rows, 1)
	assert.Equal(t, "E1", rows[0].EmpID)

	// Filter manager menghapus baris dept tanpa karyawan
	rows = flattenSummary(sampleTree(), "", "ravi")
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "Ravi", r.ClientPartner)
	}
}

func TestService_ExportRecords(t *testing.T) {
	repo := &fakeRepo{
		findRecordsFn: func(ctx context.Context, filter RecordFilter) ([]RecordRow, error) {
			base := RecordRow{
				RecordID: 7, EmpID: "E1", EmpName: "Asha", Department: "Support",
				Client: "Acme", AccountManager: "Ravi",
				DurationMonth: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				PayrollMonth:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			}
			a := base
			a.ShiftType, a.Days, a.Amount = "A", 3, 250
			prime := base
			prime.ShiftType, prime.Days, prime.Amount = "PRIME", 2, 500
			return []RecordRow{a, prime}, nil
		},
	}
	svc := NewService(repo, &fakeSummaryService{}, newFakeCache(), t.TempDir())

	buf, err := svc.ExportRecords(context.Background(), ExportRecordsRequest{StartMonth: "2025-03"})
	require.NoError(t, err)

	book, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(book.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, recordHeaders, rows[0])
	// Dua baris join untuk record yang sama digabung jadi satu
	assert.Equal(t, "E1", rows[1][0])
	assert.Equal(t, "A-3, PRIME-2", rows[1][8])
	assert.Equal(t, "2025-03", rows[1][14])
	assert.Equal(t, "₹ 1,750.00", rows[1][16])

	// start_month tanpa end_month berarti satu bulan itu saja
	require.NotNil(t, repo.lastFindFilter.StartMonth)
	require.NotNil(t, repo.lastFindFilter.EndMonth)
	assert.Equal(t, *repo.lastFindFilter.StartMonth, *repo.lastFindFilter.EndMonth)
}

func TestService_ExportRecords_LatestMonthFallback(t *testing.T) {
	latest := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		latestSinceFn: func(ctx context.Context, filter RecordFilter, oldest time.Time) (time.Time, error) {
			return latest, nil
		},
		findRecordsFn: func(ctx context.Context, filter RecordFilter) ([]RecordRow, error) {
			assert.Equal(t, latest, *filter.StartMonth)
			assert.Equal(t, latest, *filter.EndMonth)
			return []RecordRow{{RecordID: 1, EmpID: "E1", DurationMonth: latest, PayrollMonth: latest}}, nil
		},
	}
	svc := NewService(repo, &fakeSummaryService{}, newFakeCache(), t.TempDir())

	_, err := svc.ExportRecords(context.Background(), ExportRecordsRequest{})
	require.NoError(t, err)
}

func TestService_ExportRecords_Validation(t *testing.T) {
	repo := &fakeRepo{
		latestSinceFn: func(ctx context.Context, filter RecordFilter, oldest time.Time) (time.Time, error) {
			return time.Time{}, gorm.ErrRecordNotFound
		},
		findRecordsFn: func(ctx context.Context, filter RecordFilter) ([]RecordRow, error) {
			return nil, nil
		},
	}
	svc := NewService(repo, &fakeSummaryService{}, newFakeCache(), t.TempDir())
	ctx := context.Background()

	_, err := svc.ExportRecords(ctx, ExportRecordsRequest{EndMonth: "2025-03"})
	assert.ErrorIs(t, err, exporterrors.ErrStartMonthRequired)

	_, err = svc.ExportRecords(ctx, ExportRecordsRequest{StartMonth: "03-2025"})
	assert.ErrorIs(t, err, exporterrors.ErrInvalidStartMonth)

	_, err = svc.ExportRecords(ctx, ExportRecordsRequest{StartMonth: "2025-05", EndMonth: "2025-01"})
	assert.ErrorIs(t, err, exporterrors.ErrInvalidRange)

	_, err = svc.ExportRecords(ctx, ExportRecordsRequest{})
	assert.ErrorIs(t, err, exporterrors.ErrNoDataLast12Months)

	_, err = svc.ExportRecords(ctx, ExportRecordsRequest{StartMonth: "2025-03"})
	assert.ErrorIs(t, err, exporterrors.ErrNoRecordsForFilters)
}

func TestGroupComma(t *testing.T) {
	cases := map[string]string{
		"0":          "0",
		"999":        "999",
		"1234":       "1,234",
		"1234567.89": "1,234,567.89",
		"-45678.5":   "-45,678.5",
	}
	for in, want := range cases {
		assert.Equal(t, want, groupComma(in), in)
	}
}
