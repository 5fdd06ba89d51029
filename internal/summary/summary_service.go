package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/cache"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/contextutil"
	summaryerrors "github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/summary/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	// CacheKey untuk hasil default (bulan terbaru tanpa filter)
	CacheKey = "client_summary:latest_month"
	// CacheTTL 24 jam; entry hanya kadaluarsa lewat TTL, tidak ada
	// invalidasi eksplisit saat upload baru
	CacheTTL = 24 * time.Hour
)

// CachedSummary adalah bentuk entry cache untuk request default
type CachedSummary struct {
	CachedMonth string     `json:"_cached_month"`
	Data        *PeriodMap `json:"data"`
}

//go:generate mockgen -source=summary_service.go -destination=mock/summary_service_mock.go -package=mock
type Service interface {
	ClientSummary(ctx context.Context, req SummaryRequest) (*PeriodMap, error)
	ClientShiftSummary(ctx context.Context, payrollMonth string) (string, []ClientMonthSummary, error)
	IntervalSummary(ctx context.Context, startMonth, endMonth string) (map[string][]ClientMonthSummary, error)
}

type service struct {
	repo  Repository
	cache cache.Service
	group singleflight.Group
}

func NewService(repo Repository, cacheSvc cache.Service) Service {
	return &service{repo: repo, cache: cacheSvc}
}

type clientDeptKey struct {
	client string
	dept   string
}

// nameMaps mengembalikan nama tampilan seperti yang diketik pemanggil di
// filter, supaya output tidak berubah kapitalisasi walau pencocokan
// dilakukan case-insensitive
type nameMaps struct {
	clients map[string]string
	depts   map[clientDeptKey]string
}

func (n nameMaps) clientName(stored string) string {
	if display, ok := n.clients[strings.ToLower(stored)]; ok {
		return display
	}
	return stored
}

func (n nameMaps) deptName(storedClient, storedDept string) string {
	key := clientDeptKey{client: strings.ToLower(storedClient), dept: strings.ToLower(storedDept)}
	if display, ok := n.depts[key]; ok {
		return display
	}
	return storedDept
}

func (s *service) ClientSummary(ctx context.Context, req SummaryRequest) (*PeriodMap, error) {
	if !req.IsDefault() {
		return s.computeSummary(ctx, req)
	}

	// Request default: cek cache dulu; singleflight menahan request paralel
	// agar hanya satu yang menghitung saat cache kosong.
	result, err, _ := s.group.Do(CacheKey, func() (any, error) {
		var cached CachedSummary
		if err := s.cache.GetJSON(ctx, CacheKey, &cached); err == nil && cached.Data != nil {
			return cached.Data, nil
		} else if err != nil && !errors.Is(err, cache.ErrMiss) {
			contextutil.GetLogger(ctx, zap.L()).Warn("summary cache read failed", zap.Error(err))
		}

		computed, err := s.computeSummary(ctx, req)
		if err != nil {
			return nil, err
		}

		entry := CachedSummary{Data: computed}
		if labels := computed.Labels(); len(labels) > 0 {
			entry.CachedMonth = labels[0]
		}
		if err := s.cache.SetJSON(ctx, CacheKey, entry, CacheTTL); err != nil {
			contextutil.GetLogger(ctx, zap.L()).Warn("summary cache write failed", zap.Error(err))
		}

		return computed, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*PeriodMap), nil
}

func (s *service) computeSummary(ctx context.Context, req SummaryRequest) (*PeriodMap, error) {
	filter, names := buildFactFilter(req)

	window, err := resolveWindow(req)
	if err != nil {
		return nil, err
	}

	if window.mode == modeDefault {
		latest, err := s.repo.LatestDurationMonth(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, summaryerrors.ErrNoData
			}
			return nil, err
		}
		month := truncateMonth(latest)
		window.months = []time.Time{month}
		window.periods = []string{month.Format(monthLayout)}
	}

	// Semua periode yang diminta tampil di output, yang kosong sebagai marker
	result := NewPeriodMap()
	for _, label := range window.periods {
		result.Set(label, &PeriodSummary{Message: fmt.Sprintf("No data found for %s", label)})
	}

	rows, err := s.repo.FindFacts(ctx, window.allMonths(), filter)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		label := window.periodLabelFor(row.DurationMonth)
		if label == "" {
			continue
		}

		period := result.Get(label)
		if !period.HasData() {
			period = &PeriodSummary{
				Clients:    NewClientMap(),
				MonthTotal: &PeriodTotals{},
			}
			result.Set(label, period)
		}

		clientName := names.clientName(row.Client)
		deptName := names.deptName(row.Client, row.Department)

		client := period.Clients.GetOrCreate(clientName)
		dept := client.Departments.GetOrCreate(deptName)

		emp := dept.employee(row.EmpID)
		if emp == nil {
			emp = &EmployeeSummary{
				EmpID:          row.EmpID,
				EmpName:        row.EmpName,
				AccountManager: row.AccountManager,
			}
			dept.Employees = append(dept.Employees, emp)
			// head count naik tepat sekali per karyawan per department
			dept.DeptHeadCount++
			client.ClientHeadCount++
			period.MonthTotal.TotalHeadCount++
		}

		amount := row.Days * row.Amount
		emp.add(row.ShiftType, amount)
		dept.add(row.ShiftType, amount)
		client.add(row.ShiftType, amount)
		period.MonthTotal.add(row.ShiftType, amount)
	}

	if err := checkNoData(window, result); err != nil {
		return nil, err
	}

	return result, nil
}

// checkNoData menerapkan semantik no-data per mode window: range strict
// (bulan kosong manapun menggagalkan request sambil menyebut bulannya),
// single-period gagal bila kosong, list bulan / quarter lenient.
func checkNoData(window *timeWindow, result *PeriodMap) error {
	var missing []string
	for _, label := range window.periods {
		if !result.Get(label).HasData() {
			missing = append(missing, label)
		}
	}

	if window.mode == modeRange && len(missing) > 0 {
		return summaryerrors.NoDataForMonths(missing)
	}

	if len(missing) == result.Len() {
		switch window.mode {
		case modeDefault:
			return summaryerrors.ErrNoData
		case modeMonths:
			if result.Len() == 1 {
				return summaryerrors.NoDataForPeriod(window.periods[0])
			}
		}
	}

	return nil
}

func buildFactFilter(req SummaryRequest) (FactFilter, nameMaps) {
	names := nameMaps{
		clients: map[string]string{},
		depts:   map[clientDeptKey]string{},
	}

	filter := FactFilter{
		EmpID:          strings.TrimSpace(req.EmpID),
		AccountManager: strings.TrimSpace(req.AccountManager.String()),
	}

	if !req.Clients.IsRestricted() {
		return filter, names
	}

	filter.Clients = map[string][]string{}
	for client, depts := range req.Clients.Clients() {
		clientLower := strings.ToLower(client)
		names.clients[clientLower] = client

		normalized := make([]string, 0, len(depts))
		for _, dept := range depts {
			deptLower := strings.ToLower(dept)
			names.depts[clientDeptKey{client: clientLower, dept: deptLower}] = dept
			normalized = append(normalized, deptLower)
		}
		filter.Clients[clientLower] = normalized
	}

	return filter, names
}

func (s *service) ClientShiftSummary(ctx context.Context, payrollMonth string) (string, []ClientMonthSummary, error) {
	var month time.Time

	if payrollMonth == "" {
		latest, err := s.repo.LatestPayrollMonth(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", nil, summaryerrors.ErrNoPayrollData
			}
			return "", nil, err
		}
		month = truncateMonth(latest)
	} else {
		parsed, err := parseYYYYMM(payrollMonth)
		if err != nil {
			return "", nil, err
		}
		month = parsed
	}

	label := month.Format(monthLayout)

	rollup, err := s.repo.ClientMonthRollup(ctx, month)
	if err != nil {
		return "", nil, err
	}
	if len(rollup) == 0 {
		return "", nil, summaryerrors.NoRecordsForPayrollMonth(label)
	}

	return label, rollup, nil
}

func (s *service) IntervalSummary(ctx context.Context, startMonth, endMonth string) (map[string][]ClientMonthSummary, error) {
	start, err := parseYYYYMM(startMonth)
	if err != nil {
		return nil, err
	}
	end, err := parseYYYYMM(endMonth)
	if err != nil {
		return nil, err
	}

	months, err := monthRange(start, end)
	if err != nil {
		return nil, err
	}

	// Bulan kosong bukan error di endpoint interval; entry-nya tetap ada
	// dengan list kosong
	interval := make(map[string][]ClientMonthSummary, len(months))
	for _, month := range months {
		rollup, err := s.repo.ClientMonthRollup(ctx, month)
		if err != nil {
			return nil, err
		}
		if rollup == nil {
			rollup = []ClientMonthSummary{}
		}
		interval[month.Format(monthLayout)] = rollup
	}

	return interval, nil
}
