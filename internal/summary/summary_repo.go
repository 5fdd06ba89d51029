package summary

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

// FactRow adalah satu baris hasil join fakta: satu shift mapping beserta
// rate per hari untuk payroll year bulan kerjanya
type FactRow struct {
	DurationMonth  time.Time
	Client         string
	Department     string
	EmpID          string
	EmpName        string
	AccountManager string
	ShiftType      string
	Days           float64
	Amount         float64
}

// FactFilter adalah filter entity yang diterapkan di sisi database.
// Key clients/departments sudah di-lowercase oleh service.
type FactFilter struct {
	Clients        map[string][]string
	EmpID          string
	AccountManager string
}

//go:generate mockgen -source=summary_repo.go -destination=mock/summary_repo_mock.go -package=mock
type Repository interface {
	FindFacts(ctx context.Context, months []time.Time, filter FactFilter) ([]FactRow, error)
	LatestDurationMonth(ctx context.Context) (time.Time, error)
	LatestPayrollMonth(ctx context.Context) (time.Time, error)
	ClientMonthRollup(ctx context.Context, payrollMonth time.Time) ([]ClientMonthSummary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const factSelect = `
SELECT
	sa.duration_month,
	sa.client,
	sa.department,
	sa.emp_id,
	sa.emp_name,
	sa.account_manager,
	sm.shift_type,
	sm.days,
	COALESCE(sr.amount, 0) AS amount
FROM shift_allowances sa
JOIN shift_mappings sm ON sm.shift_allowance_id = sa.id
LEFT JOIN shift_amounts sr
	ON sr.shift_type = sm.shift_type
	AND sr.payroll_year = EXTRACT(YEAR FROM sa.duration_month)::int
`

func (r *repository) FindFacts(ctx context.Context, months []time.Time, filter FactFilter) ([]FactRow, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString(factSelect)
	sb.WriteString("WHERE sa.duration_month IN (")
	for i, m := range months {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("?")
		args = append(args, m)
	}
	sb.WriteString(")\n")

	if len(filter.Clients) > 0 {
		sb.WriteString("AND (")
		first := true
		for client, departments := range filter.Clients {
			if !first {
				sb.WriteString(" OR ")
			}
			first = false

			if len(departments) > 0 {
				sb.WriteString("(lower(sa.client) = ? AND lower(sa.department) IN (")
				args = append(args, client)
				for i, dept := range departments {
					if i > 0 {
						sb.WriteString(", ")
					}
					sb.WriteString("?")
					args = append(args, dept)
				}
				sb.WriteString("))")
			} else {
				sb.WriteString("lower(sa.client) = ?")
				args = append(args, client)
			}
		}
		sb.WriteString(")\n")
	}

	if filter.EmpID != "" {
		sb.WriteString("AND lower(trim(sa.emp_id)) = lower(trim(?))\n")
		args = append(args, filter.EmpID)
	}

	if filter.AccountManager != "" {
		sb.WriteString("AND lower(trim(sa.account_manager)) = lower(trim(?))\n")
		args = append(args, filter.AccountManager)
	}

	// Urutan natural baris menentukan urutan first-seen di output
	sb.WriteString("ORDER BY sa.id ASC, sm.id ASC")

	var rows []FactRow
	err := r.db.WithContext(ctx).Raw(sb.String(), args...).Scan(&rows).Error
	return rows, err
}

func (r *repository) LatestDurationMonth(ctx context.Context) (time.Time, error) {
	var latest *time.Time
	err := r.db.WithContext(ctx).
		Table("shift_allowances").
		Select("max(duration_month)").
		Scan(&latest).Error
	if err != nil {
		return time.Time{}, err
	}
	if latest == nil {
		return time.Time{}, gorm.ErrRecordNotFound
	}
	return *latest, nil
}

func (r *repository) LatestPayrollMonth(ctx context.Context) (time.Time, error) {
	var latest *time.Time
	err := r.db.WithContext(ctx).
		Table("shift_allowances").
		Select("max(payroll_month)").
		Scan(&latest).Error
	if err != nil {
		return time.Time{}, err
	}
	if latest == nil {
		return time.Time{}, gorm.ErrRecordNotFound
	}
	return *latest, nil
}

func (r *repository) ClientMonthRollup(ctx context.Context, payrollMonth time.Time) ([]ClientMonthSummary, error) {
	query := `
SELECT
	sa.client,
	COUNT(DISTINCT sa.emp_id) AS head_count,
	COALESCE(SUM(sm.days * COALESCE(sr.amount, 0)) FILTER (WHERE sm.shift_type = 'A'), 0) AS shift_a,
	COALESCE(SUM(sm.days * COALESCE(sr.amount, 0)) FILTER (WHERE sm.shift_type = 'B'), 0) AS shift_b,
	COALESCE(SUM(sm.days * COALESCE(sr.amount, 0)) FILTER (WHERE sm.shift_type = 'C'), 0) AS shift_c,
	COALESCE(SUM(sm.days * COALESCE(sr.amount, 0)) FILTER (WHERE sm.shift_type = 'PRIME'), 0) AS shift_prime,
	COALESCE(SUM(sm.days * COALESCE(sr.amount, 0)), 0) AS total_allowance
FROM shift_allowances sa
JOIN shift_mappings sm ON sm.shift_allowance_id = sa.id
LEFT JOIN shift_amounts sr
	ON sr.shift_type = sm.shift_type
	AND sr.payroll_year = EXTRACT(YEAR FROM sa.duration_month)::int
WHERE sa.payroll_month = ?
GROUP BY sa.client
ORDER BY sa.client ASC
`

	var rows []ClientMonthSummary
	err := r.db.WithContext(ctx).Raw(query, payrollMonth).Scan(&rows).Error
	return rows, err
}
