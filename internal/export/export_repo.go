package export

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

// RecordRow adalah satu shift mapping beserta seluruh kolom deskriptif
// record induknya; record tanpa mapping tetap muncul dengan shift kosong
type RecordRow struct {
	RecordID          uint
	EmpID             string
	EmpName           string
	Grade             string
	Department        string
	Client            string
	Project           string
	ProjectCode       string
	AccountManager    string
	DeliveryManager   string
	PracticeLead      string
	BillabilityStatus string
	PracticeRemarks   string
	RmgComments       string
	DurationMonth     time.Time
	PayrollMonth      time.Time
	ShiftType         string
	Days              float64
	Amount            float64
}

// RecordFilter diterapkan di database; pencocokan nama case-insensitive
type RecordFilter struct {
	EmpID          string
	AccountManager string
	Department     string
	Client         string
	StartMonth     *time.Time
	EndMonth       *time.Time
}

//go:generate mockgen -source=export_repo.go -destination=mock/export_repo_mock.go -package=mock
type Repository interface {
	FindRecords(ctx context.Context, filter RecordFilter) ([]RecordRow, error)
	LatestMonthSince(ctx context.Context, filter RecordFilter, oldest time.Time) (time.Time, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const recordSelect = `
SELECT
	sa.id AS record_id,
	sa.emp_id,
	sa.emp_name,
	sa.grade,
	sa.department,
	sa.client,
	sa.project,
	sa.project_code,
	sa.account_manager,
	sa.delivery_manager,
	sa.practice_lead,
	sa.billability_status,
	sa.practice_remarks,
	sa.rmg_comments,
	sa.duration_month,
	sa.payroll_month,
	COALESCE(sm.shift_type, '') AS shift_type,
	COALESCE(sm.days, 0) AS days,
	COALESCE(sr.amount, 0) AS amount
FROM shift_allowances sa
LEFT JOIN shift_mappings sm ON sm.shift_allowance_id = sa.id
LEFT JOIN shift_amounts sr
	ON sr.shift_type = sm.shift_type
	AND sr.payroll_year = EXTRACT(YEAR FROM sa.duration_month)::int
`

func appendRecordFilter(sb *strings.Builder, args *[]any, filter RecordFilter) {
	if filter.EmpID != "" {
		sb.WriteString("AND trim(sa.emp_id) = trim(?)\n")
		*args = append(*args, filter.EmpID)
	}
	if filter.AccountManager != "" {
		sb.WriteString("AND lower(trim(sa.account_manager)) = lower(trim(?))\n")
		*args = append(*args, filter.AccountManager)
	}
	if filter.Department != "" {
		sb.WriteString("AND lower(trim(sa.department)) = lower(trim(?))\n")
		*args = append(*args, filter.Department)
	}
	if filter.Client != "" {
		sb.WriteString("AND lower(trim(sa.client)) = lower(trim(?))\n")
		*args = append(*args, filter.Client)
	}
}

func (r *repository) FindRecords(ctx context.Context, filter RecordFilter) ([]RecordRow, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString(recordSelect)
	sb.WriteString("WHERE 1=1\n")
	appendRecordFilter(&sb, &args, filter)

	if filter.StartMonth != nil {
		sb.WriteString("AND sa.duration_month >= ?\n")
		args = append(args, *filter.StartMonth)
	}
	if filter.EndMonth != nil {
		sb.WriteString("AND sa.duration_month <= ?\n")
		args = append(args, *filter.EndMonth)
	}

	sb.WriteString("ORDER BY sa.id ASC, sm.id ASC")

	var rows []RecordRow
	err := r.db.WithContext(ctx).Raw(sb.String(), args...).Scan(&rows).Error
	return rows, err
}

// LatestMonthSince mencari bulan kerja terbaru yang punya record sesuai
// filter, tidak lebih tua dari oldest
func (r *repository) LatestMonthSince(ctx context.Context, filter RecordFilter, oldest time.Time) (time.Time, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT max(sa.duration_month) FROM shift_allowances sa\nWHERE sa.duration_month >= ?\n")
	args = append(args, oldest)
	appendRecordFilter(&sb, &args, filter)

	var latest *time.Time
	err := r.db.WithContext(ctx).Raw(sb.String(), args...).Scan(&latest).Error
	if err != nil {
		return time.Time{}, err
	}
	if latest == nil {
		return time.Time{}, gorm.ErrRecordNotFound
	}
	return *latest, nil
}
