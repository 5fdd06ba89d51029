package upload

import (
	"context"
	"database/sql"
	"time"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/allowance"
)

//go:generate mockgen -source=upload_repo.go -destination=mock/upload_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateUploadedFile(ctx context.Context, file *UploadedFile) error
	UpdateUploadedFile(ctx context.Context, file *UploadedFile) error
	FindUploadedFile(ctx context.Context, id string) (*UploadedFile, error)
	ListUploadedFiles(ctx context.Context, limit int) ([]UploadedFile, error)
	InsertAllowance(ctx context.Context, record allowance.ShiftAllowance) (uint, error)
	InsertMapping(ctx context.Context, allowanceID uint, shiftType string, days float64) error
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) CreateUploadedFile(ctx context.Context, file *UploadedFile) error {
	query := `
        INSERT INTO uploaded_files (
            id, file_name, status, total_rows, inserted_rows, failed_rows,
            error_file_path, error_file_url, uploaded_by, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
    `

	_, err := r.execer().ExecContext(
		ctx, query,
		file.ID, file.FileName, file.Status, file.TotalRows, file.InsertedRows,
		file.FailedRows, file.ErrorFilePath, file.ErrorFileURL, file.UploadedBy,
	)
	return err
}

func (r *repository) UpdateUploadedFile(ctx context.Context, file *UploadedFile) error {
	query := `
        UPDATE uploaded_files
        SET status = $2,
            total_rows = $3,
            inserted_rows = $4,
            failed_rows = $5,
            error_file_path = $6,
            error_file_url = $7,
            updated_at = NOW()
        WHERE id = $1
    `

	_, err := r.execer().ExecContext(
		ctx, query,
		file.ID, file.Status, file.TotalRows, file.InsertedRows,
		file.FailedRows, file.ErrorFilePath, file.ErrorFileURL,
	)
	return err
}

const uploadedFileSelect = `
SELECT
	id::text,
	file_name,
	status,
	total_rows,
	inserted_rows,
	failed_rows,
	COALESCE(error_file_path, ''),
	COALESCE(error_file_url, ''),
	COALESCE(uploaded_by, ''),
	created_at,
	updated_at
FROM uploaded_files
`

func scanUploadedFile(row interface{ Scan(...any) error }) (*UploadedFile, error) {
	var f UploadedFile
	err := row.Scan(
		&f.ID, &f.FileName, &f.Status,
		&f.TotalRows, &f.InsertedRows, &f.FailedRows,
		&f.ErrorFilePath, &f.ErrorFileURL, &f.UploadedBy,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) FindUploadedFile(ctx context.Context, id string) (*UploadedFile, error) {
	return scanUploadedFile(r.db.QueryRowContext(ctx, uploadedFileSelect+" WHERE id = $1", id))
}

func (r *repository) ListUploadedFiles(ctx context.Context, limit int) ([]UploadedFile, error) {
	rows, err := r.db.QueryContext(ctx, uploadedFileSelect+" ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]UploadedFile, 0, limit)
	for rows.Next() {
		f, err := scanUploadedFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}

	return files, rows.Err()
}

func (r *repository) InsertAllowance(ctx context.Context, record allowance.ShiftAllowance) (uint, error) {
	query := `
        INSERT INTO shift_allowances (
            emp_id, emp_name, grade, department, client, project, project_code,
            account_manager, delivery_manager, practice_lead, billability_status,
            practice_remarks, rmg_comments, duration_month, payroll_month, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
        RETURNING id
    `

	var id uint
	err := r.queryer().QueryRowContext(
		ctx, query,
		record.EmpID, record.EmpName, record.Grade, record.Department,
		record.Client, record.Project, record.ProjectCode, record.AccountManager,
		record.DeliveryManager, record.PracticeLead, record.BillabilityStatus,
		record.PracticeRemarks, record.RmgComments,
		record.DurationMonth.Format(time.DateOnly), record.PayrollMonth.Format(time.DateOnly),
	).Scan(&id)
	return id, err
}

func (r *repository) InsertMapping(ctx context.Context, allowanceID uint, shiftType string, days float64) error {
	query := `
        INSERT INTO shift_mappings (shift_allowance_id, shift_type, days)
        VALUES ($1, $2, $3)
    `

	_, err := r.execer().ExecContext(ctx, query, allowanceID, shiftType, days)
	return err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) queryer() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
