package upload

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/allowance"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/events"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/messaging/kafka"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/contextutil"
	uploaderrors "github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/upload/errors"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Format bulan yang diterima di kolom "Month - Year" dan "Payroll Month";
// hanya bentuk short-month (Mar'25 / Mar-25), nilai numerik seperti
// "2025-03" dihitung sebagai baris gagal
var acceptedMonthLayouts = []string{"Jan'06", "Jan-06"}

// errorFileURLPrefix harus sejalan dengan registrasi route upload
// di bawah group /api/v1
const errorFileURLPrefix = "/api/v1/upload/error-files/"

//go:generate mockgen -source=upload_service.go -destination=mock/upload_service_mock.go -package=mock
type Service interface {
	ProcessExcel(ctx context.Context, fileName string, file io.Reader, baseURL, uploadedBy string) (*UploadResult, error)
	ListUploads(ctx context.Context, limit int) ([]UploadedFileResponse, error)
	ErrorFilePath(name string) (string, error)
}

// UploadResult adalah hasil akhir pipeline ingest untuk satu file
type UploadResult struct {
	Message string `json:"message"`
	UploadResponse
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	errorDir string
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, errorDir string) Service {
	if errorDir == "" {
		errorDir = "media/error_excels"
	}
	return &service{db: db, repo: repo, outbox: outbox, errorDir: errorDir}
}

// parsedRow adalah satu baris spreadsheet yang lolos validasi
type parsedRow struct {
	record   allowance.ShiftAllowance
	mappings []mappingDays
	cells    []string
}

type mappingDays struct {
	shiftType string
	days      float64
}

// failedRow membawa isi baris asli plus alasan gagalnya untuk error file
type failedRow struct {
	cells  []string
	reason string
}

func (s *service) ProcessExcel(ctx context.Context, fileName string, file io.Reader, baseURL, uploadedBy string) (*UploadResult, error) {
	log := contextutil.GetLogger(ctx, zap.L()).With(zap.String("file_name", fileName))

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != ".xlsx" && ext != ".xls" {
		return nil, uploaderrors.ErrUnsupportedFileType
	}

	book, err := excelize.OpenReader(file)
	if err != nil {
		return nil, uploaderrors.ErrUnsupportedFileType
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, uploaderrors.ErrEmptySheet
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, uploaderrors.ErrEmptySheet
	}

	if missing := checkHeaders(rows[0]); len(missing) > 0 {
		return nil, uploaderrors.SchemaMismatch(missing)
	}

	// Status row dibuat dulu supaya upload yang gagal total tetap tercatat
	tracked := &UploadedFile{
		ID:         uuid.NewString(),
		FileName:   fileName,
		Status:     StatusProcessing,
		TotalRows:  len(rows) - 1,
		UploadedBy: uploadedBy,
	}
	if err := s.repo.CreateUploadedFile(ctx, tracked); err != nil {
		return nil, err
	}

	index := headerIndex(rows[0])
	var (
		cleanRows []*parsedRow
		failures  []failedRow
	)

	for _, row := range rows[1:] {
		if isBlankRow(row) {
			tracked.TotalRows--
			continue
		}

		parsed, reason := parseRow(row, index)
		if reason != "" {
			failures = append(failures, failedRow{cells: row, reason: reason})
			continue
		}
		cleanRows = append(cleanRows, parsed)
	}

	// Semua baris bersih masuk dalam satu transaksi: pelanggaran unique
	// constraint (atau error database lain) membatalkan seluruh attempt,
	// bukan hanya baris yang bentrok
	if err := s.insertRows(ctx, cleanRows); err != nil {
		log.Error("insert aborted, rolling back upload", zap.Error(err))
		tracked.Status = StatusFailed
		tracked.FailedRows = tracked.TotalRows
		if finishErr := s.finishUpload(ctx, tracked); finishErr != nil {
			log.Error("finish upload failed", zap.Error(finishErr))
		}
		return nil, err
	}

	tracked.InsertedRows = len(cleanRows)
	tracked.FailedRows = len(failures)

	result := &UploadResult{}
	if len(failures) > 0 {
		tracked.Status = StatusPartiallyProcessed
		result.Message = "File partially processed. Some rows contained invalid data."
	} else {
		tracked.Status = StatusProcessed
		result.Message = "File processed successfully"
	}

	if len(failures) > 0 {
		path, url, err := s.writeErrorFile(tracked.ID, baseURL, failures)
		if err != nil {
			log.Error("write error file failed", zap.Error(err))
		} else {
			tracked.ErrorFilePath = path
			tracked.ErrorFileURL = url
		}
	}

	if err := s.finishUpload(ctx, tracked); err != nil {
		return nil, err
	}

	result.UploadResponse = UploadResponse{
		UploadID:     tracked.ID,
		FileName:     tracked.FileName,
		Status:       tracked.Status,
		TotalRows:    tracked.TotalRows,
		InsertedRows: tracked.InsertedRows,
		FailedRows:   tracked.FailedRows,
		ErrorFileURL: tracked.ErrorFileURL,
	}
	return result, nil
}

// insertRows menyimpan seluruh record beserta mapping shift-nya dalam
// satu transaksi; error di tengah membuat tidak ada baris yang tersimpan
func (s *service) insertRows(ctx context.Context, rows []*parsedRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)

	for _, row := range rows {
		id, err := txRepo.InsertAllowance(ctx, row.record)
		if err != nil {
			return mapInsertError(err)
		}

		for _, m := range row.mappings {
			if err := txRepo.InsertMapping(ctx, id, m.shiftType, m.days); err != nil {
				return mapInsertError(err)
			}
		}
	}

	return tx.Commit()
}

// finishUpload menulis status akhir dan event outbox dalam satu transaksi
func (s *service) finishUpload(ctx context.Context, tracked *UploadedFile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpdateUploadedFile(ctx, tracked); err != nil {
		return err
	}

	payload, err := json.Marshal(events.UploadCompletedEvent{
		EventType:    "upload.completed",
		UploadID:     tracked.ID,
		FileName:     tracked.FileName,
		Status:       tracked.Status,
		RowsInserted: tracked.InsertedRows,
		RowsFailed:   tracked.FailedRows,
		ErrorFileURL: tracked.ErrorFileURL,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	event := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "uploaded_file",
		AggregateID:   tracked.ID,
		EventType:     "upload.completed",
		Topic:         events.UploadCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		return err
	}

	return tx.Commit()
}

func parseRow(row []string, index map[string]int) (*parsedRow, string) {
	cell := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var reasons []string

	empID := cell(colEmpID)
	if empID == "" {
		reasons = append(reasons, "'Emp ID' is required")
	}
	empName := cell(colEmpName)
	if empName == "" {
		reasons = append(reasons, "'Emp Name' is required")
	}

	days := map[string]float64{}
	for _, col := range numericHeaders {
		raw := cell(col)
		if raw == "" {
			// NaN / kosong diperlakukan sebagai 0 hari
			days[col] = 0
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil || v < 0 {
			reasons = append(reasons, fmt.Sprintf("Invalid value in '%s' → '%s' (expected numeric)", col, raw))
			continue
		}
		days[col] = v
	}

	durationMonth, err := parseMonthCell(cell(colDurationMonth))
	if err != nil {
		reasons = append(reasons, fmt.Sprintf("Invalid value in '%s' → '%s' (expected a month like Mar'25)", colDurationMonth, cell(colDurationMonth)))
	}
	payrollMonth, err := parseMonthCell(cell(colPayrollMonth))
	if err != nil {
		reasons = append(reasons, fmt.Sprintf("Invalid value in '%s' → '%s' (expected a month like Mar'25)", colPayrollMonth, cell(colPayrollMonth)))
	}

	if len(reasons) > 0 {
		return nil, strings.Join(reasons, "; ")
	}

	record := allowance.ShiftAllowance{
		EmpID:             empID,
		EmpName:           empName,
		Grade:             cell(colGrade),
		Department:        cell(colDepartment),
		Client:            cell(colClient),
		Project:           cell(colProject),
		ProjectCode:       cell(colProjectCode),
		AccountManager:    cell(colAccountManager),
		DeliveryManager:   cell(colDeliveryManager),
		PracticeLead:      cell(colPracticeLead),
		BillabilityStatus: cell(colBillability),
		PracticeRemarks:   cell(colPracticeRemarks),
		RmgComments:       cell(colRmgComments),
		DurationMonth:     durationMonth,
		PayrollMonth:      payrollMonth,
	}

	dayColumns := []struct {
		col       string
		shiftType string
	}{
		{colShiftADays, allowance.ShiftTypeA},
		{colShiftBDays, allowance.ShiftTypeB},
		{colShiftCDays, allowance.ShiftTypeC},
		{colPrimeDays, allowance.ShiftTypePrime},
	}

	var mappings []mappingDays
	for _, dc := range dayColumns {
		if days[dc.col] > 0 {
			mappings = append(mappings, mappingDays{shiftType: dc.shiftType, days: days[dc.col]})
		}
	}

	return &parsedRow{record: record, mappings: mappings, cells: row}, ""
}

// parseMonthCell menerima beberapa format bulan; sel kosong memakai bulan
// berjalan, mengikuti perilaku pipeline lama
func parseMonthCell(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}

	for _, layout := range acceptedMonthLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized month %q", raw)
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// writeErrorFile menulis ulang baris yang gagal ke xlsx baru dengan kolom
// Error Reason di ujung, lalu mengembalikan path dan link unduhnya
func (s *service) writeErrorFile(uploadID, baseURL string, failures []failedRow) (string, string, error) {
	if err := os.MkdirAll(s.errorDir, 0o755); err != nil {
		return "", "", err
	}

	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(0)

	header := append(append([]string{}, expectedHeaders...), errorReasonHeader)
	if err := writeStringRow(book, sheet, 1, header); err != nil {
		return "", "", err
	}

	for i, f := range failures {
		cells := append(append([]string{}, f.cells...), f.reason)
		if err := writeStringRow(book, sheet, i+2, cells); err != nil {
			return "", "", err
		}
	}

	name := fmt.Sprintf(errorFileNamePattern, strings.ReplaceAll(uploadID, "-", ""))
	path := filepath.Join(s.errorDir, name)
	if err := book.SaveAs(path); err != nil {
		return "", "", err
	}

	url := strings.TrimSuffix(baseURL, "/") + errorFileURLPrefix + name
	return path, url, nil
}

func writeStringRow(book *excelize.File, sheet string, rowNum int, cells []string) error {
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	start, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return book.SetSheetRow(sheet, start, &values)
}

func (s *service) ListUploads(ctx context.Context, limit int) ([]UploadedFileResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	files, err := s.repo.ListUploadedFiles(ctx, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]UploadedFileResponse, 0, len(files))
	for _, f := range files {
		resp = append(resp, toUploadedFileResponse(f))
	}
	return resp, nil
}

// ErrorFilePath memvalidasi nama file sebelum di-serve; nama dengan path
// separator atau di luar pola error_*.xlsx ditolak
func (s *service) ErrorFilePath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", uploaderrors.ErrErrorFileNotFound
	}
	if !strings.HasPrefix(name, "error_") || !strings.HasSuffix(name, ".xlsx") {
		return "", uploaderrors.ErrErrorFileNotFound
	}

	path := filepath.Join(s.errorDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", uploaderrors.ErrErrorFileNotFound
	}
	return path, nil
}
