package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	exporterrors "github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/export/errors"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/cache"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/contextutil"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/summary"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	monthLayout       = "2006-01"
	summarySheetName  = "Client Summary"
	defaultExportFile = "client_summary_latest.xlsx"
	excelCacheKey     = summary.CacheKey + ":excel"
)

//go:generate mockgen -source=export_service.go -destination=mock/export_service_mock.go -package=mock
type Service interface {
	DownloadClientSummary(ctx context.Context, req summary.SummaryRequest) (string, error)
	ExportRecords(ctx context.Context, req ExportRecordsRequest) (*bytes.Buffer, error)
}

type service struct {
	repo       Repository
	summarySvc summary.Service
	cache      cache.Service
	exportDir  string
}

func NewService(repo Repository, summarySvc summary.Service, cacheSvc cache.Service, exportDir string) Service {
	if exportDir == "" {
		exportDir = "exports"
	}
	return &service{repo: repo, summarySvc: summarySvc, cache: cacheSvc, exportDir: exportDir}
}

// summaryExportRow adalah satu baris sheet Client Summary: level karyawan
// bila ada, atau total department untuk department tanpa rincian karyawan
type summaryExportRow struct {
	Period        string
	Client        string
	ClientPartner string
	EmpID         string
	Department    string
	HeadCount     int
	ShiftA        string
	ShiftB        string
	ShiftC        string
	ShiftPrime    string
	Total         string
}

func (s *service) DownloadClientSummary(ctx context.Context, req summary.SummaryRequest) (string, error) {
	isDefault := req.IsDefault()

	// File default dipakai ulang selama masih ada di disk dan belum expired
	if isDefault {
		var cached CachedExport
		if err := s.cache.GetJSON(ctx, excelCacheKey, &cached); err == nil && cached.FilePath != "" {
			if _, statErr := os.Stat(cached.FilePath); statErr == nil {
				return cached.FilePath, nil
			}
		} else if err != nil && !errors.Is(err, cache.ErrMiss) {
			contextutil.GetLogger(ctx, zap.L()).Warn("export cache read failed", zap.Error(err))
		}
	}

	data, err := s.summarySvc.ClientSummary(ctx, req)
	if err != nil {
		return "", err
	}

	rows := flattenSummary(data, req.EmpID, req.AccountManager.String())
	if len(rows) == 0 {
		return "", exporterrors.ErrNoDataForExport
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		if a.Client != b.Client {
			return a.Client < b.Client
		}
		if a.Department != b.Department {
			return a.Department < b.Department
		}
		return a.EmpID < b.EmpID
	})

	path, err := s.writeSummaryFile(rows, isDefault)
	if err != nil {
		return "", err
	}

	if isDefault {
		entry := CachedExport{CachedMonth: rows[0].Period, FilePath: path}
		if err := s.cache.SetJSON(ctx, excelCacheKey, entry, summary.CacheTTL); err != nil {
			contextutil.GetLogger(ctx, zap.L()).Warn("export cache write failed", zap.Error(err))
		}
	}

	return path, nil
}

// flattenSummary menurunkan pohon periode menjadi baris datar. Department
// tanpa rincian karyawan tetap diwakili satu baris total.
func flattenSummary(data *summary.PeriodMap, empFilter, managerFilter string) []summaryExportRow {
	var rows []summaryExportRow

	for _, period := range data.Labels() {
		periodData := data.Get(period)
		if !periodData.HasData() {
			continue
		}

		for _, clientName := range periodData.Clients.Names() {
			client := periodData.Clients.Get(clientName)

			for _, deptName := range client.Departments.Names() {
				dept := client.Departments.Get(deptName)

				if len(dept.Employees) == 0 {
					if managerFilter != "" {
						continue
					}
					rows = append(rows, summaryExportRow{
						Period:     period,
						Client:     clientName,
						Department: deptName,
						HeadCount:  dept.DeptHeadCount,
						ShiftA:     formatMoney(dept.DeptA),
						ShiftB:     formatMoney(dept.DeptB),
						ShiftC:     formatMoney(dept.DeptC),
						ShiftPrime: formatMoney(dept.DeptPrime),
						Total:      formatMoney(dept.DeptTotal),
					})
					continue
				}

				for _, emp := range dept.Employees {
					if empFilter != "" && empFilter != emp.EmpID {
						continue
					}
					if managerFilter != "" && !strings.EqualFold(managerFilter, emp.AccountManager) {
						continue
					}
					rows = append(rows, summaryExportRow{
						Period:        period,
						Client:        clientName,
						ClientPartner: emp.AccountManager,
						EmpID:         emp.EmpID,
						Department:    deptName,
						HeadCount:     1,
						ShiftA:        formatMoney(emp.ShiftA),
						ShiftB:        formatMoney(emp.ShiftB),
						ShiftC:        formatMoney(emp.ShiftC),
						ShiftPrime:    formatMoney(emp.ShiftPrime),
						Total:         formatMoney(emp.Total),
					})
				}
			}
		}
	}

	return rows
}

var summaryHeaders = []string{
	"Period", "Client", "Client Partner", "Employee ID", "Department",
	"Head Count", "Shift A", "Shift B", "Shift C", "Shift PRIME", "Total Allowance",
}

// writeSummaryFile menulis file default lewat temp+rename supaya pembaca
// yang sedang mengunduh tidak melihat file setengah jadi
func (s *service) writeSummaryFile(rows []summaryExportRow, isDefault bool) (string, error) {
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", err
	}

	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(0)
	if err := book.SetSheetName(sheet, summarySheetName); err != nil {
		return "", err
	}
	sheet = summarySheetName

	header := make([]any, len(summaryHeaders))
	for i, h := range summaryHeaders {
		header[i] = h
	}
	if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", err
	}

	for i, row := range rows {
		cells := []any{
			row.Period, row.Client, row.ClientPartner, row.EmpID, row.Department,
			row.HeadCount, row.ShiftA, row.ShiftB, row.ShiftC, row.ShiftPrime, row.Total,
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		if err := book.SetSheetRow(sheet, start, &cells); err != nil {
			return "", err
		}
	}

	if !isDefault {
		path := filepath.Join(s.exportDir, fmt.Sprintf("client_summary_%s.xlsx", time.Now().Format("20060102_150405")))
		return path, book.SaveAs(path)
	}

	path := filepath.Join(s.exportDir, defaultExportFile)
	tmp := path + ".tmp"
	if err := book.SaveAs(tmp); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	return path, nil
}

var recordHeaders = []string{
	"emp_id", "emp_name", "grade", "department", "client", "project",
	"project_code", "account_manager", "shift_details", "delivery_manager",
	"practice_lead", "billability_status", "practice_remarks", "rmg_comments",
	"duration_month", "payroll_month", "total_allowance",
}

func (s *service) ExportRecords(ctx context.Context, req ExportRecordsRequest) (*bytes.Buffer, error) {
	filter := RecordFilter{
		EmpID:          strings.TrimSpace(req.EmpID),
		AccountManager: strings.TrimSpace(req.AccountManager),
		Department:     strings.TrimSpace(req.Department),
		Client:         strings.TrimSpace(req.Client),
	}

	if err := s.resolveExportWindow(ctx, req, &filter); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindRecords(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, exporterrors.ErrNoRecordsForFilters
	}

	return writeRecordsBook(rows)
}

// resolveExportWindow mengisi rentang bulan filter: eksplisit dari request,
// atau fallback ke bulan terbaru dalam 12 bulan terakhir
func (s *service) resolveExportWindow(ctx context.Context, req ExportRecordsRequest, filter *RecordFilter) error {
	if req.StartMonth == "" && req.EndMonth == "" {
		now := time.Now()
		current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		oldest := current.AddDate(0, -11, 0)

		latest, err := s.repo.LatestMonthSince(ctx, *filter, oldest)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return exporterrors.ErrNoDataLast12Months
			}
			return err
		}

		month := time.Date(latest.Year(), latest.Month(), 1, 0, 0, 0, 0, time.UTC)
		filter.StartMonth = &month
		filter.EndMonth = &month
		return nil
	}

	if req.StartMonth == "" {
		return exporterrors.ErrStartMonthRequired
	}

	start, err := time.Parse(monthLayout, req.StartMonth)
	if err != nil {
		return exporterrors.ErrInvalidStartMonth
	}
	filter.StartMonth = &start

	if req.EndMonth == "" {
		filter.EndMonth = &start
		return nil
	}

	end, err := time.Parse(monthLayout, req.EndMonth)
	if err != nil {
		return exporterrors.ErrInvalidEndMonth
	}
	if start.After(end) {
		return exporterrors.ErrInvalidRange
	}
	filter.EndMonth = &end
	return nil
}

func writeRecordsBook(rows []RecordRow) (*bytes.Buffer, error) {
	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(0)

	header := make([]any, len(recordHeaders))
	for i, h := range recordHeaders {
		header[i] = h
	}
	if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	rowNum := 1
	for i := 0; i < len(rows); {
		record := rows[i]

		var shiftEntries []string
		var totalAllowance float64
		// Baris join berurutan untuk record yang sama digabung jadi satu
		// baris output
		j := i
		for ; j < len(rows) && rows[j].RecordID == record.RecordID; j++ {
			if rows[j].Days > 0 && rows[j].ShiftType != "" {
				shiftEntries = append(shiftEntries,
					fmt.Sprintf("%s-%d", strings.ToUpper(rows[j].ShiftType), int(rows[j].Days)))
				totalAllowance += rows[j].Days * rows[j].Amount
			}
		}
		i = j

		rowNum++
		cells := []any{
			record.EmpID, record.EmpName, record.Grade, record.Department,
			record.Client, record.Project, record.ProjectCode, record.AccountManager,
			strings.Join(shiftEntries, ", "), record.DeliveryManager,
			record.PracticeLead, record.BillabilityStatus, record.PracticeRemarks,
			record.RmgComments, record.DurationMonth.Format(monthLayout),
			record.PayrollMonth.Format(monthLayout),
			"₹ " + groupComma(strconv.FormatFloat(totalAllowance, 'f', 2, 64)),
		}
		start, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return nil, err
		}
		if err := book.SetSheetRow(sheet, start, &cells); err != nil {
			return nil, err
		}
	}

	return book.WriteToBuffer()
}

func formatMoney(v float64) string {
	return "₹" + groupComma(strconv.FormatFloat(v, 'f', -1, 64))
}

// groupComma menyisipkan pemisah ribuan di bagian integer angka desimal
func groupComma(num string) string {
	sign := ""
	if strings.HasPrefix(num, "-") {
		sign = "-"
		num = num[1:]
	}

	intPart, fracPart := num, ""
	if dot := strings.IndexByte(num, '.'); dot >= 0 {
		intPart, fracPart = num[:dot], num[dot:]
	}

	if len(intPart) <= 3 {
		return sign + intPart + fracPart
	}

	var sb strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		sb.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(intPart[i : i+3])
	}
	return sign + sb.String() + fracPart
}
