package summaryerrors

import (
	"net/http"
	"strings"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/apperror"
)

var (
	ErrMissingYear = apperror.New(
		apperror.CodeInvalidInput,
		"selected_year is mandatory",
		http.StatusBadRequest,
	)
	ErrYearNotPositive = apperror.New(
		apperror.CodeInvalidInput,
		"selected_year must be greater than 0",
		http.StatusBadRequest,
	)
	ErrYearInFuture = apperror.New(
		apperror.CodeInvalidInput,
		"selected_year cannot be in the future",
		http.StatusBadRequest,
	)
	ErrInvalidQuarter = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid quarter (expected Q1-Q4)",
		http.StatusBadRequest,
	)
	ErrInvalidMonthFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid month format. Expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_month cannot be after end_month",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"selected_months must contain values between 01 and 12",
		http.StatusBadRequest,
	)
	ErrInvalidClients = apperror.New(
		apperror.CodeInvalidInput,
		"clients must be 'ALL' or {client: [departments]}",
		http.StatusBadRequest,
	)
	ErrNoDateFilter = apperror.New(
		apperror.CodeInvalidInput,
		"No valid date filter provided",
		http.StatusBadRequest,
	)
	ErrNoData = apperror.New(
		apperror.CodeNotFound,
		"No data available in database",
		http.StatusNotFound,
	)
	ErrNoPayrollData = apperror.New(
		apperror.CodeNotFound,
		"No payroll data available in the system",
		http.StatusNotFound,
	)
)

// NoRecordsForPayrollMonth dipakai rollup per payroll month saat bulan
// yang diminta tidak punya baris sama sekali
func NoRecordsForPayrollMonth(label string) *apperror.AppError {
	return apperror.Newf(apperror.CodeNotFound, http.StatusNotFound, "No records found for payroll month %s", label)
}

// NoDataForPeriod membentuk error 404 untuk satu periode kosong
func NoDataForPeriod(label string) *apperror.AppError {
	return apperror.Newf(apperror.CodeNotFound, http.StatusNotFound, "No data found for %s", label)
}

// NoDataForMonths membentuk error 404 untuk mode range yang strict:
// menyebutkan semua bulan yang tidak punya data.
func NoDataForMonths(labels []string) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeNotFound,
		http.StatusNotFound,
		"No data found for months: %s",
		strings.Join(labels, ", "),
	)
}
