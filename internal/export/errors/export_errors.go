package exporterrors

import (
	"net/http"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/apperror"
)

var (
	ErrStartMonthRequired = apperror.New(
		apperror.CodeInvalidInput,
		"start_month is required when end_month is provided",
		http.StatusBadRequest,
	)
	ErrInvalidStartMonth = apperror.New(
		apperror.CodeInvalidInput,
		"start_month must be YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidEndMonth = apperror.New(
		apperror.CodeInvalidInput,
		"end_month must be YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_month cannot be after end_month",
		http.StatusBadRequest,
	)
	ErrNoDataLast12Months = apperror.New(
		apperror.CodeNotFound,
		"No data found in last 12 months",
		http.StatusNotFound,
	)
	ErrNoRecordsForFilters = apperror.New(
		apperror.CodeNotFound,
		"No records found for given filters",
		http.StatusNotFound,
	)
	ErrNoDataForExport = apperror.New(
		apperror.CodeNotFound,
		"No data available for export",
		http.StatusNotFound,
	)
)
