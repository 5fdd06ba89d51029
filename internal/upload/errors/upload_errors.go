package uploaderrors

import (
	"net/http"
	"strings"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/apperror"
)

var (
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"file is required",
		http.StatusBadRequest,
	)
	ErrUnsupportedFileType = apperror.New(
		apperror.CodeInvalidInput,
		"Only Excel files are allowed",
		http.StatusBadRequest,
	)
	ErrEmptySheet = apperror.New(
		apperror.CodeInvalidInput,
		"Uploaded file has no data rows",
		http.StatusBadRequest,
	)
	ErrDuplicateRecord = apperror.New(
		apperror.CodeConflict,
		"Record already exists for this employee and month",
		http.StatusConflict,
	)
	ErrUploadNotFound = apperror.New(
		apperror.CodeNotFound,
		"Upload not found",
		http.StatusNotFound,
	)
	ErrErrorFileNotFound = apperror.New(
		apperror.CodeNotFound,
		"Error file not found",
		http.StatusNotFound,
	)
)

// SchemaMismatch menyebutkan kolom template yang hilang supaya pengirim
// bisa memperbaiki file-nya; kolom ekstra bukan alasan penolakan
func SchemaMismatch(missing []string) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeInvalidInput,
		http.StatusBadRequest,
		"Uploaded file is missing required columns: %s",
		strings.Join(missing, ", "),
	)
}
