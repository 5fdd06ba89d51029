package upload

import (
	"errors"
	"strings"

	uploaderrors "github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/upload/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueEmpMonthConstraint = "uq_shift_allowance_emp_month"

// mapInsertError menerjemahkan error driver saat insert baris menjadi
// AppError yang pesannya layak masuk error file
func mapInsertError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		if pgErr.Code == "23505" && pgErr.ConstraintName == uniqueEmpMonthConstraint {
			return uploaderrors.ErrDuplicateRecord
		}
		return err
	}

	// Fallback kalau driver di depan bukan pgx
	if strings.Contains(err.Error(), "duplicate key") &&
		strings.Contains(err.Error(), uniqueEmpMonthConstraint) {
		return uploaderrors.ErrDuplicateRecord
	}

	return err
}
