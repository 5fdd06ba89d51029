package allowanceerrors

import (
	"net/http"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/apperror"
)

var (
	ErrNoDataForRange = apperror.New(
		apperror.CodeNotFound,
		"No data found for the given range",
		http.StatusNotFound,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Given id doesn't exist",
		http.StatusNotFound,
	)
)
