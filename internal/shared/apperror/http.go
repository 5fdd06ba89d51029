package apperror

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// HTTPError adalah bentuk final yang dikirim ke response writer
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP menerjemahkan error apapun menjadi HTTPError.
// AppError dipetakan apa adanya; error lain dianggap kegagalan internal
// dan pesannya tidak dibocorkan ke client.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	zap.L().Error("unhandled error", zap.Error(err))

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred",
	}
}
