package apperror

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// HTTPError adalah bentuk final sebuah error sebelum ditulis ke response.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP memetakan error apa pun ke HTTPError. Error yang bukan AppError
// dianggap kebocoran internal: dicatat lalu disamarkan jadi 500 generik.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}

	zap.L().Error("unmapped internal error", zap.Error(err))
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred",
	}
}
