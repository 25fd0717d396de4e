package officeerrors

import (
	"net/http"

	"go-presensi/internal/shared/apperror"
)

var (
	ErrOfficeNotFound = apperror.New(
		apperror.CodeNotFound,
		"office not found",
		http.StatusNotFound,
	)
	ErrOfficeNameTaken = apperror.New(
		apperror.CodeConflict,
		"office name already exists",
		http.StatusConflict,
	)
	ErrInvalidCoordinates = apperror.New(
		apperror.CodeInvalidInput,
		"latitude must be between -90 and 90 and longitude between -180 and 180",
		http.StatusBadRequest,
	)
)
