package photoerrors

import (
	"net/http"

	"go-presensi/internal/shared/apperror"
)

var (
	ErrInvalidSlot = apperror.New(
		apperror.CodeInvalidInput,
		"photo type must be check_in or check_out",
		http.StatusBadRequest,
	)
	ErrDuplicateSlot = apperror.New(
		apperror.CodeConflict,
		"an active photo already fills this slot",
		http.StatusConflict,
	)
	ErrPhotoNotFound = apperror.New(
		apperror.CodeNotFound,
		"photo not found",
		http.StatusNotFound,
	)
	ErrStorageWrite = apperror.New(
		apperror.CodeInternalError,
		"failed to store photo file",
		http.StatusInternalServerError,
	)
)
