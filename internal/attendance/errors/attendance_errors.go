package attendanceerrors

import (
	"net/http"

	"go-presensi/internal/shared/apperror"
)

var (
	ErrInvalidCoordinates = apperror.New(
		apperror.CodeInvalidInput,
		"latitude must be within -90..90 and longitude within -180..180",
		http.StatusBadRequest,
	)
	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"offline timestamp is missing, unparsable, or too far in the future",
		http.StatusBadRequest,
	)
	ErrInvalidSubmissionType = apperror.New(
		apperror.CodeInvalidInput,
		"submission_type must be check_in, check_out, break_start, or break_end",
		http.StatusBadRequest,
	)
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	ErrAlreadyReviewed = apperror.New(
		apperror.CodeInvalidState,
		"attendance record has already been reviewed",
		http.StatusConflict,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"review decision must be approved or rejected",
		http.StatusBadRequest,
	)
)
