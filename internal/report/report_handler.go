package report

import (
	"net/http"
	"strconv"
	"time"

	"go-presensi/internal/attendance"
	"go-presensi/internal/shared/apperror"
	"go-presensi/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// parseDate menerima YYYY-MM-DD; endOfDay menggeser ke detik terakhir
// supaya batas tanggal bersifat inklusif.
func parseDate(v string, endOfDay bool) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, apperror.InvalidField(v)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return &t, nil
}

func (h *Handler) Range(c *gin.Context) {
	start, err := parseDate(c.Query("start_date"), false)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	end, err := parseDate(c.Query("end_date"), true)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	rep, svcErr := h.service.Range(c.Request.Context(), start, end)
	if svcErr != nil {
		writeServiceError(c, svcErr)
		return
	}
	response.Success(c, http.StatusOK, rep, nil)
}

func (h *Handler) Pending(c *gin.Context) {
	rep, err := h.service.Pending(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rep, nil)
}

func (h *Handler) SubjectHistory(c *gin.Context) {
	subjectID, err := strconv.ParseInt(c.Param("subject_id"), 10, 64)
	if err != nil || subjectID <= 0 {
		writeServiceError(c, apperror.InvalidField("subject_id"))
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "30"))
	if err != nil || limit <= 0 {
		limit = 30
	}

	var dr *attendance.DateRange
	start, err := parseDate(c.Query("start_date"), false)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	end, err := parseDate(c.Query("end_date"), true)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if start != nil && end != nil {
		dr = &attendance.DateRange{Start: *start, End: *end}
	}

	rows, svcErr := h.service.SubjectHistory(c.Request.Context(), subjectID, limit, dr)
	if svcErr != nil {
		writeServiceError(c, svcErr)
		return
	}
	response.Success(c, http.StatusOK, rows, nil)
}
