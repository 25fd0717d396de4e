package attendance

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	attendanceerrors "go-presensi/internal/attendance/errors"
	"go-presensi/internal/photo"
	"go-presensi/internal/shared/apperror"
	"go-presensi/internal/shared/response"
	"go-presensi/internal/subject"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Submit menerima JSON (web) maupun multipart form (mobile, dengan foto).
// Semua koersi tipe longgar selesai di sini; service hanya menerima input
// yang sudah bertipe kuat.
func (h *Handler) Submit(c *gin.Context) {
	subjectID := c.GetInt64("subject_id")

	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")
	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	var (
		in      SubmissionInput
		uploads map[string]photo.Upload
		closers []func()
		err     error
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		in, uploads, closers, err = parseMultipartSubmission(c)
	} else {
		var req SubmissionRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", bindErr.Error())
			return
		}
		in, err = req.ToInput()
	}
	defer func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), subjectID, in, uploads)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func parseMultipartSubmission(c *gin.Context) (SubmissionInput, map[string]photo.Upload, []func(), error) {
	lat, err := strconv.ParseFloat(c.PostForm("check_in_lat"), 64)
	if err != nil {
		return SubmissionInput{}, nil, nil, apperror.InvalidField("Check In Lat")
	}
	lng, err := strconv.ParseFloat(c.PostForm("check_in_lng"), 64)
	if err != nil {
		return SubmissionInput{}, nil, nil, apperror.InvalidField("Check In Lng")
	}

	in := SubmissionInput{
		Lat:            lat,
		Lng:            lng,
		Address:        optionalForm(c, "check_in_address"),
		Bssid:          optionalForm(c, "bssid"),
		CellID:         optionalForm(c, "cell_id"),
		SubmissionType: c.PostForm("submission_type"),
	}

	switch strings.ToLower(c.PostForm("is_offline_submission")) {
	case "true", "1":
		in.IsOffline = true
	case "", "false", "0":
		in.IsOffline = false
	default:
		return SubmissionInput{}, nil, nil, apperror.InvalidField("Is Offline Submission")
	}

	if raw := c.PostForm("offline_timestamp"); raw != "" {
		ts, err := ParseClientTimestamp(raw)
		if err != nil {
			return SubmissionInput{}, nil, nil, err
		}
		in.OfflineTimestamp = &ts
	}

	uploads := make(map[string]photo.Upload)
	var closers []func()
	for slot, field := range map[string]string{
		photo.SlotCheckIn:  "check_in_photo",
		photo.SlotCheckOut: "check_out_photo",
	} {
		fh, err := c.FormFile(field)
		if err != nil {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return SubmissionInput{}, nil, closers, apperror.InvalidField(field)
		}
		closers = append(closers, func() { f.Close() })
		uploads[slot] = photo.Upload{
			Name:     fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Content:  f,
		}
	}

	return in, uploads, closers, nil
}

func optionalForm(c *gin.Context, field string) *string {
	if v := c.PostForm(field); v != "" {
		return &v
	}
	return nil
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// Non-admin hanya boleh melihat record miliknya sendiri.
	if c.GetString("role") != subject.RoleAdmin && resp.SubjectID != c.GetInt64("subject_id") {
		writeServiceError(c, apperror.ErrForbidden)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	subjectID := c.GetInt64("subject_id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	dr, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.History(c.Request.Context(), subjectID, limit, dr)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Offline(c *gin.Context) {
	subjectID := c.GetInt64("subject_id")

	resp, err := h.service.Offline(c.Request.Context(), subjectID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	h.review(c, StatusApproved)
}

func (h *Handler) Reject(c *gin.Context) {
	h.review(c, StatusRejected)
}

func (h *Handler) review(c *gin.Context, decision string) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var req ReviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
			return
		}
	}

	resp, err := h.service.Review(c.Request.Context(), id, decision, req.AdminNotes, c.GetInt64("subject_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, attendanceerrors.ErrAttendanceNotFound
	}
	return id, nil
}

// parseDateRange menerima tanggal YYYY-MM-DD; batas akhir dibuat inklusif
// sampai detik terakhir hari tersebut.
func parseDateRange(startRaw, endRaw string) (*DateRange, error) {
	if startRaw == "" && endRaw == "" {
		return nil, nil
	}
	if startRaw == "" || endRaw == "" {
		return nil, apperror.InvalidField("Date Range")
	}

	start, err := time.Parse("2006-01-02", startRaw)
	if err != nil {
		return nil, apperror.InvalidField("Start Date")
	}
	end, err := time.Parse("2006-01-02", endRaw)
	if err != nil {
		return nil, apperror.InvalidField("End Date")
	}
	if start.After(end) {
		return nil, apperror.InvalidField("Date Range")
	}

	return &DateRange{
		Start: start,
		End:   end.Add(24*time.Hour - time.Second),
	}, nil
}
