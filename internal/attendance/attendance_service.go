package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	attendanceerrors "go-presensi/internal/attendance/errors"
	"go-presensi/internal/events"
	"go-presensi/internal/messaging/kafka"
	"go-presensi/internal/photo"
	"go-presensi/internal/shared/contextutil"
	"go-presensi/internal/subject"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const defaultHistoryLimit = 30

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, subjectID int64, in SubmissionInput, uploads map[string]photo.Upload) (SubmissionResponse, error)
	GetByID(ctx context.Context, id int64) (AttendanceResponse, error)
	History(ctx context.Context, subjectID int64, limit int, dr *DateRange) ([]AttendanceResponse, error)
	Offline(ctx context.Context, subjectID int64) ([]AttendanceResponse, error)
	Review(ctx context.Context, id int64, decision string, adminNotes *string, reviewerID int64) (AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	photos photo.Store
	outbox kafka.OutboxRepository
	skew   time.Duration
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, photos photo.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, photos: photos, skew: DefaultSkewTolerance, logger: l}
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, photos photo.Store, outbox kafka.OutboxRepository, skew time.Duration, logger ...*zap.Logger) Service {
	s := NewService(db, repo, photos, logger...).(*service)
	s.outbox = outbox
	if skew > 0 {
		s.skew = skew
	}
	return s
}

// Submit memvalidasi input, menentukan timestamp kanonik, lalu menyimpan
// record dalam status pending. Foto bukti diproses setelah record commit:
// gagal foto tidak pernah membatalkan record presensinya.
func (s *service) Submit(ctx context.Context, subjectID int64, in SubmissionInput, uploads map[string]photo.Upload) (SubmissionResponse, error) {
	s.logger.Debug("submit attendance requested",
		zap.Int64("subject_id", subjectID),
		zap.String("submission_type", in.SubmissionType),
		zap.Bool("is_offline", in.IsOffline),
	)

	if in.SubmissionType == "" {
		in.SubmissionType = TypeCheckIn
	}
	if !ValidSubmissionType(in.SubmissionType) {
		return SubmissionResponse{}, attendanceerrors.ErrInvalidSubmissionType
	}
	if !validCoordinates(in.Lat, in.Lng) {
		return SubmissionResponse{}, attendanceerrors.ErrInvalidCoordinates.WithDetails(map[string]any{
			"check_in_lat": in.Lat,
			"check_in_lng": in.Lng,
		})
	}

	receivedAt := time.Now().UTC()
	eventTime, err := resolveEventTime(in.IsOffline, in.OfflineTimestamp, receivedAt, s.skew)
	if err != nil {
		s.logger.Warn("submit attendance timestamp rejected",
			zap.Int64("subject_id", subjectID),
			zap.Timep("offline_timestamp", in.OfflineTimestamp),
			zap.Time("received_at", receivedAt),
		)
		return SubmissionResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit attendance begin tx failed", zap.Error(err))
		return SubmissionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row := &Attendance{
		SubjectID:           subjectID,
		CheckInTime:         eventTime,
		CheckInLat:          in.Lat,
		CheckInLng:          in.Lng,
		CheckInAddress:      in.Address,
		Bssid:               in.Bssid,
		CellID:              in.CellID,
		Status:              StatusPending,
		SubmissionType:      in.SubmissionType,
		IsOfflineSubmission: in.IsOffline,
		OfflineTimestamp:    in.OfflineTimestamp,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("submit attendance persist failed", zap.Error(err))
		return SubmissionResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("submit attendance commit failed", zap.Error(err))
		return SubmissionResponse{}, err
	}

	attached, failed := s.attachUploads(ctx, row.ID, uploads)

	resp := SubmissionResponse{
		AttachedSlots: attached,
		FailedSlots:   failed,
	}

	full, err := s.repo.FindByID(ctx, row.ID)
	if err != nil {
		// Record sudah durable; response dibangun dari row in-memory.
		s.logger.Warn("submit attendance reload failed", zap.Int64("attendance_id", row.ID), zap.Error(err))
		resp.Attendance = ToResponse(*row)
		return resp, nil
	}
	resp.Attendance = ToResponse(*full)

	s.logger.Info("submit attendance success",
		zap.Int64("attendance_id", row.ID),
		zap.Int64("subject_id", subjectID),
		zap.Bool("is_offline", in.IsOffline),
		zap.Int("photos_attached", len(attached)),
	)
	return resp, nil
}

// attachUploads menulis maksimal dua slot bukti secara paralel dan menunggu
// keduanya selesai sebelum response gabungan dikembalikan.
func (s *service) attachUploads(ctx context.Context, attendanceID int64, uploads map[string]photo.Upload) ([]string, []SlotFailure) {
	if len(uploads) == 0 {
		return nil, nil
	}

	var (
		mu       sync.Mutex
		attached []string
		failed   []SlotFailure
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, slot := range []string{photo.SlotCheckIn, photo.SlotCheckOut} {
		up, ok := uploads[slot]
		if !ok {
			continue
		}
		slot := slot
		g.Go(func() error {
			_, err := s.photos.Attach(gctx, attendanceID, slot, up)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, SlotFailure{Slot: slot, Reason: err.Error()})
				return nil
			}
			attached = append(attached, slot)
			return nil
		})
	}
	_ = g.Wait()

	return attached, failed
}

func (s *service) GetByID(ctx context.Context, id int64) (AttendanceResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}
	return ToResponse(*row), nil
}

func (s *service) History(ctx context.Context, subjectID int64, limit int, dr *DateRange) ([]AttendanceResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := s.repo.FindAllBySubject(ctx, subjectID, limit, dr)
	if err != nil {
		return nil, err
	}
	return ToListResponse(rows), nil
}

func (s *service) Offline(ctx context.Context, subjectID int64) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAllOffline(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return ToListResponse(rows), nil
}

// Review menjalankan transisi satu arah pending -> approved/rejected.
// Transisinya conditional update atomik; record yang sudah terminal
// menghasilkan AlreadyReviewed, bukan overwrite diam-diam.
func (s *service) Review(ctx context.Context, id int64, decision string, adminNotes *string, reviewerID int64) (AttendanceResponse, error) {
	if decision != StatusApproved && decision != StatusRejected {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	affected, err := qtx.UpdateStatusIfPending(ctx, id, decision, adminNotes)
	if err != nil {
		s.logger.Error("review attendance update failed", zap.Int64("attendance_id", id), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if affected == 0 {
		if _, err := qtx.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
			}
			return AttendanceResponse{}, err
		}
		s.logger.Warn("review attendance already terminal",
			zap.Int64("attendance_id", id),
			zap.String("decision", decision),
		)
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyReviewed
	}

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, err
	}

	if s.outbox != nil {
		if err := s.enqueueReviewedEvent(ctx, tx, row, decision, adminNotes, reviewerID); err != nil {
			s.logger.Error("review attendance outbox enqueue failed",
				zap.Int64("attendance_id", id),
				zap.Error(err),
			)
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review attendance commit failed", zap.Int64("attendance_id", id), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("review attendance success",
		zap.Int64("attendance_id", id),
		zap.String("decision", decision),
		zap.Int64("reviewed_by", reviewerID),
	)
	return ToResponse(*row), nil
}

func (s *service) enqueueReviewedEvent(ctx context.Context, tx *sql.Tx, row *Attendance, decision string, adminNotes *string, reviewerID int64) error {
	payload, err := json.Marshal(events.AttendanceReviewedEvent{
		EventType:    "attendance.reviewed",
		AttendanceID: row.ID,
		SubjectID:    row.SubjectID,
		Decision:     decision,
		AdminNotes:   adminNotes,
		ReviewedBy:   reviewerID,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "attendance",
		AggregateID:   strconv.FormatInt(row.ID, 10),
		EventType:     "attendance.reviewed",
		Topic:         events.AttendanceReviewedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                  a.ID,
		SubjectID:           a.SubjectID,
		CheckInTime:         a.CheckInTime.Format(time.RFC3339),
		CheckInLat:          a.CheckInLat,
		CheckInLng:          a.CheckInLng,
		CheckInAddress:      a.CheckInAddress,
		Bssid:               a.Bssid,
		CellID:              a.CellID,
		CheckOutLat:         a.CheckOutLat,
		CheckOutLng:         a.CheckOutLng,
		CheckOutAddress:     a.CheckOutAddress,
		Status:              a.Status,
		AdminNotes:          a.AdminNotes,
		SubmissionType:      a.SubmissionType,
		IsOfflineSubmission: a.IsOfflineSubmission,
		CreatedAt:           a.CreatedAt.Format(time.RFC3339),
		Photos:              make([]PhotoResponse, 0, len(a.Photos)),
	}
	if a.CheckOutTime != nil {
		v := a.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	if a.OfflineTimestamp != nil {
		v := a.OfflineTimestamp.Format(time.RFC3339)
		resp.OfflineTimestamp = &v
	}
	if a.Subject != nil {
		resp.Subject = &subject.Summary{
			ID:           a.Subject.ID,
			Username:     a.Subject.Username,
			Name:         a.Subject.Name,
			EmployeeCode: a.Subject.EmployeeCode,
			Role:         a.Subject.Role,
		}
	}
	for _, p := range a.Photos {
		resp.Photos = append(resp.Photos, PhotoResponse{
			ID:        p.ID,
			PhotoType: p.PhotoType,
			FileName:  p.FileName,
			FileSize:  p.FileSize,
			MimeType:  p.MimeType,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}

func ToListResponse(rows []Attendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = ToResponse(r)
	}
	return resp
}
