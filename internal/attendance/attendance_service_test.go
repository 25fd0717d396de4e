package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	attendanceerrors "go-presensi/internal/attendance/errors"
	"go-presensi/internal/events"
	"go-presensi/internal/messaging/kafka"
	"go-presensi/internal/photo"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn                func(ctx context.Context, a *Attendance) error
	findByIDFn              func(ctx context.Context, id int64) (*Attendance, error)
	findAllBySubjectFn      func(ctx context.Context, subjectID int64, limit int, dr *DateRange) ([]Attendance, error)
	findAllByDateRangeFn    func(ctx context.Context, start, end time.Time) ([]Attendance, error)
	findAllPendingFn        func(ctx context.Context) ([]Attendance, error)
	findAllOfflineFn        func(ctx context.Context, subjectID int64) ([]Attendance, error)
	updateStatusIfPendingFn func(ctx context.Context, id int64, status string, adminNotes *string) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error {
	return f.createFn(ctx, a)
}
func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*Attendance, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAllBySubject(ctx context.Context, subjectID int64, limit int, dr *DateRange) ([]Attendance, error) {
	return f.findAllBySubjectFn(ctx, subjectID, limit, dr)
}
func (f *fakeRepo) FindAllByDateRange(ctx context.Context, start, end time.Time) ([]Attendance, error) {
	return f.findAllByDateRangeFn(ctx, start, end)
}
func (f *fakeRepo) FindAllPending(ctx context.Context) ([]Attendance, error) {
	return f.findAllPendingFn(ctx)
}
func (f *fakeRepo) FindAllOffline(ctx context.Context, subjectID int64) ([]Attendance, error) {
	return f.findAllOfflineFn(ctx, subjectID)
}
func (f *fakeRepo) UpdateStatusIfPending(ctx context.Context, id int64, status string, adminNotes *string) (int64, error) {
	return f.updateStatusIfPendingFn(ctx, id, status, adminNotes)
}

type fakeStore struct {
	attachFn func(ctx context.Context, attendanceID int64, slot string, up photo.Upload) (*photo.AttendancePhoto, error)
}

func (f *fakeStore) Attach(ctx context.Context, attendanceID int64, slot string, up photo.Upload) (*photo.AttendancePhoto, error) {
	return f.attachFn(ctx, attendanceID, slot, up)
}
func (f *fakeStore) ListActive(ctx context.Context, attendanceID int64) ([]photo.AttendancePhoto, error) {
	return nil, nil
}
func (f *fakeStore) SoftDelete(ctx context.Context, id int64) error { return nil }

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, e kafka.OutboxEvent) error {
	f.created = append(f.created, e)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error              { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error    { return nil }

func validInput() SubmissionInput {
	return SubmissionInput{Lat: -6.2, Lng: 106.8}
}

func TestService_Submit_Online(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Attendance
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		a.ID = 42
		saved = *a
		return nil
	}
	repo.findByIDFn = func(ctx context.Context, id int64) (*Attendance, error) {
		assert.Equal(t, int64(42), id)
		return &saved, nil
	}

	svc := NewService(db, repo, &fakeStore{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	before := time.Now().UTC()
	resp, err := svc.Submit(context.Background(), 7, validInput(), nil)
	after := time.Now().UTC()

	assert.NoError(t, err)
	assert.Equal(t, int64(42), resp.Attendance.ID)
	assert.Equal(t, StatusPending, saved.Status)
	assert.Equal(t, TypeCheckIn, saved.SubmissionType)
	assert.False(t, saved.CheckInTime.Before(before))
	assert.False(t, saved.CheckInTime.After(after))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Submit_OfflineUsesClaimedTimestamp(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	claimed := time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Second)

	var saved Attendance
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		a.ID = 1
		saved = *a
		return nil
	}
	repo.findByIDFn = func(ctx context.Context, id int64) (*Attendance, error) { return &saved, nil }

	svc := NewService(db, repo, &fakeStore{})

	in := validInput()
	in.IsOffline = true
	in.OfflineTimestamp = &claimed

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Submit(context.Background(), 7, in, nil)

	assert.NoError(t, err)
	assert.Equal(t, claimed, saved.CheckInTime)
	assert.True(t, saved.IsOfflineSubmission)
	assert.NotNil(t, resp.Attendance.OfflineTimestamp)
}

func TestService_Submit_InvalidCoordinates_NoWrite(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		t.Fatal("create should not be reached")
		return nil
	}

	svc := NewService(db, repo, &fakeStore{})

	in := validInput()
	in.Lat = 91

	_, err := svc.Submit(context.Background(), 7, in, nil)
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidCoordinates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Submit_FutureOfflineTimestamp_NoWrite(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	future := time.Now().UTC().Add(time.Hour)

	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		t.Fatal("create should not be reached")
		return nil
	}

	svc := NewService(db, repo, &fakeStore{})

	in := validInput()
	in.IsOffline = true
	in.OfflineTimestamp = &future

	_, err := svc.Submit(context.Background(), 7, in, nil)
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidTimestamp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Submit_PhotoFailureKeepsRecord(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Attendance
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		a.ID = 9
		saved = *a
		return nil
	}
	repo.findByIDFn = func(ctx context.Context, id int64) (*Attendance, error) { return &saved, nil }

	store := &fakeStore{
		attachFn: func(ctx context.Context, attendanceID int64, slot string, up photo.Upload) (*photo.AttendancePhoto, error) {
			if slot == photo.SlotCheckOut {
				return nil, assertableErr("disk full")
			}
			return &photo.AttendancePhoto{ID: 1, AttendanceID: attendanceID, PhotoType: slot}, nil
		},
	}

	svc := NewService(db, repo, store)

	uploads := map[string]photo.Upload{
		photo.SlotCheckIn:  {Name: "in.jpg"},
		photo.SlotCheckOut: {Name: "out.jpg"},
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Submit(context.Background(), 7, validInput(), uploads)

	assert.NoError(t, err)
	assert.Equal(t, []string{photo.SlotCheckIn}, resp.AttachedSlots)
	assert.Len(t, resp.FailedSlots, 1)
	assert.Equal(t, photo.SlotCheckOut, resp.FailedSlots[0].Slot)
	assert.Equal(t, int64(9), resp.Attendance.ID)
}

func TestService_Review_Approve(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	notes := "lokasi sesuai"
	row := &Attendance{ID: 5, SubjectID: 7, Status: StatusApproved, AdminNotes: &notes}

	repo := &fakeRepo{}
	repo.updateStatusIfPendingFn = func(ctx context.Context, id int64, status string, adminNotes *string) (int64, error) {
		assert.Equal(t, int64(5), id)
		assert.Equal(t, StatusApproved, status)
		assert.Equal(t, &notes, adminNotes)
		return 1, nil
	}
	repo.findByIDFn = func(ctx context.Context, id int64) (*Attendance, error) { return row, nil }

	svc := NewService(db, repo, &fakeStore{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Review(context.Background(), 5, StatusApproved, &notes, 99)

	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Review_AlreadyReviewed(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.updateStatusIfPendingFn = func(ctx context.Context, id int64, status string, adminNotes *string) (int64, error) {
		return 0, nil
	}
	repo.findByIDFn = func(ctx context.Context, id int64) (*Attendance, error) {
		return &Attendance{ID: id, Status: StatusRejected}, nil
	}

	svc := NewService(db, repo, &fakeStore{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Review(context.Background(), 5, StatusApproved, nil, 99)

	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyReviewed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Review_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.updateStatusIfPendingFn = func(ctx context.Context, id int64, status string, adminNotes *string) (int64, error) {
		return 0, nil
	}
	repo.findByIDFn = func(ctx context.Context, id int64) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeStore{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Review(context.Background(), 404, StatusRejected, nil, 99)

	assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)
}

func TestService_Review_InvalidDecision(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeStore{})

	_, err := svc.Review(context.Background(), 5, "maybe", nil, 99)
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDecision)
}

func TestService_Review_EnqueuesOutboxEvent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	row := &Attendance{ID: 5, SubjectID: 7, Status: StatusApproved}

	repo := &fakeRepo{}
	repo.updateStatusIfPendingFn = func(ctx context.Context, id int64, status string, adminNotes *string) (int64, error) {
		return 1, nil
	}
	repo.findByIDFn = func(ctx context.Context, id int64) (*Attendance, error) { return row, nil }

	outbox := &fakeOutbox{}
	svc := NewServiceWithOutbox(db, repo, &fakeStore{}, outbox, 0)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Review(context.Background(), 5, StatusApproved, nil, 99)

	assert.NoError(t, err)
	assert.Len(t, outbox.created, 1)
	assert.Equal(t, events.AttendanceReviewedTopic, outbox.created[0].Topic)
	assert.Equal(t, "attendance", outbox.created[0].AggregateType)

	var payload events.AttendanceReviewedEvent
	assert.NoError(t, json.Unmarshal(outbox.created[0].Payload, &payload))
	assert.Equal(t, int64(5), payload.AttendanceID)
	assert.Equal(t, StatusApproved, payload.Decision)
	assert.Equal(t, int64(99), payload.ReviewedBy)
}

type assertableErr string

func (e assertableErr) Error() string { return string(e) }
