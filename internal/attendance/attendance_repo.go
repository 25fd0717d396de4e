package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// DateRange adalah batas inklusif untuk filter listing.
type DateRange struct {
	Start time.Time
	End   time.Time
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByID(ctx context.Context, id int64) (*Attendance, error)
	FindAllBySubject(ctx context.Context, subjectID int64, limit int, dr *DateRange) ([]Attendance, error)
	FindAllByDateRange(ctx context.Context, start, end time.Time) ([]Attendance, error)
	FindAllPending(ctx context.Context) ([]Attendance, error)
	FindAllOffline(ctx context.Context, subjectID int64) ([]Attendance, error)
	UpdateStatusIfPending(ctx context.Context, id int64, status string, adminNotes *string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit("Subject", "Photos").Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Photos").
		First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindAllBySubject mengurutkan berdasarkan waktu kejadian (check_in_time),
// bukan waktu baris dibuat, supaya submission offline tersusun di posisi
// kronologis yang benar.
func (r *repository) FindAllBySubject(ctx context.Context, subjectID int64, limit int, dr *DateRange) ([]Attendance, error) {
	q := r.db.WithContext(ctx).
		Preload("Photos").
		Where("subject_id = ?", subjectID)
	if dr != nil {
		q = q.Where("check_in_time >= ?", dr.Start).Where("check_in_time <= ?", dr.End)
	}
	var rows []Attendance
	err := q.Order("check_in_time DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// FindAllByDateRange adalah view audit: batas inklusif pada created_at
// (waktu terima server), bukan waktu kejadian.
func (r *repository) FindAllByDateRange(ctx context.Context, start, end time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Photos").
		Where("created_at >= ?", start).
		Where("created_at <= ?", end).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllPending(ctx context.Context) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Photos").
		Where("status = ?", StatusPending).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllOffline(ctx context.Context, subjectID int64) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("Photos").
		Where("subject_id = ?", subjectID).
		Where("is_offline_submission = ?", true).
		Order("offline_timestamp DESC").
		Find(&rows).Error
	return rows, err
}

// UpdateStatusIfPending adalah compare-and-swap: dua reviewer yang menekan
// tombol bersamaan hanya akan menghasilkan satu transisi.
func (r *repository) UpdateStatusIfPending(ctx context.Context, id int64, status string, adminNotes *string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"admin_notes": adminNotes,
			"updated_at":  time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}
