package photo

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *AttendancePhoto) error
	FindActiveByAttendance(ctx context.Context, attendanceID int64) ([]AttendancePhoto, error)
	HasActiveSlot(ctx context.Context, attendanceID int64, slot string) (bool, error)
	SoftDelete(ctx context.Context, id int64) error
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

func (r *repository) Create(ctx context.Context, p *AttendancePhoto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FindActiveByAttendance mengandalkan gorm.DeletedAt: baris soft-deleted
// otomatis tersaring dari query normal.
func (r *repository) FindActiveByAttendance(ctx context.Context, attendanceID int64) ([]AttendancePhoto, error) {
	var rows []AttendancePhoto
	err := r.db.WithContext(ctx).
		Where("attendance_id = ?", attendanceID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) HasActiveSlot(ctx context.Context, attendanceID int64, slot string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AttendancePhoto{}).
		Where("attendance_id = ?", attendanceID).
		Where("photo_type = ?", slot).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&AttendancePhoto{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
