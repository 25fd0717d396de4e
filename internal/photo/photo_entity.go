package photo

import (
	"time"

	"gorm.io/gorm"
)

// AttendancePhoto adalah bukti foto milik satu record presensi.
// Soft delete hanya berlaku di level foto; file fisiknya tidak ikut dihapus.
type AttendancePhoto struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement"`
	AttendanceID int64          `gorm:"column:attendance_id;not null;index:idx_attendance_photos_attendance"`
	PhotoType    string         `gorm:"column:photo_type;type:varchar(20);not null"`
	FileName     string         `gorm:"column:file_name;type:varchar(255);not null"`
	FilePath     string         `gorm:"column:file_path;type:varchar(500);not null"`
	FileSize     int64          `gorm:"column:file_size"`
	MimeType     string         `gorm:"column:mime_type;type:varchar(100)"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index:idx_attendance_photos_deleted_at"`
}

func (AttendancePhoto) TableName() string {
	return "attendance_photos"
}

const (
	SlotCheckIn  = "check_in"
	SlotCheckOut = "check_out"
)

func ValidSlot(slot string) bool {
	return slot == SlotCheckIn || slot == SlotCheckOut
}
