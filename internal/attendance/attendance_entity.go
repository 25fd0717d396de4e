package attendance

import (
	"time"

	"go-presensi/internal/photo"
)

type Attendance struct {
	ID                  int64      `gorm:"column:id;primaryKey;autoIncrement"`
	SubjectID           int64      `gorm:"column:subject_id;not null;index:idx_attendances_subject"`
	CheckInTime         time.Time  `gorm:"column:check_in_time;type:timestamptz;not null;index:idx_attendances_subject_date"`
	CheckInLat          float64    `gorm:"column:check_in_lat;type:decimal(10,8);not null"`
	CheckInLng          float64    `gorm:"column:check_in_lng;type:decimal(11,8);not null"`
	CheckInAddress      *string    `gorm:"column:check_in_address;type:varchar(255)"`
	Bssid               *string    `gorm:"column:bssid;type:varchar(17)"`
	CellID              *string    `gorm:"column:cell_id;type:varchar(50)"`
	CheckOutTime        *time.Time `gorm:"column:check_out_time;type:timestamptz"`
	CheckOutLat         *float64   `gorm:"column:check_out_lat;type:decimal(10,8)"`
	CheckOutLng         *float64   `gorm:"column:check_out_lng;type:decimal(11,8)"`
	CheckOutAddress     *string    `gorm:"column:check_out_address;type:varchar(255)"`
	Status              string     `gorm:"column:status;type:varchar(20);not null;default:pending;index:idx_attendances_status_created"`
	AdminNotes          *string    `gorm:"column:admin_notes;type:text"`
	SubmissionType      string     `gorm:"column:submission_type;type:varchar(20);not null;default:check_in"`
	IsOfflineSubmission bool       `gorm:"column:is_offline_submission;not null;default:false;index:idx_attendances_offline"`
	OfflineTimestamp    *time.Time `gorm:"column:offline_timestamp;type:timestamptz"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Subject *SubjectRef             `gorm:"foreignKey:SubjectID;references:ID"`
	Photos  []photo.AttendancePhoto `gorm:"foreignKey:AttendanceID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// SubjectRef adalah proyeksi minimal pemilik record untuk join response.
type SubjectRef struct {
	ID           int64   `gorm:"primaryKey"`
	Username     string  `gorm:"column:username"`
	Name         *string `gorm:"column:name"`
	EmployeeCode *string `gorm:"column:employee_code"`
	Role         string  `gorm:"column:role"`
}

func (SubjectRef) TableName() string {
	return "subjects"
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeCheckIn    = "check_in"
	TypeCheckOut   = "check_out"
	TypeBreakStart = "break_start"
	TypeBreakEnd   = "break_end"
)

func ValidSubmissionType(t string) bool {
	switch t {
	case TypeCheckIn, TypeCheckOut, TypeBreakStart, TypeBreakEnd:
		return true
	default:
		return false
	}
}
