package subject

import (
	"time"
)

// Subject adalah identitas tunggal pemilik presensi (model user-centric).
// Skema employee lama sudah dilebur ke sini; employee_code dipertahankan
// untuk integrasi dengan sistem payroll eksternal.
type Subject struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string    `gorm:"column:username;type:varchar(50);not null;uniqueIndex:uq_subject_username"`
	Email        *string   `gorm:"column:email;type:varchar(100);uniqueIndex:uq_subject_email"`
	Name         *string   `gorm:"column:name;type:varchar(100)"`
	Password     string    `gorm:"column:password;type:varchar(255);not null"`
	Role         string    `gorm:"column:role;type:varchar(20);not null;default:user"`
	EmployeeCode *string   `gorm:"column:employee_code;type:varchar(50)"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Subject) TableName() string {
	return "subjects"
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
