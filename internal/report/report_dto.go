package report

import "go-presensi/internal/attendance"

// RangeSummary adalah agregat ringkas di atas baris-baris window.
type RangeSummary struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Offline  int `json:"offline"`
}

type RangeReport struct {
	StartDate string                          `json:"start_date"`
	EndDate   string                          `json:"end_date"`
	Summary   RangeSummary                    `json:"summary"`
	Rows      []attendance.AttendanceResponse `json:"rows"`
}

type PendingReport struct {
	Total int                             `json:"total"`
	Rows  []attendance.AttendanceResponse `json:"rows"`
}
