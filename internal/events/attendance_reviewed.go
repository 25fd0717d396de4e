package events

import "time"

const AttendanceReviewedTopic = "attendance.review.lifecycle.v1"

type AttendanceReviewedEvent struct {
	EventType    string    `json:"event_type"`
	AttendanceID int64     `json:"attendance_id"`
	SubjectID    int64     `json:"subject_id"`
	Decision     string    `json:"decision"`
	AdminNotes   *string   `json:"admin_notes,omitempty"`
	ReviewedBy   int64     `json:"reviewed_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
