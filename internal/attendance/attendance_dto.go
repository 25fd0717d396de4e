package attendance

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	attendanceerrors "go-presensi/internal/attendance/errors"
	"go-presensi/internal/shared/apperror"
	"go-presensi/internal/subject"
)

// FlexFloat menerima angka JSON maupun string angka ("103.8").
// Client mobile lama mengirim koordinat sebagai string di form data.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return apperror.InvalidField("coordinate")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return apperror.InvalidField("coordinate")
	}
	*f = FlexFloat(v)
	return nil
}

// FlexBool menerima boolean JSON maupun string ("true"/"false"/"1"/"0").
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	switch strings.ToLower(s) {
	case "true", "1":
		*b = true
	case "false", "0", "", "null":
		*b = false
	default:
		return apperror.InvalidField("is_offline_submission")
	}
	return nil
}

// SubmissionRequest adalah bentuk JSON mentah dari client; semua koersi
// tipe longgar diselesaikan di ToInput sebelum menyentuh service.
type SubmissionRequest struct {
	CheckInLat          *FlexFloat `json:"check_in_lat"`
	CheckInLng          *FlexFloat `json:"check_in_lng"`
	CheckInAddress      *string    `json:"check_in_address"`
	Bssid               *string    `json:"bssid"`
	CellID              *string    `json:"cell_id"`
	SubmissionType      string     `json:"submission_type"`
	IsOfflineSubmission FlexBool   `json:"is_offline_submission"`
	OfflineTimestamp    *string    `json:"offline_timestamp"`
}

// SubmissionInput adalah input yang sudah bertipe kuat untuk service.
type SubmissionInput struct {
	Lat              float64
	Lng              float64
	Address          *string
	Bssid            *string
	CellID           *string
	SubmissionType   string
	IsOffline        bool
	OfflineTimestamp *time.Time
}

func (r SubmissionRequest) ToInput() (SubmissionInput, error) {
	if r.CheckInLat == nil {
		return SubmissionInput{}, apperror.RequiredField("Check In Lat")
	}
	if r.CheckInLng == nil {
		return SubmissionInput{}, apperror.RequiredField("Check In Lng")
	}

	in := SubmissionInput{
		Lat:            float64(*r.CheckInLat),
		Lng:            float64(*r.CheckInLng),
		Address:        r.CheckInAddress,
		Bssid:          r.Bssid,
		CellID:         r.CellID,
		SubmissionType: r.SubmissionType,
		IsOffline:      bool(r.IsOfflineSubmission),
	}

	if r.OfflineTimestamp != nil && *r.OfflineTimestamp != "" {
		ts, err := ParseClientTimestamp(*r.OfflineTimestamp)
		if err != nil {
			return SubmissionInput{}, err
		}
		in.OfflineTimestamp = &ts
	}

	return in, nil
}

// ParseClientTimestamp menerima RFC3339 atau varian tanpa offset yang
// dikirim client lama; selain itu ditolak sebagai InvalidTimestamp.
func ParseClientTimestamp(v string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, attendanceerrors.ErrInvalidTimestamp
}

type ReviewRequest struct {
	AdminNotes *string `json:"admin_notes"`
}

type PhotoResponse struct {
	ID        int64  `json:"id"`
	PhotoType string `json:"photo_type"`
	FileName  string `json:"file_name"`
	FileSize  int64  `json:"file_size"`
	MimeType  string `json:"mime_type"`
	CreatedAt string `json:"created_at"`
}

type AttendanceResponse struct {
	ID                  int64            `json:"id"`
	SubjectID           int64            `json:"subject_id"`
	Subject             *subject.Summary `json:"subject,omitempty"`
	CheckInTime         string           `json:"check_in_time"`
	CheckInLat          float64          `json:"check_in_lat"`
	CheckInLng          float64          `json:"check_in_lng"`
	CheckInAddress      *string          `json:"check_in_address,omitempty"`
	Bssid               *string          `json:"bssid,omitempty"`
	CellID              *string          `json:"cell_id,omitempty"`
	CheckOutTime        *string          `json:"check_out_time,omitempty"`
	CheckOutLat         *float64         `json:"check_out_lat,omitempty"`
	CheckOutLng         *float64         `json:"check_out_lng,omitempty"`
	CheckOutAddress     *string          `json:"check_out_address,omitempty"`
	Status              string           `json:"status"`
	AdminNotes          *string          `json:"admin_notes,omitempty"`
	SubmissionType      string           `json:"submission_type"`
	IsOfflineSubmission bool             `json:"is_offline_submission"`
	OfflineTimestamp    *string          `json:"offline_timestamp,omitempty"`
	CreatedAt           string           `json:"created_at"`
	Photos              []PhotoResponse  `json:"photos"`
}

// SlotFailure menyebut slot foto mana yang gagal beserta alasannya;
// record presensinya sendiri tetap tersimpan.
type SlotFailure struct {
	Slot   string `json:"slot"`
	Reason string `json:"reason"`
}

type SubmissionResponse struct {
	Attendance    AttendanceResponse `json:"attendance"`
	AttachedSlots []string           `json:"attached_slots"`
	FailedSlots   []SlotFailure      `json:"failed_slots,omitempty"`
}

// MarshalJSON untuk FlexFloat agar response tetap angka murni.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}
