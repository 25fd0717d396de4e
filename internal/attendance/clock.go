package attendance

import (
	"time"

	attendanceerrors "go-presensi/internal/attendance/errors"
)

// DefaultSkewTolerance adalah toleransi selisih jam client terhadap jam
// server untuk submission offline. Jam HP di lapangan sering melenceng
// beberapa menit; lebih dari ini dianggap klaim masa depan.
const DefaultSkewTolerance = 5 * time.Minute

// resolveEventTime menentukan timestamp kanonik sebuah submission.
//
// Submission online (atau tanpa offline timestamp) memakai waktu terima
// server. Submission offline memakai waktu kejadian yang diklaim client,
// selama tidak melewati waktu terima server di luar toleransi skew.
func resolveEventTime(isOffline bool, offlineTS *time.Time, receivedAt time.Time, skew time.Duration) (time.Time, error) {
	if !isOffline || offlineTS == nil {
		return receivedAt, nil
	}

	if offlineTS.IsZero() {
		return time.Time{}, attendanceerrors.ErrInvalidTimestamp
	}
	if offlineTS.After(receivedAt.Add(skew)) {
		return time.Time{}, attendanceerrors.ErrInvalidTimestamp
	}

	return *offlineTS, nil
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
