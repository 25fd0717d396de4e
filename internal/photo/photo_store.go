package photo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	photoerrors "go-presensi/internal/photo/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Upload adalah isi file yang sudah dibaca boundary HTTP, lepas dari multipart.
type Upload struct {
	Name     string
	MimeType string
	Size     int64
	Content  io.Reader
}

//go:generate mockgen -source=photo_store.go -destination=mock/photo_store_mock.go -package=mock
type Store interface {
	Attach(ctx context.Context, attendanceID int64, slot string, up Upload) (*AttendancePhoto, error)
	ListActive(ctx context.Context, attendanceID int64) ([]AttendancePhoto, error)
	SoftDelete(ctx context.Context, id int64) error
}

type store struct {
	repo      Repository
	uploadDir string
	logger    *zap.Logger
}

func NewStore(repo Repository, uploadDir string, logger ...*zap.Logger) Store {
	l := zap.L().Named("photo.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("photo.store")
	}
	return &store{repo: repo, uploadDir: uploadDir, logger: l}
}

// Attach menulis file ke storage dulu, baru commit metadata.
// Gagal tulis file berarti tidak ada baris metadata; file yatim tanpa baris
// metadata dibiarkan untuk GC di luar core.
func (s *store) Attach(ctx context.Context, attendanceID int64, slot string, up Upload) (*AttendancePhoto, error) {
	if !ValidSlot(slot) {
		return nil, photoerrors.ErrInvalidSlot
	}

	filled, err := s.repo.HasActiveSlot(ctx, attendanceID, slot)
	if err != nil {
		return nil, err
	}
	if filled {
		return nil, duplicateSlotError(slot)
	}

	fileName := generateFileName(slot, up.Name)
	filePath := filepath.Join(s.uploadDir, fileName)

	if err := s.writeFile(filePath, up.Content); err != nil {
		s.logger.Error("photo file write failed",
			zap.Int64("attendance_id", attendanceID),
			zap.String("slot", slot),
			zap.Error(err),
		)
		return nil, photoerrors.ErrStorageWrite.WithDetails(map[string]any{"slot": slot})
	}

	row := &AttendancePhoto{
		AttendanceID: attendanceID,
		PhotoType:    slot,
		FileName:     fileName,
		FilePath:     filePath,
		FileSize:     up.Size,
		MimeType:     up.MimeType,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		// Slot race: dua attach bersamaan lolos pengecekan HasActiveSlot,
		// index unik parsial yang memutuskan pemenangnya.
		if isUniqueViolation(err) {
			return nil, duplicateSlotError(slot)
		}
		s.logger.Error("photo metadata insert failed",
			zap.Int64("attendance_id", attendanceID),
			zap.String("slot", slot),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("photo attached",
		zap.Int64("attendance_id", attendanceID),
		zap.Int64("photo_id", row.ID),
		zap.String("slot", slot),
	)
	return row, nil
}

func (s *store) ListActive(ctx context.Context, attendanceID int64) ([]AttendancePhoto, error) {
	return s.repo.FindActiveByAttendance(ctx, attendanceID)
}

func (s *store) SoftDelete(ctx context.Context, id int64) error {
	err := s.repo.SoftDelete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return photoerrors.ErrPhotoNotFound
	}
	return err
}

func (s *store) writeFile(path string, content io.Reader) error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// generateFileName tidak bergantung pada nama asli: submission paralel boleh
// memakai nama file yang sama.
func generateFileName(slot, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s_%s_%d%s", slot, uuid.New().String(), time.Now().UnixMilli(), ext)
}

func duplicateSlotError(slot string) error {
	return photoerrors.ErrDuplicateSlot.WithDetails(map[string]any{"slot": slot})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}
