package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-presensi/internal/attendance"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultWindow dipakai kalau admin tidak mengirim start/end.
	DefaultWindow = 30 * 24 * time.Hour
	cacheTTL      = 60 * time.Second
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Range(ctx context.Context, start, end *time.Time) (RangeReport, error)
	Pending(ctx context.Context) (PendingReport, error)
	SubjectHistory(ctx context.Context, subjectID int64, limit int, dr *attendance.DateRange) ([]attendance.AttendanceResponse, error)
}

type service struct {
	repo   attendance.Repository
	rdb    *redis.Client
	group  singleflight.Group
	logger *zap.Logger
}

// NewService menerima rdb nil; tanpa redis, report tetap jalan tanpa cache.
func NewService(repo attendance.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, rdb: rdb, logger: l}
}

// resolveWindow: end default sekarang, start default 30 hari ke belakang.
func resolveWindow(start, end *time.Time) (time.Time, time.Time) {
	e := time.Now().UTC()
	if end != nil {
		e = end.UTC()
	}
	s := e.Add(-DefaultWindow)
	if start != nil {
		s = start.UTC()
	}
	return s, e
}

func (s *service) Range(ctx context.Context, start, end *time.Time) (RangeReport, error) {
	from, to := resolveWindow(start, end)
	key := fmt.Sprintf("report:attendances:%d:%d", from.Unix(), to.Unix())

	if cached, ok := s.readCache(ctx, key); ok {
		return cached, nil
	}

	// singleflight mencegah cache stampede saat beberapa admin membuka
	// dashboard bersamaan dengan window yang sama.
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		rows, err := s.repo.FindAllByDateRange(ctx, from, to)
		if err != nil {
			return RangeReport{}, err
		}
		rep := buildRangeReport(from, to, rows)
		s.writeCache(ctx, key, rep)
		return rep, nil
	})
	if err != nil {
		return RangeReport{}, err
	}
	return v.(RangeReport), nil
}

func (s *service) Pending(ctx context.Context) (PendingReport, error) {
	rows, err := s.repo.FindAllPending(ctx)
	if err != nil {
		return PendingReport{}, err
	}
	return PendingReport{
		Total: len(rows),
		Rows:  attendance.ToListResponse(rows),
	}, nil
}

func (s *service) SubjectHistory(ctx context.Context, subjectID int64, limit int, dr *attendance.DateRange) ([]attendance.AttendanceResponse, error) {
	rows, err := s.repo.FindAllBySubject(ctx, subjectID, limit, dr)
	if err != nil {
		return nil, err
	}
	return attendance.ToListResponse(rows), nil
}

func buildRangeReport(from, to time.Time, rows []attendance.Attendance) RangeReport {
	rep := RangeReport{
		StartDate: from.Format(time.RFC3339),
		EndDate:   to.Format(time.RFC3339),
		Rows:      attendance.ToListResponse(rows),
	}
	rep.Summary.Total = len(rows)
	for _, r := range rows {
		switch r.Status {
		case attendance.StatusPending:
			rep.Summary.Pending++
		case attendance.StatusApproved:
			rep.Summary.Approved++
		case attendance.StatusRejected:
			rep.Summary.Rejected++
		}
		if r.IsOfflineSubmission {
			rep.Summary.Offline++
		}
	}
	return rep
}

func (s *service) readCache(ctx context.Context, key string) (RangeReport, bool) {
	if s.rdb == nil {
		return RangeReport{}, false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		}
		return RangeReport{}, false
	}
	var rep RangeReport
	if err := json.Unmarshal(raw, &rep); err != nil {
		return RangeReport{}, false
	}
	return rep, true
}

func (s *service) writeCache(ctx context.Context, key string, rep RangeReport) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(rep)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
