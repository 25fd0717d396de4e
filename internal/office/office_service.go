package office

import (
	"context"
	"database/sql"
	"errors"

	officeerrors "go-presensi/internal/office/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=office_service.go -destination=mock/office_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateRequest) (Response, error)
	GetByID(ctx context.Context, id int64) (Response, error)
	List(ctx context.Context) ([]Response, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (Response, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("office.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("office.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *service) Create(ctx context.Context, req CreateRequest) (Response, error) {
	if !validCoordinates(*req.Latitude, *req.Longitude) {
		return Response{}, officeerrors.ErrInvalidCoordinates
	}

	o := &Office{
		Name:        req.Name,
		Description: req.Description,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Address:     req.Address,
		Status:      StatusActive,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Response{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, o); err != nil {
		if isUniqueViolation(err) {
			return Response{}, officeerrors.ErrOfficeNameTaken
		}
		s.logger.Error("office create failed", zap.Error(err))
		return Response{}, err
	}

	if err := tx.Commit(); err != nil {
		return Response{}, err
	}

	s.logger.Info("office created", zap.Int64("office_id", o.ID), zap.String("name", o.Name))
	return toResponse(*o), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (Response, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Response{}, officeerrors.ErrOfficeNotFound
		}
		return Response{}, err
	}
	return toResponse(*o), nil
}

func (s *service) List(ctx context.Context) ([]Response, error) {
	offices, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Response, 0, len(offices))
	for _, o := range offices {
		out = append(out, toResponse(o))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (Response, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Response{}, officeerrors.ErrOfficeNotFound
		}
		return Response{}, err
	}

	if req.Name != nil {
		o.Name = *req.Name
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.Latitude != nil {
		o.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		o.Longitude = *req.Longitude
	}
	if !validCoordinates(o.Latitude, o.Longitude) {
		return Response{}, officeerrors.ErrInvalidCoordinates
	}
	if req.Address != nil {
		o.Address = *req.Address
	}
	if req.Status != nil {
		o.Status = *req.Status
	}

	if err := s.repo.Update(ctx, o); err != nil {
		if isUniqueViolation(err) {
			return Response{}, officeerrors.ErrOfficeNameTaken
		}
		s.logger.Error("office update failed", zap.Int64("office_id", id), zap.Error(err))
		return Response{}, err
	}

	return toResponse(*o), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return officeerrors.ErrOfficeNotFound
		}
		return err
	}
	s.logger.Info("office deleted", zap.Int64("office_id", id))
	return nil
}
