package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-presensi/internal/auth/errors"
	"go-presensi/internal/subject"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultTokenTTL = 24 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Me(ctx context.Context, subjectID int64) (subject.Summary, error)
}

type service struct {
	subjects subject.Repository
	logger   *zap.Logger
}

func NewService(subjects subject.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{subjects: subjects, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	sub, err := s.subjects.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(sub.Password), []byte(req.Password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("username", req.Username))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if !sub.IsActive {
		return LoginResponse{}, autherrors.ErrAccountInactive
	}

	expiresAt := time.Now().Add(tokenTTL())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"subject_id": sub.ID,
		"username":   sub.Username,
		"role":       sub.Role,
		"exp":        expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		s.logger.Error("login token signing failed", zap.Error(err))
		return LoginResponse{}, err
	}

	s.logger.Info("login success",
		zap.Int64("subject_id", sub.ID),
		zap.String("role", sub.Role),
	)

	return LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		Subject:   subject.ToSummary(*sub),
	}, nil
}

func (s *service) Me(ctx context.Context, subjectID int64) (subject.Summary, error) {
	sub, err := s.subjects.FindByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return subject.Summary{}, autherrors.ErrInvalidCredentials
		}
		return subject.Summary{}, err
	}
	return subject.ToSummary(*sub), nil
}

func tokenTTL() time.Duration {
	if raw := os.Getenv("JWT_EXPIRES_IN"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return defaultTokenTTL
}
