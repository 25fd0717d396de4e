package app

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"go-presensi/internal/attendance"
	"go-presensi/internal/auth"
	"go-presensi/internal/messaging/kafka"
	"go-presensi/internal/middleware"
	"go-presensi/internal/office"
	"go-presensi/internal/photo"
	"go-presensi/internal/rbac"
	"go-presensi/internal/rbac/infra"
	"go-presensi/internal/report"
	"go-presensi/internal/subject"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	subjectRepo := subject.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	photoRepo := photo.NewRepository(gormDB)
	officeRepo := office.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(
		filepath.Join("internal", "rbac", "infra", "model.conf"),
		filepath.Join("internal", "rbac", "infra", "policy.csv"),
	)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	uploadDir := os.Getenv("UPLOAD_PATH")
	if uploadDir == "" {
		uploadDir = "uploads/attendance"
	}
	photoStore := photo.NewStore(photoRepo, uploadDir)

	skew := attendance.DefaultSkewTolerance
	if raw := os.Getenv("OFFLINE_SKEW_TOLERANCE"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			skew = d
		}
	}

	authService := auth.NewService(subjectRepo)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, photoStore, outboxRepo, skew)
	officeService := office.NewService(db, officeRepo)
	reportService := report.NewService(attendanceRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb)
	officeHandler := office.NewHandler(officeService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb)
		office.RegisterRoutes(api, officeHandler, rbacService)
		report.RegisterRoutes(api, reportHandler, rbacService)
	}

	return nil
}
