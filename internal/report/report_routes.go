package report

import (
	"go-presensi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	group := r.Group("/reports")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("/attendances", middleware.RBACAuthorize(rbacService, "report", "read"), h.Range)
		group.GET("/attendances/pending", middleware.RBACAuthorize(rbacService, "report", "read"), h.Pending)
		group.GET("/attendances/subjects/:subject_id", middleware.RBACAuthorize(rbacService, "report", "read"), h.SubjectHistory)
	}
}
