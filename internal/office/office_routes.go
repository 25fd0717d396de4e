package office

import (
	"go-presensi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	group := r.Group("/offices")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("", middleware.RBACAuthorize(rbacService, "office", "read"), h.List)
		group.GET("/:id", middleware.RBACAuthorize(rbacService, "office", "read"), h.GetByID)
		group.POST("", middleware.RBACAuthorize(rbacService, "office", "write"), h.Create)
		group.PUT("/:id", middleware.RBACAuthorize(rbacService, "office", "write"), h.Update)
		group.DELETE("/:id", middleware.RBACAuthorize(rbacService, "office", "write"), h.Delete)
	}
}
