package attendance

import (
	"go-presensi/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		// Retry storm dari mobile app offline-sync dibatasi per user.
		submitHandlers := []gin.HandlerFunc{
			middleware.RateLimitBySubject(rate.Limit(2), 5),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
		}
		if rdb != nil {
			submitHandlers = append(submitHandlers, middleware.Idempotency(rdb))
		}
		attendances.POST("", append(submitHandlers, h.Submit)...)

		attendances.GET("/history", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.History)
		attendances.GET("/offline", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.Offline)
		attendances.GET("/:id", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetByID)
		attendances.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "attendance", "review"), h.Approve)
		attendances.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "attendance", "review"), h.Reject)
	}
}
