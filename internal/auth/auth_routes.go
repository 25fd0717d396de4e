package auth

import (
	"go-presensi/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	group := r.Group("/auth")
	{
		// login dibatasi per IP untuk meredam brute force
		group.POST("/login", middleware.RateLimitByIP(rate.Limit(5), 10), h.Login)
		group.GET("/me", middleware.AuthMiddleware(), h.Me)
	}
}
