package upload

import (
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/auth"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	group := r.Group("/upload")
	group.Use(middleware.AuthMiddleware())
	{
		// Upload dibatasi per user dan dilindungi idempotency key
		// supaya double-submit form tidak mengimpor dua kali
		group.POST("",
			middleware.RoleMiddleware(auth.RoleHRAdmin, auth.RoleHRStaff),
			middleware.RateLimitByUser(rate.Limit(0.2), 3),
			middleware.Idempotency(rdb),
			handler.Upload,
		)
		group.GET("/files", handler.ListUploads)
		group.GET("/error-files/:filename", handler.ErrorFile)
	}
}
