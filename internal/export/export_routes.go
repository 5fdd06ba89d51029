package export

import (
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/export")
	group.Use(middleware.AuthMiddleware())
	{
		// Generate file itu mahal, batasi per user
		group.POST("/client-summary/download",
			middleware.RateLimitByUser(rate.Limit(0.5), 2),
			handler.DownloadClientSummary,
		)
		group.GET("/records",
			middleware.RateLimitByUser(rate.Limit(0.5), 2),
			handler.ExportRecords,
		)
	}
}
