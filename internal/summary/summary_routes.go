package summary

import (
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/summary")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/client-summary", handler.ClientSummary)
		group.GET("/client-shift-summary", handler.ClientShiftSummary)
		group.GET("/interval", handler.IntervalSummary)
	}
}
