package allowance

import (
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	display := r.Group("/display")
	display.Use(middleware.AuthMiddleware())
	{
		display.GET("", handler.GetAll)
		display.GET("/:id", handler.GetByID)
	}
}
