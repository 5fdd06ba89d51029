package middleware

import (
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Handle Request ID
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)

		// 2. Buat Scoped Logger yang sudah ditempeli Metadata.
		// User ID baru ada setelah AuthMiddleware jalan; middleware itu
		// yang menempelkannya ke context dan logger.
		reqLogger := logger.With(zap.String("request_id", rid))
		if uid := c.GetString("user_id"); uid != "" {
			reqLogger = reqLogger.With(zap.String("user_id", uid))
		}

		// 3. Propagasi ke Standard Context
		// Agar layer Service/Repo bisa ambil via contextutil tanpa tahu Gin
		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		if uid := c.GetString("user_id"); uid != "" {
			ctx = contextutil.WithUserID(ctx, uid)
		}
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
