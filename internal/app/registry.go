package app

import (
	"database/sql"
	"os"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/allowance"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/auth"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/export"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/messaging/kafka"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/cache"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/summary"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/upload"

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
	cacheSvc := cache.NewRedisCache(rdb)

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	allowanceRepo := allowance.NewRepository(gormDB)
	summaryRepo := summary.NewRepository(gormDB)
	exportRepo := export.NewRepository(gormDB)
	uploadRepo := upload.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(authRepo)
	allowanceService := allowance.NewService(allowanceRepo)
	summaryService := summary.NewService(summaryRepo, cacheSvc)
	exportService := export.NewService(exportRepo, summaryService, cacheSvc, os.Getenv("EXPORT_DIR"))
	uploadService := upload.NewService(db, uploadRepo, outboxRepo, os.Getenv("ERROR_FILE_DIR"))

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	allowanceHandler := allowance.NewHandler(allowanceService)
	summaryHandler := summary.NewHandler(summaryService)
	exportHandler := export.NewHandler(exportService)
	uploadHandler := upload.NewHandlerWithRedis(uploadService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		allowance.RegisterRoutes(api, allowanceHandler)
		summary.RegisterRoutes(api, summaryHandler)
		export.RegisterRoutes(api, exportHandler)
		upload.RegisterRoutes(api, uploadHandler, rdb)
	}

	return nil
}
