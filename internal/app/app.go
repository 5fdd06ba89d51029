package app

import (
	"os"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/allowance"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/auth"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/middleware"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/connection"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/upload"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// BuildApp menyiapkan infrastruktur dan mendaftarkan seluruh modul ke router
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	return registerModules(router, sqlDB, gormDB, redisClient)
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&auth.User{},
		&allowance.ShiftAllowance{},
		&allowance.ShiftMapping{},
		&allowance.ShiftRate{},
		&upload.UploadedFile{},
	); err != nil {
		return err
	}

	// outbox dibaca lewat database/sql, bukan gorm, jadi DDL-nya eksplisit
	return db.Exec(`
CREATE TABLE IF NOT EXISTS outbox_events (
	id uuid PRIMARY KEY,
	request_id varchar(100),
	aggregate_type varchar(100) NOT NULL,
	aggregate_id varchar(100) NOT NULL,
	event_type varchar(100) NOT NULL,
	topic varchar(255) NOT NULL,
	payload jsonb NOT NULL,
	status varchar(20) NOT NULL DEFAULT 'pending',
	retry_count int NOT NULL DEFAULT 0,
	error_message varchar(500),
	next_retry_at timestamptz,
	processed_at timestamptz,
	created_at timestamptz NOT NULL DEFAULT NOW(),
	updated_at timestamptz NOT NULL DEFAULT NOW()
)`).Error
}
