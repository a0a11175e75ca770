package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-absensi/internal/attendance"
	"go-absensi/internal/config"
	"go-absensi/internal/messaging/kafka"
	"go-absensi/internal/middleware"
	"go-absensi/internal/shared/connection"
	"go-absensi/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

// BuildApp menyiapkan infrastruktur, migrasi skema, lalu mendaftarkan semua modul ke router.
func BuildApp(router *gin.Engine, cfg config.Config) error {
	logger := zap.L().Named("app")

	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	// 1. Setup Infrastructure
	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, connectRetries)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrate(ctx, gormDB, sqlDB); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	router.Use(middleware.RequestID())

	// 2. Register Modules & Routes
	return registerModules(ctx, router, cfg, sqlDB, gormDB, redisClient, logger)
}

func connectDatabase(cfg config.Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
		connectRetries,
	)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	return gormDB, sqlDB, nil
}

func migrate(ctx context.Context, gormDB *gorm.DB, sqlDB *sql.DB) error {
	if err := gormDB.WithContext(ctx).AutoMigrate(&user.User{}, &attendance.Record{}); err != nil {
		return err
	}
	return kafka.EnsureSchema(ctx, sqlDB)
}

// schoolLocation memuat zona waktu sekolah; jatuh ke waktu lokal server bila tidak dikenal.
func schoolLocation(cfg config.Config) *time.Location {
	loc, err := time.LoadLocation(cfg.School.Timezone)
	if err != nil {
		zap.L().Warn("unknown school timezone, using server local time",
			zap.String("timezone", cfg.School.Timezone),
			zap.Error(err),
		)
		return time.Local
	}
	return loc
}
