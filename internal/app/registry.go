package app

import (
	"context"
	"database/sql"

	"go-absensi/internal/assistant"
	"go-absensi/internal/attendance"
	"go-absensi/internal/auth"
	"go-absensi/internal/bootstrap"
	"go-absensi/internal/config"
	"go-absensi/internal/geo"
	"go-absensi/internal/geocode"
	"go-absensi/internal/messaging/kafka"
	"go-absensi/internal/middleware"
	"go-absensi/internal/motivation"
	"go-absensi/internal/rbac"
	"go-absensi/internal/rbac/infra"
	"go-absensi/internal/rbac/rbac_http"
	"go-absensi/internal/report"
	"go-absensi/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func attendancePolicy(cfg config.Config) attendance.Policy {
	return attendance.Policy{
		School: geo.Geofence{
			Center:   geo.Coordinates{Latitude: cfg.School.Latitude, Longitude: cfg.School.Longitude},
			RadiusKm: cfg.School.RadiusKm,
		},
		Punctuality: attendance.PunctualityPolicy{
			CheckIn:  attendance.Window{Start: cfg.Schedule.CheckInStart, End: cfg.Schedule.CheckInEnd},
			CheckOut: attendance.Window{Start: cfg.Schedule.CheckOutStart, End: cfg.Schedule.CheckOutEnd},
		},
		Location:        schoolLocation(cfg),
		PositionTimeout: cfg.Flow.PositionTimeout,
		DisplayInterval: cfg.Flow.SubmittedDisplayInterval,
	}
}

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	policy := attendancePolicy(cfg)
	loc := policy.Location

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	tokenRepo := auth.NewRepository(rdb)
	outboxRepo := kafka.NewOutboxRepository(db)
	rbacRepo := rbac.NewRepository()
	attemptStore := attendance.NewAttemptStore(rdb, cfg.Flow.AttemptTTL)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- External collaborators ---
	assistantClient, err := assistant.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return err
	}
	resolver := geocode.NewResolver(assistantClient, cfg.Flow.GeocodeTimeout, logger)
	generator := motivation.NewGenerator(assistantClient, rdb, loc, logger)

	// --- Services ---
	auditLogger := bootstrap.NewStdoutAuditLogger(logger)
	authService := auth.NewServiceWithOutbox(db, userRepo, tokenRepo, outboxRepo, cfg.JWT.Secret, logger)
	userService := user.NewServiceWithOutbox(db, userRepo, attendanceRepo, outboxRepo, auditLogger, logger)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, outboxRepo, attemptStore, resolver, policy, logger)
	reportService := report.NewService(attendanceRepo, userRepo, rdb, report.Options{
		Location: loc,
		CacheTTL: cfg.Report.CacheTTL,
	}, logger)

	if err := userService.EnsureSeed(ctx, user.SeedOptions{
		AdminName:     cfg.Seed.AdminName,
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
		DemoTeacher:   cfg.Seed.DemoTeacher,
	}); err != nil {
		return err
	}

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction())
	userHandler := user.NewHandler(userService, logger)
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb, loc)
	motivationHandler := motivation.NewHandler(generator)
	reportHandler := report.NewHandler(reportService, loc)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	authn := middleware.AuthMiddleware(cfg.JWT.Secret)
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authn, logger)
		user.RegisterRoutes(api, userHandler, authn, rbacService, logger)
		attendance.RegisterRoutes(api, attendanceHandler, authn, rbacService, rdb, logger)
		motivation.RegisterRoutes(api, motivationHandler, authn, rbacService)
		report.RegisterRoutes(api, reportHandler, authn, rbacService, logger)
		rbac_http.RegisterRoutes(api, rbacHandler, authn)
	}

	return nil
}
