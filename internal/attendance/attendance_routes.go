package attendance

import (
	"go-absensi/internal/middleware"
	"go-absensi/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc, rbacService rbac.Service, rdb *redis.Client, logger *zap.Logger) {
	attendances := r.Group("/attendances")
	attendances.Use(authn, middleware.ExtractUserID(), middleware.ContextLogger(logger))
	{
		attendances.GET("/today", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.Today)
		attendances.GET("/me", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.ListMine)

		attempts := attendances.Group("/attempts")
		attempts.Use(middleware.RBACAuthorize(rbacService, "attendance", "create"))
		{
			attempts.POST("", h.StartAttempt)
			attempts.GET("/current", h.CurrentAttempt)
			attempts.POST("/location", h.ReportLocation)
			attempts.DELETE("", h.CancelAttempt)
			if rdb != nil {
				attempts.POST("/submit", middleware.Idempotency(rdb), h.SubmitAttempt)
			} else {
				attempts.POST("/submit", h.SubmitAttempt)
			}
		}
	}
}
