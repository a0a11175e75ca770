package auth

import (
	"go-absensi/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authn gin.HandlerFunc, logger *zap.Logger) {
	auth := r.Group("/auth")
	auth.Use(middleware.ContextLogger(logger))

	// publik: dibatasi per IP karena belum ada identitas
	auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
	auth.POST("/register", middleware.RateLimitByIP(0.1, 1), handler.Register)
	auth.POST("/reset-password", middleware.RateLimitByIP(0.05, 2), handler.ResetPassword)
	auth.POST("/refresh", middleware.RateLimitByIP(0.5, 3), handler.RefreshToken)
	// logout tetap bisa dipanggil dengan access token kedaluwarsa
	auth.POST("/logout", middleware.RateLimitByIP(1, 5), handler.Logout)

	auth.GET("/me", authn, middleware.RateLimitByUser(2, 5), handler.Me)
}
