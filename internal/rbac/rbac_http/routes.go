package rbac_http

import (
	"go-absensi/internal/middleware"
	"go-absensi/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *rbac.Handler, authn gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(authn, middleware.RateLimitByUser(2, 5))
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/permissions", handler.MyPermissions)
	}
}
