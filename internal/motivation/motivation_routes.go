package motivation

import (
	"go-absensi/internal/middleware"
	"go-absensi/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc, rbacService rbac.Service) {
	m := r.Group("/motivation")
	m.Use(authn, middleware.ExtractUserID())
	{
		m.GET("", middleware.RBACAuthorize(rbacService, "motivation", "read"), h.Get)
	}
}
