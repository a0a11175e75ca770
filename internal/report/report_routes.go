package report

import (
	"go-absensi/internal/middleware"
	"go-absensi/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn gin.HandlerFunc,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	reports := r.Group("/reports")
	reports.Use(authn)
	reports.Use(middleware.ContextLogger(logger))
	{
		read := middleware.RBACAuthorize(rbacService, "report", "read")
		export := middleware.RBACAuthorize(rbacService, "report", "export")

		reports.GET("/monthly", read, handler.Monthly)
		reports.GET("/records", read, handler.Records)
		reports.GET("/employees/:id", read, handler.Employee)

		// export lebih berat (PDF/XLSX), dibatasi per user
		reports.GET("/monthly/export", middleware.RateLimitByUser(1, 3), export, handler.ExportMonthly)
		reports.GET("/records/export", middleware.RateLimitByUser(1, 3), export, handler.ExportRecords)
		reports.GET("/employees/:id/export", middleware.RateLimitByUser(1, 3), export, handler.ExportEmployee)
	}
}
