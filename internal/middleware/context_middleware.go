package middleware

import (
	"go-absensi/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger memindahkan identitas request dari gin ke context.Context dan
// menempelkan logger yang sudah membawa field tersebut. Dipasang setelah AuthMiddleware
// supaya user_id dan role ikut terbawa.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		if rid == "" {
			rid = c.GetHeader(RequestIDHeader)
		}
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(RequestIDHeader, rid)

		uid := c.GetString("user_id_validated")
		if uid == "" {
			uid = c.GetString("user_id")
		}

		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		ctx = contextutil.WithUserID(ctx, uid)
		ctx = contextutil.WithRole(ctx, c.GetString("role"))
		ctx = contextutil.WithLogger(ctx, logger.With(contextutil.LogFields(ctx)...))

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
