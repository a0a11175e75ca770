package middleware

import (
	"net/http"

	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/contextutil"
	"go-absensi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExtractUserID memastikan user_id dari token adalah UUID sebelum dipakai sebagai kunci
// attempt absensi dan filter record.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "User tidak terautentikasi", nil)
			c.Abort()
			return
		}

		if _, err := uuid.Parse(userID); err != nil {
			response.Error(c, http.StatusUnauthorized, apperror.CodeInvalidUserID, "Format user_id tidak valid", nil)
			c.Abort()
			return
		}

		c.Set("user_id_validated", userID)
		c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}
