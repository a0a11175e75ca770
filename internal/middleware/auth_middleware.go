package middleware

import (
	"errors"
	"fmt"
	"strings"

	autherrors "go-absensi/internal/auth/errors"
	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func abortWith(c *gin.Context, errObj *apperror.AppError, message string) {
	if message == "" {
		message = errObj.Message
	}
	response.Error(c, errObj.HTTPStatus, errObj.Code, message, nil)
	c.Abort()
}

// AuthMiddleware memverifikasi access token HS256 dengan secret yang sama dengan
// yang dipakai auth.Service untuk menandatangani.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, apperror.ErrUnauthorized, "Token not found")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return key, nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			abortWith(c, errObj, "")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, autherrors.ErrInvalidToken, "Invalid token claims")
			return
		}

		// refresh token tidak boleh dipakai sebagai access token
		if tokenType, _ := claims["type"].(string); tokenType != "access" {
			abortWith(c, autherrors.ErrInvalidToken, "")
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			abortWith(c, autherrors.ErrInvalidToken, "User ID not found in token")
			return
		}

		role, _ := claims["role"].(string)
		if role == "" {
			abortWith(c, autherrors.ErrInvalidToken, "Role not found in token")
			return
		}

		name, _ := claims["name"].(string)
		jenisGTK, _ := claims["jenis_gtk"].(string)
		statusGTK, _ := claims["status_gtk"].(string)

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Set("name", name)
		c.Set("jenis_gtk", jenisGTK)
		c.Set("status_gtk", statusGTK)

		c.Next()
	}
}
