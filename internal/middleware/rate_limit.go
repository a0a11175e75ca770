package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"

	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyedRateLimiter menyimpan satu token bucket per kunci (IP atau user id).
type KeyedRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit // jumlah request per detik
	b        int        // burst
}

func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (k *KeyedRateLimiter) Limiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	limiter, exists := k.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(k.r, k.b)
		k.limiters[key] = limiter
	}
	return limiter
}

func (k *KeyedRateLimiter) reject(c *gin.Context, message string) {
	if k.r > 0 {
		retry := int(math.Ceil(1 / float64(k.r)))
		c.Header("Retry-After", strconv.Itoa(retry))
	}
	response.Error(c, http.StatusTooManyRequests, apperror.CodeTooManyRequests, message, nil)
	c.Abort()
}

// RateLimitByIP dipakai pada endpoint publik (login, register, reset password).
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.Limiter(c.ClientIP()).Allow() {
			limiter.reject(c, "Terlalu banyak permintaan, coba lagi nanti.")
			return
		}
		c.Next()
	}
}

// RateLimitByUser: harus dipasang setelah AuthMiddleware. Tanpa user_id, request diteruskan.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.Limiter(userID).Allow() {
			limiter.reject(c, "Terlalu banyak permintaan, coba lagi nanti.")
			return
		}
		c.Next()
	}
}
