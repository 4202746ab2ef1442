package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qalam/cms-core/internal/pkg/redis"
	"github.com/qalam/cms-core/internal/pkg/response"
)

const (
	loginRateWindow = time.Minute
	loginRateMax    = 10
)

// LoginRateLimit bounds login attempts per client IP using a fixed redis
// window. A nil client disables the limiter; redis errors fail open so an
// outage never locks everyone out.
func LoginRateLimit(rdb *redis.Client, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		window := time.Now().Unix() / int64(loginRateWindow.Seconds())
		key := fmt.Sprintf("cms:login_rate:%s:%d", c.ClientIP(), window)

		n, err := rdb.Incr(c.Request.Context(), key, loginRateWindow)
		if err != nil {
			log.Warn("login rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if n > loginRateMax {
			response.TooManyRequests(c, "محاولات تسجيل دخول كثيرة - يرجى المحاولة لاحقاً")
			c.Abort()
			return
		}
		c.Next()
	}
}
