package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiter 基于内存存储的限流中间件
//
// rate 使用 ulule/limiter 的格式化速率，如 "30-M"（每分钟30次）、"10-S"。
// 解析失败时返回放行中间件，限流不应拦住正常业务。
func RateLimiter(rate string) gin.HandlerFunc {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return func(c *gin.Context) { c.Next() }
	}

	instance := limiter.New(memory.NewStore(), parsed)
	return mgin.NewMiddleware(instance, mgin.WithLimitReachedHandler(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"code":    1,
			"message": "too many requests",
		})
	}))
}
