package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"domain-agent.backend/internal/config"
	"domain-agent.backend/pkg/logger"
	"domain-agent.backend/pkg/redis"
)

// RateLimitMiddleware enforces a fixed-window per-IP request limit
// backed by redis. When redis is unreachable the request is let through;
// rate limiting degrades before availability does.
func RateLimitMiddleware(cfg config.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("rate_limit:%s", c.ClientIP())

		count, err := redis.Incr(ctx, key)
		if err != nil {
			logger.Warn(ctx, "rate limit check failed, allowing request", zap.Error(err))
			c.Next()
			return
		}

		if count == 1 {
			if err := redis.Expire(ctx, key, cfg.Window); err != nil {
				logger.Warn(ctx, "failed to set rate limit window", zap.Error(err))
			}
		}

		if count > int64(cfg.Requests) {
			retryAfter := cfg.Window
			if ttl, err := redis.TTL(ctx, key); err == nil && ttl > 0 {
				retryAfter = ttl
			}
			c.Header("Retry-After", strconv.Itoa(int(retryAfter/time.Second)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many requests, try again later",
			})
			return
		}

		c.Next()
	}
}
