package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/yourusername/quiz-api/internal/config"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests — максимальное количество запросов за Window
	MaxRequests int
	// Window — временное окно для подсчёта запросов
	Window time.Duration
	// KeyPrefix — префикс для ключей в Redis
	KeyPrefix string
}

// AuthRateLimitConfig строит лимит для /api/auth из конфигурации приложения
func AuthRateLimitConfig(cfg config.RateLimitConfig) RateLimitConfig {
	rl := RateLimitConfig{
		MaxRequests: cfg.MaxRequests,
		Window:      time.Duration(cfg.WindowSeconds) * time.Second,
		KeyPrefix:   "rl:auth",
	}
	if rl.MaxRequests <= 0 {
		rl.MaxRequests = 5
	}
	if rl.Window <= 0 {
		rl.Window = time.Minute
	}
	return rl
}

// RateLimiter ограничивает частоту запросов с помощью счетчиков в Redis
type RateLimiter struct {
	redisClient redis.UniversalClient
	timeout     time.Duration
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(redisClient redis.UniversalClient) *RateLimiter {
	return &RateLimiter{redisClient: redisClient, timeout: 2 * time.Second}
}

// Limit возвращает Gin middleware с заданной конфигурацией.
// Ключ формируется из IP и шаблона маршрута.
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		key := fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, clientIP, path)

		ctx, cancel := context.WithTimeout(c.Request.Context(), rl.timeout)
		defer cancel()

		count, retryAfter, err := rl.hit(ctx, key, cfg.Window)
		if err != nil {
			// Недоступность Redis не должна блокировать вход (fail-open)
			log.Printf("[RateLimiter] Redis error for key %s: %v. Allowing request (fail-open).", key, err)
			c.Next()
			return
		}

		remaining := cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(retryAfter))

		if int(count) > cfg.MaxRequests {
			log.Printf("[RateLimiter] Rate limit exceeded for IP=%s path=%s. Count=%d, Limit=%d",
				clientIP, path, count, cfg.MaxRequests)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}

		c.Next()
	}
}

// hit увеличивает счетчик окна и возвращает его значение и секунды до сброса
func (rl *RateLimiter) hit(ctx context.Context, key string, window time.Duration) (int64, int, error) {
	count, err := rl.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	// Первый запрос в окне задает TTL
	if count == 1 {
		if err := rl.redisClient.Expire(ctx, key, window).Err(); err != nil {
			log.Printf("[RateLimiter] Failed to set TTL for key %s: %v", key, err)
		}
	}

	retryAfter := int(window.Seconds())
	if ttl, err := rl.redisClient.TTL(ctx, key).Result(); err == nil && ttl > 0 {
		retryAfter = int(ttl.Seconds())
	}
	return count, retryAfter, nil
}
