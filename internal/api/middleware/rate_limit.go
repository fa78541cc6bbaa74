package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"fitforge/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v9"
	"go.uber.org/zap"
)

const (
	// rateLimitKeyPrefix redis_rate 會再加上自己的 "rate:" 前綴
	rateLimitKeyPrefix = "fitforge:"
	// rateLimitCleanupInterval 清理閒置令牌桶的間隔
	rateLimitCleanupInterval = time.Minute
)

// RequestRateLimiter 依 key 限流，*redis_rate.Limiter 與 MemoryRateLimiter 都符合
type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

type tokenBucket struct {
	tokens float64
	last   time.Time
}

// MemoryRateLimiter 單機令牌桶限流器，沒有 Redis 時使用
type MemoryRateLimiter struct {
	mu          sync.Mutex
	now         func() time.Time
	buckets     map[string]*tokenBucket
	lastCleanup time.Time
}

// NewMemoryRateLimiter 創建記憶體限流器
func NewMemoryRateLimiter() *MemoryRateLimiter {
	return newMemoryRateLimiter(time.Now)
}

func newMemoryRateLimiter(now func() time.Time) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		now:         now,
		buckets:     make(map[string]*tokenBucket),
		lastCleanup: now(),
	}
}

// Allow 檢查 key 是否還有令牌
func (l *MemoryRateLimiter) Allow(_ context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	if limit.Rate <= 0 || limit.Period <= 0 {
		return nil, fmt.Errorf("invalid rate limit: rate=%d period=%s", limit.Rate, limit.Period)
	}

	capacity := float64(limit.Burst)
	if capacity <= 0 {
		capacity = float64(limit.Rate)
	}
	rate := float64(limit.Rate) / limit.Period.Seconds()

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	// 閒置到補滿的桶與新桶等價
	l.cleanup(now, time.Duration(capacity/rate*float64(time.Second)))

	b, ok := l.buckets[key]
	if !ok {
		b = &tokenBucket{tokens: capacity, last: now}
		l.buckets[key] = b
	}

	// 小數令牌保留到下次
	b.tokens = min(capacity, b.tokens+now.Sub(b.last).Seconds()*rate)
	b.last = now

	res := &redis_rate.Result{Limit: limit}
	if b.tokens >= 1 {
		b.tokens--
		res.Allowed = 1
		res.Remaining = int(b.tokens)
		res.RetryAfter = -1
		return res, nil
	}

	res.RetryAfter = time.Duration((1 - b.tokens) / rate * float64(time.Second))
	return res, nil
}

func (l *MemoryRateLimiter) cleanup(now time.Time, idle time.Duration) {
	if now.Sub(l.lastCleanup) < rateLimitCleanupInterval {
		return
	}
	l.lastCleanup = now

	for key, b := range l.buckets {
		if now.Sub(b.last) >= idle {
			delete(l.buckets, key)
		}
	}
}

// RateLimit 限流中間件，window 內每個客戶端 IP 最多 requests 次
func RateLimit(limiter RequestRateLimiter, requests int, window time.Duration) gin.HandlerFunc {
	limit := redis_rate.Limit{
		Rate:   requests,
		Burst:  requests,
		Period: window,
	}

	return func(c *gin.Context) {
		res, err := limiter.Allow(c.Request.Context(), rateLimitKeyPrefix+c.ClientIP(), limit)
		if err != nil {
			common.LogError("Rate limiter failed",
				zap.String("ip", c.ClientIP()),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Rate limit internal error",
				"code":  common.ErrCodeInternalError,
			})
			return
		}

		if res.Allowed > 0 {
			c.Next()
			return
		}

		retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}

		common.LogInfo("Rate limit exceeded",
			zap.String("ip", c.ClientIP()),
			zap.String("path", c.Request.URL.Path),
			zap.Int("retry_after", retryAfter),
		)

		c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       "Too many requests",
			"code":        common.ErrCodeTooManyRequests,
			"retry_after": retryAfter,
		})
	}
}
