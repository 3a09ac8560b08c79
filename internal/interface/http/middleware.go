package http

import (
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/agri-advisor/internal/infra/config"
	"github.com/yanqian/agri-advisor/internal/infra/localcache"
	apperrors "github.com/yanqian/agri-advisor/pkg/errors"
)

// errorHandlingMiddleware renders the last handler error as the JSON error
// envelope. Upstream and configuration failures log at error level, caller
// mistakes at warn.
func errorHandlingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		httpErr := asHTTPError(err)
		attrs := []any{
			"code", httpErr.Code,
			"status", httpErr.Status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		}
		if appCode := apperrors.CodeOf(err); appCode != "" {
			attrs = append(attrs, "app_code", appCode)
		}
		if httpErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Warn("request failed", attrs...)
		}

		c.JSON(httpErr.Status, gin.H{
			"error": gin.H{
				"code":    httpErr.Code,
				"message": httpErr.Message,
			},
		})
	}
}

// rateLimitMiddleware throttles each client IP with a token bucket. Exempt
// paths, such as the health probe used by the orchestrator, are never counted.
func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	exempt := make(map[string]struct{}, len(cfg.Exempt))
	for _, path := range cfg.Exempt {
		exempt[path] = struct{}{}
	}
	limiter := newClientLimiter(cfg.RequestsPerMinute, cfg.Burst)
	return func(c *gin.Context) {
		if _, skip := exempt[c.Request.URL.Path]; skip {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if limiter.allow(ip, time.Now()) {
			c.Next()
			return
		}
		logger.Warn("rate limit exceeded", "ip", ip, "path", c.Request.URL.Path)
		c.Header("Retry-After", "60")
		abortWithError(c, &HTTPError{Status: http.StatusTooManyRequests, Code: "rate_limit_exceeded", Message: "too many requests"})
	}
}

// clientLimiter keeps one bucket per client. A bucket idle long enough to
// refill completely is equivalent to a new one, so the cache drops it then.
type clientLimiter struct {
	mu       sync.Mutex
	buckets  *localcache.Cache[*bucket]
	perMin   float64
	capacity float64
}

type bucket struct {
	tokens float64
	last   time.Time
}

func newClientLimiter(perMinute, burst int) *clientLimiter {
	capacity := math.Max(1, float64(burst))
	idle := time.Duration(capacity / float64(perMinute) * float64(time.Minute))
	if idle < time.Minute {
		idle = time.Minute
	}
	return &clientLimiter{
		buckets:  localcache.New[*bucket](idle),
		perMin:   float64(perMinute),
		capacity: capacity,
	}
}

func (l *clientLimiter) allow(client string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := &bucket{tokens: l.capacity, last: now}
	if cached, ok := l.buckets.Get(client); ok {
		b = cached
		if elapsed := now.Sub(b.last).Minutes(); elapsed > 0 {
			b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.perMin)
		}
		b.last = now
	}
	l.buckets.Set(client, b)

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
