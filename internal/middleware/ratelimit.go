package middleware

import (
	"errors"
	"strconv"

	"blogging/config"
	"blogging/internal/core"
	"blogging/internal/database/redis/repository"
	cErr "blogging/internal/pkg/error"
	"blogging/internal/pkg/response"
	"blogging/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const createWindowSeconds int64 = 60

type RateLimit struct {
	logger                *zap.Logger
	trace                 *telemetry.Trace
	metric                *telemetry.Metric
	config                *config.Configuration
	rateLimiterRepository *repository.RateLimiterRepository
}

func NewRateLimit(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	rateLimiterRepository *repository.RateLimiterRepository,
) *RateLimit {
	return &RateLimit{
		logger:                logger,
		trace:                 trace,
		metric:                metric,
		config:                config,
		rateLimiterRepository: rateLimiterRepository,
	}
}

// Guard 以 client IP 為單位的固定視窗限流；Redis 錯誤時放行
func (m *RateLimit) Guard(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := m.config.RateLimit.CreatePerMinute
		if !m.config.RateLimit.Enabled || limit <= 0 || !m.rateLimiterRepository.Enabled() {
			c.Next()
			return
		}

		ctx, _, end := m.trace.WithSpan(m.trace.GetTraceContext(c), string(core.SpanRateLimitMiddleware))
		remaining, ttl, err := m.rateLimiterRepository.Consume(ctx, c.ClientIP(), scope, createWindowSeconds, limit)

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if ttl > 0 {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(ttl, 10))
		}

		switch {
		case errors.Is(err, repository.ErrRateLimitExceeded):
			if ttl > 0 {
				c.Header("Retry-After", strconv.FormatInt(ttl, 10))
			}
			if m.metric.RateLimitedTotal != nil {
				m.metric.RateLimitedTotal.WithLabelValues(c.FullPath()).Inc()
			}
			appErr := cErr.RateLimitExceeded("rate limit exceeded")
			end(appErr)
			response.AbortWithError(c, appErr)
			return
		case err != nil:
			m.logger.Warn("[RateLimit] redis unavailable, request allowed", zap.String("scope", scope), zap.Error(err))
		}
		end(nil)
		c.Next()
	}
}
