package middleware

import (
	"errors"

	"blogging/internal/core"
	cErr "blogging/internal/pkg/error"
	"blogging/internal/pkg/response"
	"blogging/internal/service"
	"blogging/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	NoTokenMessage      = "Unauthorized: No token provided"
	InvalidTokenMessage = "Forbidden: Invalid token"
)

type Token struct {
	logger       *zap.Logger
	trace        *telemetry.Trace
	tokenService *service.TokenService
}

func NewToken(logger *zap.Logger, trace *telemetry.Trace, tokenService *service.TokenService) *Token {
	return &Token{logger: logger, trace: trace, tokenService: tokenService}
}

// Guard 驗證 x-token；缺少回 401，無效或過期回 403
func (m *Token) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span, end := m.trace.WithSpan(m.trace.GetTraceContext(c), string(core.SpanTokenMiddleware))
		token := c.GetHeader(core.HeaderToken)
		meta := core.TraceTokenMiddlewareMeta{
			Route:   c.FullPath(),
			Present: token != "",
		}

		subject, err := m.tokenService.Verify(token)
		if err != nil {
			var appErr *cErr.Error
			if errors.Is(err, service.ErrTokenMissing) {
				meta.Status = "missing"
				appErr = cErr.Unauthorized(NoTokenMessage)
			} else {
				meta.Status = "invalid"
				appErr = cErr.Forbidden(InvalidTokenMessage, cErr.INVALID_TOKEN)
				m.logger.Debug("[Token] rejected", zap.String("route", meta.Route), zap.Error(err))
			}
			m.trace.ApplyTraceAttributes(span, meta)
			end(appErr)
			response.AbortWithError(c, appErr)
			return
		}

		meta.Status = "ok"
		meta.Subject = subject
		m.trace.ApplyTraceAttributes(span, meta)
		end(nil)

		c.Set(core.ContextTokenSubject, subject)
		c.Next()
	}
}
