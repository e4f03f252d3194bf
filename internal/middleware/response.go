package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"blogging/internal/core"
	cErr "blogging/internal/pkg/error"
	"blogging/internal/pkg/response"
	"blogging/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	logger *zap.Logger
	trace  *telemetry.Trace
}

func NewResponse(logger *zap.Logger, trace *telemetry.Trace) *Response {
	return &Response{logger: logger, trace: trace}
}

// FormatHandler 將 handler 以 response.Success / Create 放入的資料輸出為 JSON
func (middleware *Response) FormatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := time.Now()
		if startTime, exists := c.Get(core.ContextRequestStart); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		} else {
			c.Set(core.ContextRequestStart, requestTime)
		}

		// 執行下游
		c.Next()

		// 若已經有錯誤交由 Recovery 處理，或已經寫出回應，就不要再動了
		if len(c.Errors) > 0 || c.Writer.Written() {
			return
		}

		data, hasData := c.Get(response.ContextDataKey)
		statusCode := c.Writer.Status()
		if s := c.GetInt(response.ContextStatusKey); s != 0 {
			statusCode = s
		}

		// 沒有 handler 輸出且狀態為錯誤（例如 404 找不到路由）：交給 Recovery
		if !hasData && statusCode >= http.StatusBadRequest {
			response.AbortWithError(c, cErr.MapHttpStatusToError(statusCode, http.StatusText(statusCode)))
			return
		}
		if data == nil {
			data = map[string]any{}
		}

		_, span, end := middleware.trace.WithSpan(middleware.trace.GetTraceContext(c), string(core.SpanResponseMiddleware))
		defer end(nil)
		duration := time.Since(requestTime)
		middleware.trace.ApplyTraceAttributes(span, core.TraceResponseMeta{
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     statusCode,
			DurationMs: float64(duration.Milliseconds()),
			Data:       safePreviewJSON(data, 2000),
		})
		middleware.logger.Debug("[Response]",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", statusCode),
			zap.Duration("duration", duration),
			zap.String("traceId", span.SpanContext().TraceID().String()),
		)

		c.JSON(statusCode, data)
	}
}

// safePreviewJSON 會把資料序列化為 JSON 字串（UTF-8），並限制長度。
func safePreviewJSON(data any, max int) string {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("[marshal error: %v]", err)
	}
	out := string(b)
	if len(out) > max {
		return out[:max] + "…"
	}
	return out
}
