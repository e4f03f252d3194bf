package middleware

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"blogging/internal/core"
	"blogging/internal/database/mongodb/model"
	"blogging/internal/service"
	"blogging/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	maxLoggedResponseBody = 64 << 10
	maxLoggedRequestBody  = 64 << 10
	maxRequestBody        = maxDecodedBody
	requestBodyPreview    = 2000
	auditPersistTimeout   = 5 * time.Second
)

// 基礎設施路徑：不寫稽核紀錄、不開 trace
var infraPathPrefixes = []string{"/metrics", "/health", "/version", "/api-docs", "/debug/pprof"}

type Logger struct {
	logger     *zap.Logger
	trace      *telemetry.Trace
	metric     *telemetry.Metric
	logService *service.LogService
	pending    sync.WaitGroup
}

func NewLogger(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	logService *service.LogService,
) *Logger {
	return &Logger{
		logger:     logger,
		trace:      trace,
		metric:     metric,
		logService: logService,
	}
}

// LoggerHandler 回應寫完後才在背景寫入稽核紀錄，寫入失敗不影響回應
func (m *Logger) LoggerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isInfraPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now().UTC()
		if _, exists := c.Get(core.ContextRequestStart); !exists {
			c.Set(core.ContextRequestStart, start)
		}

		var (
			raw     []byte
			readErr error
		)
		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			// 讀完整 body 後回填，確保下游仍可讀取；讀取失敗交給 Decompress 回 400
			raw, readErr = io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody))
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
			if readErr != nil {
				c.Set(core.ContextRequestBodyErr, readErr)
			}
		}
		requestInfo := model.RequestInfo{
			Method:    c.Request.Method,
			URL:       c.Request.URL.RequestURI(),
			Headers:   headerToMap(c.Request.Header),
			Query:     queryToMap(c.Request.URL.Query()),
			Timestamp: start,
		}
		if readErr != nil {
			requestInfo.Body = fmt.Sprintf("(unreadable body after %d bytes: %v)", len(raw), readErr)
		} else {
			requestInfo.Body = decodeRequestBody(c.Request.Header, raw)
		}

		recorder := newResponseRecorder(c.Writer, maxLoggedResponseBody)
		c.Writer = recorder
		recorder.OnComplete(func(r *responseRecorder) {
			// gin.Context 會被重用，背景 goroutine 只能拿快照
			entry := &model.LogEntry{
				RequestInfo: requestInfo,
				ResponseInfo: model.ResponseInfo{
					Status:  r.Status(),
					Headers: headerToMap(r.Header()),
					Body:    r.Body(),
					Time:    time.Since(start).Milliseconds(),
				},
			}
			endpoint := c.FullPath()
			if endpoint == "" {
				endpoint = "unmatched"
			}
			m.logger.Info("[Request] "+requestInfo.Method+" "+requestInfo.URL,
				zap.Int("status", entry.ResponseInfo.Status),
				zap.Int64("elapsedMs", entry.ResponseInfo.Time),
				zap.String("clientIp", c.ClientIP()),
			)
			m.dispatch(m.trace.GetTraceContext(c), endpoint, entry, r.Truncated())
		})
		defer recorder.complete()

		c.Next()
	}
}

func (m *Logger) dispatch(parent context.Context, endpoint string, entry *model.LogEntry, truncated bool) {
	m.pending.Add(1)
	go func() {
		defer m.pending.Done()
		defer func() {
			if rec := recover(); rec != nil {
				m.logger.Error("[Audit] persist panic", zap.String("panic", fmt.Sprint(rec)))
				m.countFailure("panic")
			}
		}()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), auditPersistTimeout)
		defer cancel()

		ctx, span, end := m.trace.WithSpan(ctx, string(core.SpanLoggerMiddleware))
		mirrored, err := m.logService.Record(ctx, entry)
		m.trace.ApplyTraceAttributes(span, core.TraceAuditLogMeta{
			Method:    entry.RequestInfo.Method,
			URL:       entry.RequestInfo.URL,
			Status:    entry.ResponseInfo.Status,
			ElapsedMs: entry.ResponseInfo.Time,
			BodyBytes: len(entry.ResponseInfo.Body),
			Truncated: truncated,
			Mirrored:  mirrored,
		})
		end(err)

		if err != nil {
			m.logger.Error("[Audit] persist request log failed",
				zap.String("method", entry.RequestInfo.Method),
				zap.String("url", entry.RequestInfo.URL),
				zap.Int("status", entry.ResponseInfo.Status),
				zap.Error(err),
			)
			m.countFailure("store")
			return
		}
		if m.metric.AuditLogTotal != nil {
			m.metric.AuditLogTotal.WithLabelValues(endpoint).Inc()
		}
	}()
}

func (m *Logger) countFailure(reason string) {
	if m.metric.AuditLogFailTotal != nil {
		m.metric.AuditLogFailTotal.WithLabelValues(reason).Inc()
	}
}

// Wait 等待所有背景寫入完成或 ctx 結束
func (m *Logger) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isInfraPath(path string) bool {
	for _, prefix := range infraPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// headers → map（lowercase key；單值為 string，多值為 []string）
func headerToMap(header http.Header) map[string]any {
	out := make(map[string]any, len(header))
	for k, v := range header {
		out[strings.ToLower(k)] = flatten(v)
	}
	return out
}

func queryToMap(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = flatten(v)
	}
	return out
}

func flatten(values []string) any {
	if len(values) == 1 {
		return values[0]
	}
	copied := make([]string, len(values))
	copy(copied, values)
	return copied
}

// decodeRequestBody JSON 轉為物件；表單轉為 map；其餘文字截斷預覽；二進位只留標記
func decodeRequestBody(header http.Header, raw []byte) any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	if encoding := header.Get("Content-Encoding"); encoding != "" {
		decoded, err := decodeContent(encoding, raw)
		if err != nil {
			return fmt.Sprintf("(undecodable %s body, %d bytes)", encoding, len(raw))
		}
		raw = decoded
	}

	mediaType, _, _ := mime.ParseMediaType(header.Get("Content-Type"))
	switch {
	case isBinaryContent(mediaType):
		return fmt.Sprintf("(binary %s, %d bytes)", mediaType, len(raw))
	case mediaType == "application/x-www-form-urlencoded":
		if values, err := url.ParseQuery(string(raw)); err == nil {
			return queryToMap(values)
		}
	case strings.HasSuffix(mediaType, "json") || mediaType == "":
		if len(raw) <= maxLoggedRequestBody {
			var body any
			if err := json.Unmarshal(raw, &body); err == nil {
				return body
			}
		}
	}
	return toSafePreview(raw, requestBodyPreview)
}

// 僅對文字內容做安全預覽：UTF-8 直接截斷；非 UTF-8 以 Base64 表示
func toSafePreview(b []byte, max int) string {
	if len(b) == 0 {
		return ""
	}
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

// 是否為二進位內容
func isBinaryContent(mediaType string) bool {
	return strings.HasPrefix(mediaType, "multipart/") ||
		strings.HasPrefix(mediaType, "image/") ||
		strings.HasPrefix(mediaType, "audio/") ||
		strings.HasPrefix(mediaType, "video/") ||
		mediaType == "application/octet-stream"
}
