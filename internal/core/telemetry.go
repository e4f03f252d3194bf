package core

const ContextTraceKey = "telemetry_trace_ctx"

// ==== 型別安全 span name ====
type TraceSpanName string

const (
	SpanLoggerMiddleware     TraceSpanName = "logger_middleware"
	SpanAuditPersist         TraceSpanName = "audit_persist"
	SpanCorsMiddleware       TraceSpanName = "cors_middleware"
	SpanResponseMiddleware   TraceSpanName = "response_middleware"
	SpanTokenMiddleware      TraceSpanName = "token_middleware"
	SpanRateLimitMiddleware  TraceSpanName = "ratelimit_middleware"
	SpanDecompressMiddleware TraceSpanName = "decompress_middleware"
	SpanRecoveryMiddleware   TraceSpanName = "recovery_middleware"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal   MetricName = "requests_total"
	MetricHttpRequestDuration MetricName = "request_duration_seconds"
	MetricAuditLogTotal       MetricName = "audit_log_total"
	MetricAuditLogFailTotal   MetricName = "audit_log_fail_total"
	MetricRateLimitTotal      MetricName = "rate_limited_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
)

type TraceHttpServerMeta struct {
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}

type TraceAuditLogMeta struct {
	Method    string `trace:"audit.request.method"`
	URL       string `trace:"audit.request.url"`
	Status    int    `trace:"audit.response.status"`
	ElapsedMs int64  `trace:"audit.response.time_ms"`
	BodyBytes int    `trace:"audit.response.body_bytes"`
	Truncated bool   `trace:"audit.response.truncated"`
	Mirrored  bool   `trace:"audit.fluentd.mirrored"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}

type TraceTokenMiddlewareMeta struct {
	Route   string `trace:"auth.route"`
	Present bool   `trace:"auth.token_present"`
	Subject string `trace:"auth.subject,omitempty"`
	Status  string `trace:"auth.status"`
}

// 供 Redis 限流 Consume 使用
type TraceRateLimitMeta struct {
	Subject   string `trace:"rl.subject"`
	Scope     string `trace:"rl.scope"`
	Limit     int    `trace:"rl.limit_count"`
	WindowSec int64  `trace:"rl.window_sec"`
	Remaining int    `trace:"rl.remaining,omitempty"`
	TTL       int64  `trace:"rl.ttl_sec,omitempty"`
	Op        string `trace:"rl.op"`
}

type TracePostMeta struct {
	Op           string   `trace:"post.op"`
	PostID       string   `trace:"post.id,omitempty"`
	Fields       []string `trace:"post.fields,omitempty"`
	ResultCount  int      `trace:"result.count,omitempty"`
	MatchedCount int64    `trace:"mongo.matched_count,omitempty"`
}

type TraceLogListMeta struct {
	Page        int64 `trace:"list.page"`
	Size        int64 `trace:"list.size"`
	ResultCount int   `trace:"result.count"`
}
