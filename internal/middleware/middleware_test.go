package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"blogging/config"
	"blogging/internal/core"
	"blogging/internal/database/memory"
	"blogging/internal/pkg/response"
	"blogging/internal/service"
	"blogging/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	engine   *gin.Engine
	logger   *Logger
	logStore *memory.LogStore
	tokens   *service.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conf := &config.Configuration{Token: config.Token{Secret: "test-secret"}}
	trace := telemetry.NewNoopTrace()
	metric := telemetry.NewMetric(conf)
	logStore := memory.NewLogStore()
	logService := service.NewLogService(trace, zap.NewNop(), logStore, nil)
	tokens, err := service.NewTokenService(conf)
	require.NoError(t, err)

	auditLogger := NewLogger(zap.NewNop(), trace, metric, logService)
	engine := gin.New()
	engine.Use(
		auditLogger.LoggerHandler(),
		NewRecovery(zap.NewNop(), trace).ErrorHandler(),
		NewDecompress(trace).Handler(),
		NewResponse(zap.NewNop(), trace).FormatHandler(),
	)
	return &testEnv{engine: engine, logger: auditLogger, logStore: logStore, tokens: tokens}
}

func (env *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, env.logger.Wait(ctx))
	return w
}

func listLogs(t *testing.T, store *memory.LogStore) []map[string]any {
	t.Helper()
	entries, err := store.List(context.Background(), core.ListOptions{Page: 1, Size: 100})
	require.NoError(t, err)
	raw, err := json.Marshal(entries)
	require.NoError(t, err)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestLogger_PersistsRequestAndResponse(t *testing.T) {
	env := newTestEnv(t)
	env.engine.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		require.NoError(t, c.ShouldBindJSON(&body))
		response.Create(c, body)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo?tag=a&tag=b&x=1", strings.NewReader(`{"title":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := env.do(t, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"title":"hi"}`, w.Body.String())

	logs := listLogs(t, env.logStore)
	require.Len(t, logs, 1)
	requestInfo := logs[0]["requestInfo"].(map[string]any)
	responseInfo := logs[0]["responseInfo"].(map[string]any)

	assert.Equal(t, "POST", requestInfo["method"])
	assert.Equal(t, "/echo?tag=a&tag=b&x=1", requestInfo["url"])
	assert.Equal(t, map[string]any{"tag": []any{"a", "b"}, "x": "1"}, requestInfo["query"])
	assert.Equal(t, map[string]any{"title": "hi"}, requestInfo["body"])
	assert.Equal(t, "application/json", requestInfo["headers"].(map[string]any)["content-type"])

	assert.EqualValues(t, http.StatusCreated, responseInfo["status"])
	assert.JSONEq(t, `{"title":"hi"}`, responseInfo["body"].(string))
	assert.GreaterOrEqual(t, responseInfo["time"].(float64), float64(0))
}

func TestLogger_StoreFailureDoesNotAffectResponse(t *testing.T) {
	env := newTestEnv(t)
	env.logStore.SetFailing(true)
	env.engine.GET("/ok", func(c *gin.Context) {
		response.Success(c, gin.H{"ok": true})
	})

	w := env.do(t, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, 0, env.logStore.Len())
}

func TestLogger_LogsErrorsAndPanics(t *testing.T) {
	env := newTestEnv(t)
	env.engine.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := env.do(t, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.NotEmpty(t, body.RequestID)

	logs := listLogs(t, env.logStore)
	require.Len(t, logs, 1)
	responseInfo := logs[0]["responseInfo"].(map[string]any)
	assert.EqualValues(t, http.StatusInternalServerError, responseInfo["status"])
	assert.Contains(t, responseInfo["body"], "Internal Server Error")
}

func TestLogger_SkipsInfraPaths(t *testing.T) {
	env := newTestEnv(t)
	env.engine.GET("/health/liveness", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
	})

	w := env.do(t, httptest.NewRequest(http.MethodGet, "/health/liveness", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.logStore.Len())
}

func TestLogger_UnmatchedRouteIsLoggedAs404(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	logs := listLogs(t, env.logStore)
	require.Len(t, logs, 1)
	assert.EqualValues(t, http.StatusNotFound, logs[0]["responseInfo"].(map[string]any)["status"])
}

func TestToken_Guard(t *testing.T) {
	env := newTestEnv(t)
	guard := NewToken(zap.NewNop(), telemetry.NewNoopTrace(), env.tokens)
	env.engine.PUT("/update/:blogId", guard.Guard(), func(c *gin.Context) {
		response.Success(c, gin.H{"subject": c.GetString(core.ContextTokenSubject)})
	})

	valid, err := env.tokens.Issue("abc")
	require.NoError(t, err)

	cases := []struct {
		name    string
		token   string
		status  int
		message string
	}{
		{name: "missing", token: "", status: http.StatusUnauthorized, message: NoTokenMessage},
		{name: "malformed", token: "not-a-jwt", status: http.StatusForbidden, message: InvalidTokenMessage},
		{name: "tampered", token: valid + "x", status: http.StatusForbidden, message: InvalidTokenMessage},
		{name: "valid", token: valid, status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/update/abc", strings.NewReader(`{}`))
			if tc.token != "" {
				req.Header.Set(core.HeaderToken, tc.token)
			}
			w := env.do(t, req)

			require.Equal(t, tc.status, w.Code)
			if tc.message != "" {
				var body response.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tc.message, body.Error)
				return
			}
			assert.JSONEq(t, `{"subject":"abc"}`, w.Body.String())
		})
	}
}

func TestDecompress_GzipBody(t *testing.T) {
	env := newTestEnv(t)
	env.engine.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			response.AbortWithError(c, err)
			return
		}
		response.Success(c, body)
	})

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`{"title":"zipped"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	req := httptest.NewRequest(http.MethodPost, "/echo", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	w := env.do(t, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"title":"zipped"}`, w.Body.String())

	logs := listLogs(t, env.logStore)
	require.Len(t, logs, 1)
	assert.Equal(t, map[string]any{"title": "zipped"}, logs[0]["requestInfo"].(map[string]any)["body"])
}

func TestDecompress_UnsupportedEncoding(t *testing.T) {
	env := newTestEnv(t)
	env.engine.POST("/echo", func(c *gin.Context) {
		response.Success(c, gin.H{})
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("abc"))
	req.Header.Set("Content-Encoding", "compress")
	w := env.do(t, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogger_BodyReadFailureIsRejected(t *testing.T) {
	tests := []struct {
		name    string
		body    io.Reader
		message string
	}{
		{
			name:    "broken stream",
			body:    io.MultiReader(strings.NewReader(`{"title":`), iotest.ErrReader(errors.New("connection reset"))),
			message: "failed to read request body",
		},
		{
			name:    "body over limit",
			body:    strings.NewReader(strings.Repeat("a", maxRequestBody+1)),
			message: fmt.Sprintf("request body exceeds %d bytes", maxRequestBody),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			reached := false
			env.engine.POST("/echo", func(c *gin.Context) {
				reached = true
				response.Success(c, gin.H{})
			})

			req := httptest.NewRequest(http.MethodPost, "/echo", tt.body)
			req.Header.Set("Content-Type", "application/json")
			w := env.do(t, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, reached)
			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Error)

			logs := listLogs(t, env.logStore)
			require.Len(t, logs, 1)
			assert.EqualValues(t, http.StatusBadRequest, logs[0]["responseInfo"].(map[string]any)["status"])
			assert.Contains(t, logs[0]["requestInfo"].(map[string]any)["body"], "unreadable body")
		})
	}
}

func TestDecodeRequestBody(t *testing.T) {
	form := http.Header{"Content-Type": []string{"application/x-www-form-urlencoded"}}
	assert.Equal(t, map[string]any{"a": "1", "b": []string{"2", "3"}}, decodeRequestBody(form, []byte("a=1&b=2&b=3")))

	binary := http.Header{"Content-Type": []string{"image/png"}}
	assert.Equal(t, "(binary image/png, 4 bytes)", decodeRequestBody(binary, []byte{0x89, 'P', 'N', 'G'}))

	text := http.Header{"Content-Type": []string{"text/plain"}}
	assert.Equal(t, "hello", decodeRequestBody(text, []byte("hello")))

	assert.Equal(t, map[string]any{}, decodeRequestBody(http.Header{}, nil))
	assert.Equal(t, "{broken", decodeRequestBody(http.Header{}, []byte("{broken")))
}

func TestResponseRecorder_Truncates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	recorder := newResponseRecorder(c.Writer, 4)

	calls := 0
	recorder.OnComplete(func(r *responseRecorder) { calls++ })

	_, err := recorder.WriteString("abcdef")
	require.NoError(t, err)
	recorder.complete()
	recorder.complete()

	assert.Equal(t, "abcd", recorder.Body())
	assert.True(t, recorder.Truncated())
	assert.Equal(t, "abcdef", w.Body.String())
	assert.Equal(t, 1, calls)
}
