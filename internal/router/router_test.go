package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogging/config"
	"blogging/internal/core"
	"blogging/internal/database/client"
	"blogging/internal/database/memory"
	"blogging/internal/database/mongodb/model"
	redisRepo "blogging/internal/database/redis/repository"
	"blogging/internal/dto"
	"blogging/internal/handler"
	"blogging/internal/middleware"
	"blogging/internal/pkg/response"
	"blogging/internal/service"
	"blogging/internal/telemetry"
	"blogging/utils/hash"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type testServer struct {
	engine    *gin.Engine
	audit     *middleware.Logger
	postStore *memory.PostStore
	logStore  *memory.LogStore
	tokens    *service.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	conf := &config.Configuration{
		App:   config.App{Env: "test", Name: "blogging", Version: "9.9.9"},
		Token: config.Token{Secret: "router-secret"},
	}
	logger := zap.NewNop()
	trace := telemetry.NewNoopTrace()
	metric := telemetry.NewMetric(conf)

	postStore := memory.NewPostStore()
	logStore := memory.NewLogStore()
	tokens, err := service.NewTokenService(conf)
	require.NoError(t, err)
	postService := service.NewPostService(trace, logger, postStore, tokens)
	logService := service.NewLogService(trace, logger, logStore, nil)
	healthService := service.NewHealthService(nil, logger)

	redisClient, _, err := client.NewRedisClient(logger, conf)
	require.NoError(t, err)
	rateLimit := middleware.NewRateLimit(logger, trace, metric, conf, redisRepo.NewRateLimiterRepository(trace, redisClient))

	audit := middleware.NewLogger(logger, trace, metric, logService)
	versionHandler := handler.NewVersionHandler(conf)
	engine := NewRouter(
		conf,
		middleware.NewTraceEntry(trace, metric, conf),
		audit,
		middleware.NewCors(trace),
		middleware.NewRecovery(logger, trace),
		middleware.NewDecompress(trace),
		middleware.NewResponse(logger, trace),
		versionHandler,
		NewPostRouter(handler.NewPostHandler(trace, postService), middleware.NewToken(logger, trace, tokens), rateLimit),
		NewLogRouter(handler.NewLogHandler(trace, logService)),
		NewHealthRouter(handler.NewHealthHandler(healthService), versionHandler),
	)
	return &testServer{engine: engine, audit: audit, postStore: postStore, logStore: logStore, tokens: tokens}
}

func (s *testServer) request(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(core.HeaderToken, token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.audit.Wait(ctx))
	return w
}

func (s *testServer) create(t *testing.T, title, content, author string) (model.Post, string) {
	t.Helper()
	body, _ := json.Marshal(dto.CreatePostDto{Title: title, Content: content, Author: author})
	w := s.request(t, http.MethodPost, "/create", string(body), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var post model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	return post, w.Header().Get(core.HeaderToken)
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Error
}

func TestCreatePost(t *testing.T) {
	s := newTestServer(t)

	post, token := s.create(t, "Hello", "World", "Mary Jane")

	assert.False(t, post.ID.IsZero())
	assert.Equal(t, "Hello", post.Title)
	assert.False(t, post.IsDeleted)
	assert.True(t, hash.MatchAuthor(post.Author, "Mary Jane"))
	require.NotEmpty(t, token)

	subject, err := s.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, post.ID.Hex(), subject)
}

func TestCreatePost_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "invalid author", body: `{"title":"t","content":"c","author":"R2D2"}`, message: dto.InvalidAuthorMessage},
		{name: "missing title", body: `{"content":"c","author":"Ann"}`},
		{name: "missing content", body: `{"title":"t","author":"Ann"}`},
		{name: "missing author", body: `{"title":"t","content":"c"}`},
		{name: "empty author", body: `{"title":"t","content":"c","author":""}`},
		{name: "not json", body: `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			w := s.request(t, http.MethodPost, "/create", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, w.Header().Get(core.HeaderToken))
			if tt.message != "" {
				assert.Equal(t, tt.message, errorMessage(t, w))
			}

			// 被拒絕的建立不可留下任何文件
			assert.Zero(t, s.postStore.Len())
			w = s.request(t, http.MethodGet, "/getBlog", "", "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `[]`, w.Body.String())
		})
	}
}

func TestListAndGetPosts(t *testing.T) {
	s := newTestServer(t)
	first, _ := s.create(t, "One", "1", "Ann")
	s.create(t, "Two", "2", "Bob")

	w := s.request(t, http.MethodGet, "/getBlog", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	for _, item := range list {
		assert.NotContains(t, item, "isDeleted")
		assert.NotContains(t, item, "__v")
		assert.Contains(t, item, "_id")
	}

	w = s.request(t, http.MethodGet, "/getBlog/"+first.ID.Hex(), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, first.ID, got.ID)

	w = s.request(t, http.MethodGet, "/getBlog/"+primitive.NewObjectID().Hex(), "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, service.PostNotFoundMessage, errorMessage(t, w))

	w = s.request(t, http.MethodGet, "/getBlog/not-an-id", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPosts_Empty(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodGet, "/getBlog", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUpdatePost(t *testing.T) {
	s := newTestServer(t)
	post, token := s.create(t, "Old", "Body", "Ann")
	target := "/update/" + post.ID.Hex()

	w := s.request(t, http.MethodPut, target, `{"title":"New"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.NoTokenMessage, errorMessage(t, w))

	w = s.request(t, http.MethodPut, target, `{"title":"New"}`, "garbage")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, middleware.InvalidTokenMessage, errorMessage(t, w))

	w = s.request(t, http.MethodPut, target, `{"title":"","content":""}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.request(t, http.MethodPut, target, `{"author":"B0b"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.InvalidAuthorMessage, errorMessage(t, w))

	w = s.request(t, http.MethodPut, target, `{"title":"New","author":"Bob"}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Blog updated successfully"}`, w.Body.String())

	stored, ok := s.postStore.Raw(post.ID)
	require.True(t, ok)
	assert.Equal(t, "New", stored.Title)
	assert.Equal(t, "Body", stored.Content)
	assert.True(t, hash.MatchAuthor(stored.Author, "Bob"))
	assert.EqualValues(t, 1, stored.Version)

	w = s.request(t, http.MethodPut, "/update/"+primitive.NewObjectID().Hex(), `{"title":"x"}`, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePost(t *testing.T) {
	s := newTestServer(t)
	post, token := s.create(t, "Bye", "Soon", "Ann")
	target := "/delete/" + post.ID.Hex()

	w := s.request(t, http.MethodDelete, target, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.request(t, http.MethodDelete, target, "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Blog post deleted successfully"}`, w.Body.String())

	stored, ok := s.postStore.Raw(post.ID)
	require.True(t, ok)
	assert.True(t, stored.IsDeleted)

	w = s.request(t, http.MethodGet, "/getBlog/"+post.ID.Hex(), "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.request(t, http.MethodGet, "/getBlog", "", "")
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.request(t, http.MethodDelete, target, "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.request(t, http.MethodPut, "/update/"+post.ID.Hex(), `{"title":"again"}`, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListLogs(t *testing.T) {
	s := newTestServer(t)
	s.request(t, http.MethodGet, "/getBlog?first=1", "", "")
	s.request(t, http.MethodGet, "/getBlog?second=1", "", "")
	s.request(t, http.MethodGet, "/getBlog?third=1", "", "")
	s.request(t, http.MethodGet, "/health/liveness", "", "")
	require.Equal(t, 3, s.logStore.Len())

	w := s.request(t, http.MethodGet, "/logs?page=1&limit=2", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page []model.LogEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page, 2)
	assert.Equal(t, "/getBlog?third=1", page[0].RequestInfo.URL)
	assert.Equal(t, "/getBlog?second=1", page[1].RequestInfo.URL)
	assert.Equal(t, http.StatusOK, page[0].ResponseInfo.Status)

	w = s.request(t, http.MethodGet, "/logs?page=2&limit=2", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page, 2)
	assert.Equal(t, "/getBlog?second=1", page[0].RequestInfo.URL)
	assert.Equal(t, "/getBlog?first=1", page[1].RequestInfo.URL)

	for _, query := range []string{"page=0", "limit=-1", "page=abc", "limit=x"} {
		w = s.request(t, http.MethodGet, "/logs?"+query, "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
	// 超大頁碼不可溢位成負的 skip
	w = s.request(t, http.MethodGet, "/logs?page=4611686018427387904&limit=100", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestVersionAndHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodGet, "/version", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "9.9.9", w.Header().Get(handler.HeaderAppVersion))
	var info handler.RuntimeInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "blogging", info.Name)

	w = s.request(t, http.MethodGet, "/health/readiness", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.request(t, http.MethodGet, "/health/liveness", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, s.logStore.Len())
}
