package core

import "math"

// ─── Database Types ────────────────────────────────────────────────────────────

type MongoDatabaseName string
type MongoCollection string
type RedisKey string
type FluentdSubTag string

// ─── MongoDB ───────────────────────────────────────────────────────────────────
const (
	MongoDBBlogging MongoDatabaseName = "blogging"
)

// MongoDB collections
const (
	MongoCollectionPosts MongoCollection = "posts"
	MongoCollectionLogs  MongoCollection = "logs"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyServerName RedisKey = "blogging"   // 伺服器名稱
	RedisKeyRateLimit  RedisKey = "rate_limit" // 建立文章限流
)

const (
	FluentdRequest FluentdSubTag = "request_log"
)

// ─── Pagination ────────────────────────────────────────────────────────────────

const (
	DefaultPage     int64 = 1
	DefaultPageSize int64 = 10
	MaxPageSize     int64 = 100
)

type ListOptions struct {
	Page int64 `json:"page,omitempty" bson:"page,omitempty"`
	Size int64 `json:"size,omitempty" bson:"size,omitempty"`
}

// Skip 換算 Mongo skip 筆數（page 從 1 開始）；超出 int64 時取上限
func (o ListOptions) Skip() int64 {
	if o.Page <= 1 || o.Size <= 0 {
		return 0
	}
	if o.Page-1 > math.MaxInt64/o.Size {
		return math.MaxInt64
	}
	return (o.Page - 1) * o.Size
}
