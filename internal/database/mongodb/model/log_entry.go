package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogEntry 一筆 HTTP 請求/回應稽核紀錄，寫入後不再修改
type LogEntry struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	RequestInfo  RequestInfo        `json:"requestInfo" bson:"requestInfo"`
	ResponseInfo ResponseInfo       `json:"responseInfo" bson:"responseInfo"`
}

type RequestInfo struct {
	Method    string         `json:"method" bson:"method"`
	URL       string         `json:"url" bson:"url"`
	Headers   map[string]any `json:"headers" bson:"headers"`
	Query     map[string]any `json:"query" bson:"query"`
	Body      any            `json:"body" bson:"body"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
}

type ResponseInfo struct {
	Status  int            `json:"status" bson:"status"`
	Headers map[string]any `json:"headers" bson:"headers"`
	Body    string         `json:"body" bson:"body"`
	Time    int64          `json:"time" bson:"time"` // 毫秒
}
