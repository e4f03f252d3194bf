package repository

import (
	"time"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson"
)

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewPostRepository,
	NewLogEntryRepository,
)

// 啟動時建索引的等待上限
const ensureIndexTimeout = 10 * time.Second

func withUpdatedAt(update bson.M) bson.M {
	// 確保 $currentDate 存在
	currentDate, ok := update["$currentDate"].(bson.M)
	if !ok || currentDate == nil {
		currentDate = bson.M{}
	}
	currentDate["updatedAt"] = true
	update["$currentDate"] = currentDate
	return update
}

// activeFilter 只比對未軟刪除的文件
func activeFilter(filter bson.M) bson.M {
	filter["isDeleted"] = false
	return filter
}
