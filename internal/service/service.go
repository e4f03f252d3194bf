package service

import (
	"context"

	"blogging/internal/core"
	client "blogging/internal/database/client"
	fluentdRepo "blogging/internal/database/fluentd/repository"
	"blogging/internal/database/mongodb/model"
	mongoRepo "blogging/internal/database/mongodb/repository"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ProviderSet = wire.NewSet(
	NewTokenService,
	NewPostService,
	NewLogService,
	NewHealthService,
	wire.Bind(new(PostStore), new(*mongoRepo.PostRepository)),
	wire.Bind(new(LogStore), new(*mongoRepo.LogEntryRepository)),
	wire.Bind(new(LogMirror), new(*fluentdRepo.LogRepository)),
	wire.Bind(new(Pinger), new(*client.MongoClient)),
)

// PostStore 文章儲存；找不到或已軟刪除時回傳 mongo.ErrNoDocuments
type PostStore interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	ListActive(ctx context.Context) ([]*model.PostSummary, error)
	GetActiveByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	UpdateActiveByID(ctx context.Context, id primitive.ObjectID, update model.PostUpdate) error
	SoftDeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// LogStore 稽核紀錄儲存，只新增不修改
type LogStore interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	List(ctx context.Context, opts core.ListOptions) ([]*model.LogEntry, error)
}

// LogMirror 稽核紀錄的次要輸出（Fluentd）
type LogMirror interface {
	LogRequest(ctx context.Context, entry *model.LogEntry) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}
