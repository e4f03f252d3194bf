package repository

import (
	"context"
	"fmt"

	"blogging/internal/core"
	client "blogging/internal/database/client"
	"blogging/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// LogEntryRepository append-only，沒有更新或刪除
type LogEntryRepository struct {
	collection *mongo.Collection
}

func NewLogEntryRepository(logger *zap.Logger, mongoClient *client.MongoClient) *LogEntryRepository {
	repository := &LogEntryRepository{
		collection: mongoClient.Collection(core.MongoCollectionLogs),
	}
	ctx, cancel := context.WithTimeout(context.Background(), ensureIndexTimeout)
	defer cancel()
	if err := repository.ensureIndexes(ctx); err != nil {
		logger.Warn("failed to create mongo indexes",
			zap.String("collection", string(core.MongoCollectionLogs)),
			zap.Error(err),
		)
	}
	return repository
}

func (repository *LogEntryRepository) ensureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "requestInfo.timestamp", Value: -1}},
			Options: options.Index().SetName("idx_requestInfo_timestamp_desc"),
		},
	}
	_, err := repository.collection.Indexes().CreateMany(ctx, models)
	return err
}

func (repository *LogEntryRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	entry.ID = primitive.NilObjectID
	insertResult, err := repository.collection.InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	entry.ID = objectID
	return nil
}

// List 依請求時間新到舊分頁
func (repository *LogEntryRepository) List(ctx context.Context, opts core.ListOptions) ([]*model.LogEntry, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "requestInfo.timestamp", Value: -1}}).
		SetSkip(opts.Skip()).
		SetLimit(opts.Size)

	cursor, err := repository.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := make([]*model.LogEntry, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
