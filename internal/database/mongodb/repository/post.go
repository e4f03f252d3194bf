package repository

import (
	"context"
	"fmt"
	"time"

	"blogging/internal/core"
	client "blogging/internal/database/client"
	"blogging/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type PostRepository struct {
	collection *mongo.Collection
}

func NewPostRepository(logger *zap.Logger, mongoClient *client.MongoClient) *PostRepository {
	repository := &PostRepository{
		collection: mongoClient.Collection(core.MongoCollectionPosts),
	}
	ctx, cancel := context.WithTimeout(context.Background(), ensureIndexTimeout)
	defer cancel()
	if err := repository.ensureIndexes(ctx); err != nil {
		logger.Warn("failed to create mongo indexes",
			zap.String("collection", string(core.MongoCollectionPosts)),
			zap.Error(err),
		)
	}
	return repository
}

// 建索引：列表只查 isDeleted=false，依建立時間排序
func (repository *PostRepository) ensureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "isDeleted", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_isDeleted_createdAt"),
		},
	}
	_, err := repository.collection.Indexes().CreateMany(ctx, models)
	return err
}

// Create 新增文章；ID、isDeleted、時間戳與 __v 由這裡決定
func (repository *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	nowUTC := time.Now().UTC()
	post.ID = primitive.NilObjectID
	post.IsDeleted = false
	post.CreatedAt = nowUTC
	post.UpdatedAt = nowUTC
	post.Version = 0

	insertResult, err := repository.collection.InsertOne(ctx, post)
	if err != nil {
		return nil, err
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	post.ID = objectID
	return post, nil
}

// ListActive 列出未刪除的文章（只投影公開欄位）
func (repository *PostRepository) ListActive(ctx context.Context) ([]*model.PostSummary, error) {
	opts := options.Find().
		SetProjection(bson.M{"isDeleted": 0, "createdAt": 0, "updatedAt": 0, "__v": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := repository.collection.Find(ctx, activeFilter(bson.M{}), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := make([]*model.PostSummary, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GetActiveByID 軟刪除的文章視同不存在，回傳 mongo.ErrNoDocuments
func (repository *PostRepository) GetActiveByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	if err := repository.collection.FindOne(ctx, activeFilter(bson.M{"_id": id})).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateActiveByID 以單一條件式更新套用欄位變更
func (repository *PostRepository) UpdateActiveByID(ctx context.Context, id primitive.ObjectID, update model.PostUpdate) error {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if update.Author != nil {
		set["author"] = *update.Author
	}
	if len(set) == 0 {
		return nil
	}

	doc := bson.M{
		"$set": set,
		"$inc": bson.M{"__v": 1},
	}
	result, err := repository.collection.UpdateOne(ctx, activeFilter(bson.M{"_id": id}), withUpdatedAt(doc))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SoftDeleteByID 標記 isDeleted=true；已刪除的文章回傳 mongo.ErrNoDocuments
func (repository *PostRepository) SoftDeleteByID(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"isDeleted": true}}
	result, err := repository.collection.UpdateOne(ctx, activeFilter(bson.M{"_id": id}), withUpdatedAt(update))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
