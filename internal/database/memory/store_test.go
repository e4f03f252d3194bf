package memory

import (
	"context"
	"testing"
	"time"

	"blogging/internal/core"
	"blogging/internal/database/mongodb/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newTestPost(t *testing.T, store *PostStore) *model.Post {
	post, err := store.Create(context.Background(), &model.Post{
		Title:   "Hello",
		Content: "World",
		Author:  "hash",
	})
	require.NoError(t, err)
	return post
}

func TestPostStore_CreateAndGet(t *testing.T) {
	store := NewPostStore()
	post := newTestPost(t, store)

	assert.False(t, post.ID.IsZero())
	assert.False(t, post.IsDeleted)
	assert.Equal(t, int64(0), post.Version)

	got, err := store.GetActiveByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)

	_, err = store.GetActiveByID(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestPostStore_SoftDeleteHidesPost(t *testing.T) {
	store := NewPostStore()
	post := newTestPost(t, store)
	ctx := context.Background()

	require.NoError(t, store.SoftDeleteByID(ctx, post.ID))

	_, err := store.GetActiveByID(ctx, post.ID)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)

	list, err := store.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	raw, ok := store.Raw(post.ID)
	require.True(t, ok)
	assert.True(t, raw.IsDeleted)

	// 第二次刪除視為不存在
	assert.ErrorIs(t, store.SoftDeleteByID(ctx, post.ID), mongo.ErrNoDocuments)
	title := "x"
	assert.ErrorIs(t, store.UpdateActiveByID(ctx, post.ID, model.PostUpdate{Title: &title}), mongo.ErrNoDocuments)
}

func TestPostStore_UpdateBumpsVersion(t *testing.T) {
	store := NewPostStore()
	post := newTestPost(t, store)
	ctx := context.Background()

	title := "New title"
	require.NoError(t, store.UpdateActiveByID(ctx, post.ID, model.PostUpdate{Title: &title}))

	got, err := store.GetActiveByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, "World", got.Content)
	assert.Equal(t, int64(1), got.Version)
}

func TestLogStore_ListNewestFirstWithPaging(t *testing.T) {
	store := NewLogStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 15; i++ {
		require.NoError(t, store.Create(ctx, &model.LogEntry{
			RequestInfo: model.RequestInfo{Method: "GET", URL: "/getBlog", Timestamp: base.Add(time.Duration(i) * time.Minute)},
		}))
	}

	first, err := store.List(ctx, core.ListOptions{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, base.Add(14*time.Minute), first[0].RequestInfo.Timestamp)

	second, err := store.List(ctx, core.ListOptions{Page: 2, Size: 10})
	require.NoError(t, err)
	assert.Len(t, second, 5)

	third, err := store.List(ctx, core.ListOptions{Page: 3, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, third)
}

func TestLogStore_Failing(t *testing.T) {
	store := NewLogStore()
	store.SetFailing(true)
	err := store.Create(context.Background(), &model.LogEntry{})
	assert.ErrorIs(t, err, ErrLogStoreUnavailable)
	assert.Equal(t, 0, store.Len())
}
