// Package memory 提供與 Mongo repository 相同方法集的記憶體實作，供測試與本機開發使用。
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"blogging/internal/core"
	"blogging/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PostStore 文章的記憶體實作，未找到時回傳 mongo.ErrNoDocuments
type PostStore struct {
	mu    sync.RWMutex
	posts map[primitive.ObjectID]*model.Post
	order []primitive.ObjectID
	now   func() time.Time
}

func NewPostStore() *PostStore {
	return &PostStore{
		posts: make(map[primitive.ObjectID]*model.Post),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *PostStore) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nowUTC := s.now()
	post.ID = primitive.NewObjectID()
	post.IsDeleted = false
	post.CreatedAt = nowUTC
	post.UpdatedAt = nowUTC
	post.Version = 0

	stored := *post
	s.posts[post.ID] = &stored
	s.order = append(s.order, post.ID)
	return post, nil
}

func (s *PostStore) ListActive(ctx context.Context) ([]*model.PostSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*model.PostSummary, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		post := s.posts[s.order[i]]
		if post.IsDeleted {
			continue
		}
		results = append(results, &model.PostSummary{
			ID:      post.ID,
			Title:   post.Title,
			Content: post.Content,
			Author:  post.Author,
		})
	}
	return results, nil
}

func (s *PostStore) GetActiveByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok || post.IsDeleted {
		return nil, mongo.ErrNoDocuments
	}
	copied := *post
	return &copied, nil
}

func (s *PostStore) UpdateActiveByID(ctx context.Context, id primitive.ObjectID, update model.PostUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok || post.IsDeleted {
		return mongo.ErrNoDocuments
	}
	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Content != nil {
		post.Content = *update.Content
	}
	if update.Author != nil {
		post.Author = *update.Author
	}
	post.Version++
	post.UpdatedAt = s.now()
	return nil
}

func (s *PostStore) SoftDeleteByID(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok || post.IsDeleted {
		return mongo.ErrNoDocuments
	}
	post.IsDeleted = true
	post.UpdatedAt = s.now()
	return nil
}

// Raw 直接取出儲存內容（含已刪除），僅供測試斷言
func (s *PostStore) Raw(id primitive.ObjectID) (model.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return model.Post{}, false
	}
	return *post, true
}

// Len 儲存的文章數（含已刪除）
func (s *PostStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// ErrLogStoreUnavailable 模擬儲存失敗
var ErrLogStoreUnavailable = errors.New("log store unavailable")

// LogStore 稽核紀錄的記憶體實作
type LogStore struct {
	mu      sync.RWMutex
	entries []*model.LogEntry
	failing bool
}

func NewLogStore() *LogStore {
	return &LogStore{}
}

// SetFailing 讓後續 Create 回傳 ErrLogStoreUnavailable
func (s *LogStore) SetFailing(failing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = failing
}

func (s *LogStore) Create(ctx context.Context, entry *model.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return ErrLogStoreUnavailable
	}
	entry.ID = primitive.NewObjectID()
	stored := *entry
	s.entries = append(s.entries, &stored)
	return nil
}

func (s *LogStore) List(ctx context.Context, opts core.ListOptions) ([]*model.LogEntry, error) {
	s.mu.RLock()
	sorted := make([]*model.LogEntry, len(s.entries))
	copy(sorted, s.entries)
	s.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RequestInfo.Timestamp.After(sorted[j].RequestInfo.Timestamp)
	})

	skip := opts.Skip()
	if skip >= int64(len(sorted)) {
		return []*model.LogEntry{}, nil
	}
	end := int64(len(sorted))
	if opts.Size > 0 && skip+opts.Size < end {
		end = skip + opts.Size
	}
	return sorted[skip:end], nil
}

func (s *LogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
