package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`                       // 文章唯一識別碼
	Title     string             `json:"title" bson:"title"`                             // 標題
	Content   string             `json:"content" bson:"content"`                         // 內文
	Author    string             `json:"author" bson:"author"`                           // 作者名稱（bcrypt 雜湊）
	IsDeleted bool               `json:"isDeleted" bson:"isDeleted"`                     // 軟刪除旗標
	CreatedAt time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"` // 建立時間
	UpdatedAt time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"` // 更新時間
	Version   int64              `json:"__v" bson:"__v"`                                 // 修訂次數
}

// PostSummary 列表用的投影，只含公開欄位
type PostSummary struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Title   string             `json:"title" bson:"title"`
	Content string             `json:"content" bson:"content"`
	Author  string             `json:"author" bson:"author"`
}

// PostUpdate nil 代表不更新該欄位
type PostUpdate struct {
	Title   *string
	Content *string
	Author  *string
}

// Fields 回傳有值的 bson 欄位名稱
func (u PostUpdate) Fields() []string {
	var fields []string
	if u.Title != nil {
		fields = append(fields, "title")
	}
	if u.Content != nil {
		fields = append(fields, "content")
	}
	if u.Author != nil {
		fields = append(fields, "author")
	}
	return fields
}

func (u PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Author == nil
}
