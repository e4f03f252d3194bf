package dto

import (
	"blogging/internal/database/mongodb/model"
	"blogging/internal/pkg/request"
	"strings"
)

const InvalidAuthorMessage = "Please enter a valid name. Only letters are allowed."

type CreatePostDto struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Author  string `json:"author" binding:"required,personname"`
}

func (CreatePostDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"Title.required":    "title is required",
		"Content.required":  "content is required",
		"Author.required":   "author is required",
		"Author.personname": InvalidAuthorMessage,
	}
}

// UpdatePostDto 空字串視為未提供
type UpdatePostDto struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Author  *string `json:"author" binding:"omitempty,personname"`
}

func (UpdatePostDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"Author.personname": InvalidAuthorMessage,
	}
}

// ToModel 去掉空字串欄位；作者仍為明文，由 service 雜湊
func (d UpdatePostDto) ToModel() model.PostUpdate {
	return model.PostUpdate{
		Title:   nonEmpty(d.Title),
		Content: nonEmpty(d.Content),
		Author:  nonEmpty(d.Author),
	}
}

func nonEmpty(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}

// CreatePostResponseDto 只用於 swagger 文件；實際回傳 model.Post
type CreatePostResponseDto = model.Post
