package core

import "github.com/golang-jwt/jwt/v4"

// Claims 寫入 x-token 的內容；Subject 與 PostID 皆為文章 ID
type Claims struct {
	PostID string `json:"postId"`
	jwt.RegisteredClaims
}

const (
	HeaderToken           = "x-token"
	ContextTokenSubject   = "tokenSubject"
	ContextRequestStart   = "requestDuration"
	ContextRequestBodyErr = "requestBodyError"
)
