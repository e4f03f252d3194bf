package response

import (
	cErr "blogging/internal/pkg/error"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ContextDataKey   = "data"
	ContextStatusKey = "status"
)

// ErrorResponse 所有錯誤回應的格式
type ErrorResponse struct {
	RequestID string `json:"requestID"`
	Code      int    `json:"code"`
	Error     string `json:"error"`
}

// MessageResponse 更新/刪除成功時的回應
type MessageResponse struct {
	Message string `json:"message"`
}

// Create 交由 Response middleware 以 201 輸出
func Create(c *gin.Context, data any) {
	c.Set(ContextDataKey, data)
	c.Set(ContextStatusKey, http.StatusCreated)
	c.Abort()
}

// Success 交由 Response middleware 以 200 輸出
func Success(c *gin.Context, data any) {
	c.Set(ContextDataKey, data)
	c.Set(ContextStatusKey, http.StatusOK)
	c.Abort()
}

func Message(c *gin.Context, message string) {
	Success(c, MessageResponse{Message: message})
}

func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func Fail(c *gin.Context, requestID string, httpCode int, errorCode int, desc string) {
	c.JSON(httpCode, ErrorResponse{
		RequestID: requestID,
		Code:      errorCode,
		Error:     desc,
	})
	c.Abort()
}

// FailByErr 5xx 一律只回通用訊息
func FailByErr(c *gin.Context, requestID string, err error) {
	appErr := cErr.From(err)
	desc := appErr.ErrorDesc()
	if appErr.IsServerError() {
		desc = http.StatusText(appErr.HttpCode())
	}
	Fail(c, requestID, appErr.HttpCode(), appErr.ErrorCode(), desc)
}
