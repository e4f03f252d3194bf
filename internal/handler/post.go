package handler

import (
	"blogging/internal/core"
	"blogging/internal/dto"
	"blogging/internal/pkg/response"
	"blogging/internal/service"
	"blogging/internal/telemetry"
	"blogging/utils/validate"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	trace       *telemetry.Trace
	postService *service.PostService
}

func NewPostHandler(trace *telemetry.Trace, postService *service.PostService) *PostHandler {
	return &PostHandler{trace: trace, postService: postService}
}

// Create 新增文章
// @Summary 新增文章並取得 x-token
// @Tags Post
// @Accept json
// @Produce json
// @Param body body dto.CreatePostDto true "文章內容"
// @Success 201 {object} dto.CreatePostResponseDto
// @Header 201 {string} x-token "修改與刪除此文章用的 token，一小時後過期"
// @Failure 400 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /create [post]
func (h *PostHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.CreatePostDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		response.AbortWithError(c, respErr)
		return
	}

	post, token, err := h.postService.Create(ctx, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	c.Header(core.HeaderToken, token)
	response.Create(c, post)
}

// List 取得所有未刪除的文章
// @Summary 文章列表
// @Tags Post
// @Produce json
// @Success 200 {array} model.PostSummary
// @Failure 500 {object} response.ErrorResponse
// @Router /getBlog [get]
func (h *PostHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	posts, err := h.postService.List(ctx)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, posts)
}

// Get 取得單篇文章
// @Summary 取得文章
// @Tags Post
// @Produce json
// @Param blogId path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /getBlog/{blogId} [get]
func (h *PostHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseObjectID(c, "blogId")
	if cause != nil {
		response.AbortWithError(c, respErr)
		return
	}

	post, err := h.postService.Get(ctx, id)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, post)
}

// Update 修改文章（至少一個欄位）
// @Summary 修改文章
// @Tags Post
// @Security TokenAuth
// @Accept json
// @Produce json
// @Param blogId path string true "Post ID"
// @Param body body dto.UpdatePostDto true "要修改的欄位"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /update/{blogId} [put]
func (h *PostHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseObjectID(c, "blogId")
	if cause != nil {
		response.AbortWithError(c, respErr)
		return
	}

	var req dto.UpdatePostDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.postService.Update(ctx, id, &req); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Message(c, service.PostUpdatedMessage)
}

// Delete 軟刪除文章
// @Summary 刪除文章
// @Tags Post
// @Security TokenAuth
// @Produce json
// @Param blogId path string true "Post ID"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /delete/{blogId} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseObjectID(c, "blogId")
	if cause != nil {
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.postService.Delete(ctx, id); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Message(c, service.PostDeletedMessage)
}
