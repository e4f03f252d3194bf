package service

import (
	"context"
	"errors"

	"blogging/internal/core"
	"blogging/internal/database/mongodb/model"
	"blogging/internal/dto"
	cErr "blogging/internal/pkg/error"
	"blogging/internal/telemetry"
	"blogging/utils/hash"
	"blogging/utils/validate"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	PostNotFoundMessage = "Blog doesn't exist with this ID"
	PostUpdatedMessage  = "Blog updated successfully"
	PostDeletedMessage  = "Blog post deleted successfully"
	EmptyUpdateMessage  = "Provide at least one of title, content or author to update"
	createFailedMessage = "Failed to create blog post"
)

type PostService struct {
	trace        *telemetry.Trace
	logger       *zap.Logger
	store        PostStore
	tokenService *TokenService
}

func NewPostService(
	trace *telemetry.Trace,
	logger *zap.Logger,
	store PostStore,
	tokenService *TokenService,
) *PostService {
	return &PostService{
		trace:        trace,
		logger:       logger,
		store:        store,
		tokenService: tokenService,
	}
}

// Create 儲存文章並簽發以文章 ID 為 subject 的 token
func (s *PostService) Create(ctx context.Context, req *dto.CreatePostDto) (_ *model.Post, token string, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if !validate.ValidateName(req.Author) {
		return nil, "", cErr.ValidateErr(dto.InvalidAuthorMessage)
	}
	hashedAuthor, err := hash.Author(req.Author)
	if err != nil {
		s.logger.Error("hash author failed", zap.Error(err))
		return nil, "", cErr.InternalServer(createFailedMessage)
	}

	post, err := s.store.Create(ctx, &model.Post{
		Title:   req.Title,
		Content: req.Content,
		Author:  hashedAuthor,
	})
	if err != nil {
		return nil, "", cErr.DatabaseError(err.Error())
	}

	token, err = s.tokenService.Issue(post.ID.Hex())
	if err != nil {
		return nil, "", cErr.InternalServer(err.Error())
	}
	s.trace.ApplyTraceAttributes(span, core.TracePostMeta{Op: "create", PostID: post.ID.Hex()})
	return post, token, nil
}

func (s *PostService) List(ctx context.Context) (_ []*model.PostSummary, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	posts, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, cErr.DatabaseError(err.Error())
	}
	s.trace.ApplyTraceAttributes(span, core.TracePostMeta{Op: "list", ResultCount: len(posts)})
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id primitive.ObjectID) (_ *model.Post, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()
	s.trace.ApplyTraceAttributes(span, core.TracePostMeta{Op: "get", PostID: id.Hex()})

	post, err := s.store.GetActiveByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return post, nil
}

// Update 至少需要一個非空欄位；作者會重新驗證並雜湊
func (s *PostService) Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdatePostDto) (returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	update := req.ToModel()
	s.trace.ApplyTraceAttributes(span, core.TracePostMeta{Op: "update", PostID: id.Hex(), Fields: update.Fields()})
	if update.IsEmpty() {
		return cErr.ValidateErr(EmptyUpdateMessage)
	}
	if update.Author != nil {
		if !validate.ValidateName(*update.Author) {
			return cErr.ValidateErr(dto.InvalidAuthorMessage)
		}
		hashedAuthor, err := hash.Author(*update.Author)
		if err != nil {
			s.logger.Error("hash author failed", zap.Error(err))
			return cErr.InternalServer(err.Error())
		}
		update.Author = &hashedAuthor
	}

	if err := s.store.UpdateActiveByID(ctx, id, update); err != nil {
		return mapStoreError(err)
	}
	return nil
}

// Delete 軟刪除；已刪除的文章回傳 404
func (s *PostService) Delete(ctx context.Context, id primitive.ObjectID) (returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()
	s.trace.ApplyTraceAttributes(span, core.TracePostMeta{Op: "delete", PostID: id.Hex()})

	if err := s.store.SoftDeleteByID(ctx, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}

// IssueToken 為既有文章重新簽發 token（CLI 使用）
func (s *PostService) IssueToken(ctx context.Context, id primitive.ObjectID) (string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return "", err
	}
	token, err := s.tokenService.Issue(id.Hex())
	if err != nil {
		return "", cErr.InternalServer(err.Error())
	}
	return token, nil
}

func mapStoreError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return cErr.NotFound(PostNotFoundMessage, cErr.POST_NOT_FOUND)
	}
	return cErr.DatabaseError(err.Error())
}
