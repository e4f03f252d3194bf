package command

import (
	"context"
	"fmt"

	"blogging/internal/service"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type TokenHandler struct {
	logger      *zap.Logger
	postService *service.PostService
}

func NewTokenHandler(logger *zap.Logger, postService *service.PostService) *TokenHandler {
	return &TokenHandler{
		logger:      logger,
		postService: postService,
	}
}

// Issue 為既有文章重新簽發 x-token，輸出到 stdout
func (handler *TokenHandler) Issue(cmd *cobra.Command, args []string) error {
	id, err := primitive.ObjectIDFromHex(args[0])
	if err != nil {
		return fmt.Errorf("invalid post id %q: %w", args[0], err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	token, err := handler.postService.IssueToken(ctx, id)
	if err != nil {
		return err
	}
	handler.logger.Info("token issued", zap.String("postId", id.Hex()))
	cmd.Println(token)
	return nil
}
