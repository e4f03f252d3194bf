package router

import (
	"blogging/internal/handler"
	"blogging/internal/middleware"

	"github.com/gin-gonic/gin"
)

const createScope = "create"

type PostRouter struct {
	postHandler         *handler.PostHandler
	tokenMiddleware     *middleware.Token
	ratelimitMiddleware *middleware.RateLimit
}

func NewPostRouter(
	postHandler *handler.PostHandler,
	tokenMiddleware *middleware.Token,
	ratelimitMiddleware *middleware.RateLimit,
) *PostRouter {
	return &PostRouter{
		postHandler:         postHandler,
		tokenMiddleware:     tokenMiddleware,
		ratelimitMiddleware: ratelimitMiddleware,
	}
}

// RegisterRoutes 修改與刪除需要 x-token
func (postRouter *PostRouter) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/create", postRouter.ratelimitMiddleware.Guard(createScope), postRouter.postHandler.Create)
	engine.GET("/getBlog", postRouter.postHandler.List)
	engine.GET("/getBlog/:blogId", postRouter.postHandler.Get)

	guarded := engine.Group("")
	guarded.Use(postRouter.tokenMiddleware.Guard())
	{
		guarded.PUT("/update/:blogId", postRouter.postHandler.Update)
		guarded.DELETE("/delete/:blogId", postRouter.postHandler.Delete)
	}
}
