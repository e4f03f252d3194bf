package router

import (
	"blogging/internal/handler"

	"github.com/gin-gonic/gin"
)

type LogRouter struct {
	logHandler *handler.LogHandler
}

func NewLogRouter(logHandler *handler.LogHandler) *LogRouter {
	return &LogRouter{logHandler: logHandler}
}

func (logRouter *LogRouter) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/logs", logRouter.logHandler.List)
}
