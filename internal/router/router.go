package router

import (
	docs "blogging/cmd/docs"
	"blogging/config"
	"blogging/internal/handler"
	"blogging/internal/middleware"
	"blogging/utils/validate"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var ProviderSet = wire.NewSet(
	NewRouter,
	NewPostRouter,
	NewLogRouter,
	NewHealthRouter,
)

// 透過依賴注入將 middleware 與各組路由掛到同一個 gin.Engine
func NewRouter(
	config *config.Configuration,
	traceEntry *middleware.TraceEntry,
	logger *middleware.Logger,
	cors *middleware.Cors,
	recovery *middleware.Recovery,
	decompress *middleware.Decompress,
	responseMiddleware *middleware.Response,
	versionHandler *handler.VersionHandler,
	postRouter *PostRouter,
	logRouter *LogRouter,
	healthRouter *HealthRouter,
) *gin.Engine {

	switch config.App.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	validate.RegisterValidations()

	router := gin.New()
	// 順序：trace → 稽核紀錄 → CORS → 錯誤輸出 → 解壓 → 成功輸出
	router.Use(traceEntry.Handler())
	router.Use(versionHandler.Header())
	router.Use(logger.LoggerHandler())
	router.Use(cors.CorsHandler())
	router.Use(recovery.ErrorHandler())
	router.Use(decompress.Handler())
	router.Use(responseMiddleware.FormatHandler())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if config.App.SwaggerEnabled {
		router.GET("/api-docs/*any", func(c *gin.Context) {
			docs.SwaggerInfo.Host = c.Request.Host
		}, ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	healthRouter.RegisterRoutes(router)
	postRouter.RegisterRoutes(router)
	logRouter.RegisterRoutes(router)
	if config.App.Env != "production" {
		pprof.Register(router)
	}
	return router
}
