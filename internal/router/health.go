package router

import (
	"blogging/internal/handler"

	"github.com/gin-gonic/gin"
)

type HealthRouter struct {
	healthHandler  *handler.HealthHandler
	versionHandler *handler.VersionHandler
}

func NewHealthRouter(
	healthHandler *handler.HealthHandler,
	versionHandler *handler.VersionHandler,
) *HealthRouter {
	return &HealthRouter{
		healthHandler:  healthHandler,
		versionHandler: versionHandler,
	}
}

func (healthRouter *HealthRouter) RegisterRoutes(r *gin.Engine) {
	g := r.Group("/health")
	{
		g.GET("/liveness", healthRouter.healthHandler.Liveness)
		g.GET("/readiness", healthRouter.healthHandler.Readiness)
	}
	r.GET("/version", healthRouter.versionHandler.Version)
}
