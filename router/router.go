package router

import (
	"github.com/gin-gonic/gin"

	"github.com/AmineMekki01/rag-app-prod-example/config"
	"github.com/AmineMekki01/rag-app-prod-example/controller"
	"github.com/AmineMekki01/rag-app-prod-example/middleware"
)

// Controllers groups the handler sets the router mounts.
type Controllers struct {
	Ingest  *controller.IngestController
	Chat    *controller.ChatController
	History *controller.HistoryController
}

// New builds the gin engine with middleware and all routes mounted.
func New(controllers *Controllers) *gin.Engine {
	engine := gin.New()
	addBasicRouter(engine)
	addApiRouter(engine, controllers)
	return engine
}

func addBasicRouter(engine *gin.Engine) {
	engine.Use(gin.Recovery())
	engine.Use(middleware.Logger)
	engine.Use(middleware.CORS(config.GetInstance().GetStringOrDefault(config.AppCORSOrigin, "")))

	engine.GET("/healthCheck", controller.HealthCheck)
}
