package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AmineMekki01/rag-app-prod-example/config"
)

// HealthCheck reports the running version.
func HealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": config.GetInstance().GetStringOrDefault(config.AppVersion, "dev"),
	})
}
