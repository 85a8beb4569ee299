package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AmineMekki01/rag-app-prod-example/model"
)

func statusForError(err *model.Error) int {
	switch err.Code {
	case model.ErrorParams:
		return http.StatusBadRequest
	case model.ErrorExtraction:
		return http.StatusUnprocessableEntity
	case model.ErrorNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx *gin.Context, err *model.Error) {
	ctx.JSON(statusForError(err), gin.H{"code": err.Code, "detail": err.Message})
}
