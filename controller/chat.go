package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/AmineMekki01/rag-app-prod-example/model"
	"github.com/AmineMekki01/rag-app-prod-example/service/chat"
)

// ChatController handles the four completion endpoints.
type ChatController struct {
	chatService *chat.Service
}

func NewChatController(chatService *chat.Service) *ChatController {
	return &ChatController{chatService: chatService}
}

func bindMessage(ctx *gin.Context) (*model.BaseMessage, *model.Error) {
	var req model.BaseMessage
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("invalid request body: %w", err))
	}
	return &req, nil
}

// Completion runs one non-streaming completion turn.
func (c *ChatController) Completion(ctx *gin.Context) {
	req, bindErr := bindMessage(ctx)
	if bindErr != nil {
		respondError(ctx, bindErr)
		return
	}

	message, err := c.chatService.Complete(ctx.Request.Context(), req)
	if err != nil {
		log.Errorf("Completion error: %v", err)
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, message)
}

// CompletionStream runs one streaming completion turn over SSE.
func (c *ChatController) CompletionStream(ctx *gin.Context) {
	req, bindErr := bindMessage(ctx)
	if bindErr != nil {
		respondError(ctx, bindErr)
		return
	}

	if err := c.chatService.CompleteStream(ctx, req); err != nil {
		log.Errorf("CompletionStream error: %v", err)
		respondError(ctx, err)
	}
}

// QACreate runs a retrieval-augmented non-streaming completion.
func (c *ChatController) QACreate(ctx *gin.Context) {
	req, bindErr := bindMessage(ctx)
	if bindErr != nil {
		respondError(ctx, bindErr)
		return
	}

	message, err := c.chatService.QACreate(ctx.Request.Context(), req)
	if err != nil {
		log.Errorf("QACreate error: %v", err)
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, message)
}

// QAStream runs a retrieval-augmented streaming completion over SSE.
func (c *ChatController) QAStream(ctx *gin.Context) {
	req, bindErr := bindMessage(ctx)
	if bindErr != nil {
		respondError(ctx, bindErr)
		return
	}

	if err := c.chatService.QAStream(ctx, req); err != nil {
		log.Errorf("QAStream error: %v", err)
		respondError(ctx, err)
	}
}
