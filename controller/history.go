package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/AmineMekki01/rag-app-prod-example/model"
	"github.com/AmineMekki01/rag-app-prod-example/service/history"
)

// HistoryController exposes the message/chat log read endpoints and
// chat creation.
type HistoryController struct {
	historyService *history.Service
}

func NewHistoryController(historyService *history.Service) *HistoryController {
	return &HistoryController{historyService: historyService}
}

// ListUserMessages returns all messages of a user.
func (c *HistoryController) ListUserMessages(ctx *gin.Context) {
	userID := ctx.Param("user_id")

	messages, err := c.historyService.ListUserMessages(ctx.Request.Context(), userID)
	if err != nil {
		log.Errorf("ListUserMessages error: %v", err)
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

// ListUserChats returns all chats of a user.
func (c *HistoryController) ListUserChats(ctx *gin.Context) {
	userID := ctx.Param("user_id")

	chats, err := c.historyService.ListUserChats(ctx.Request.Context(), userID)
	if err != nil {
		log.Errorf("ListUserChats error: %v", err)
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, chats)
}

// ListChatMessages returns all messages of one chat.
func (c *HistoryController) ListChatMessages(ctx *gin.Context) {
	chatID := ctx.Param("chat_id")

	messages, err := c.historyService.ListChatMessages(ctx.Request.Context(), chatID)
	if err != nil {
		log.Errorf("ListChatMessages error: %v", err)
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

// GetChat returns one chat by id.
func (c *HistoryController) GetChat(ctx *gin.Context) {
	chatID := ctx.Param("chat_id")

	chat, err := c.historyService.GetChat(ctx.Request.Context(), chatID)
	if err != nil {
		log.Errorf("GetChat error: %v", err)
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, chat)
}

// CreateChat inserts a new chat container.
func (c *HistoryController) CreateChat(ctx *gin.Context) {
	var req model.ChatSummary
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, model.NewError(model.ErrorParams, fmt.Errorf("invalid request body: %w", err)))
		return
	}

	chat, err := c.historyService.CreateChat(ctx.Request.Context(), &req)
	if err != nil {
		log.Errorf("CreateChat error: %v", err)
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, chat)
}
