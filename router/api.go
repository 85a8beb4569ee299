package router

import (
	"github.com/gin-gonic/gin"
)

func addApiRouter(engine *gin.Engine, controllers *Controllers) {

	api := engine.Group("/v1")
	{
		// document ingestion
		api.POST("/upload-document", controllers.Ingest.UploadDocument)

		// completions
		api.POST("/completion", controllers.Chat.Completion)
		api.POST("/completion-stream", controllers.Chat.CompletionStream)
		api.POST("/qa-create", controllers.Chat.QACreate)
		api.POST("/qa-stream", controllers.Chat.QAStream)

		// message/chat log
		api.GET("/messages/:user_id", controllers.History.ListUserMessages)
		api.GET("/chats/:user_id", controllers.History.ListUserChats)
		api.GET("/chat/:chat_id/messages", controllers.History.ListChatMessages)
		api.GET("/chat/:chat_id", controllers.History.GetChat)
		api.POST("/chat-create", controllers.History.CreateChat)
	}
}
