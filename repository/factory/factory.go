package factory

import (
	"context"

	"github.com/AmineMekki01/rag-app-prod-example/repository"
	"github.com/AmineMekki01/rag-app-prod-example/repository/interfaces"
)

type Factory interface {
	NewSession(ctx context.Context) interfaces.Session
	NewMessageRepository(session interfaces.Session) (repository.MessageRepository, error)
	NewChatRepository(session interfaces.Session) (repository.ChatRepository, error)
}
