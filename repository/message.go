package repository

import (
	"github.com/AmineMekki01/rag-app-prod-example/entity"
	"github.com/AmineMekki01/rag-app-prod-example/model"
)

// MessageRepository is the append-only message log. Rows are inserted
// with their answer attached and never updated or deleted.
type MessageRepository interface {
	Insert(data *entity.Message) error
	List(condition *model.GetMessagesCondition) ([]*entity.Message, error)
	ListByUser(userID string) ([]*entity.Message, error)
	ListByChat(chatID string) ([]*entity.Message, error)
}
