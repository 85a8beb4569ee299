package repository

import (
	"github.com/AmineMekki01/rag-app-prod-example/entity"
	"github.com/AmineMekki01/rag-app-prod-example/model"
)

// ChatRepository stores conversation containers.
type ChatRepository interface {
	Insert(data *entity.Chat) error
	Get(id string) (*entity.Chat, error)
	List(condition *model.GetChatsCondition) ([]*entity.Chat, error)
	ListByUser(userID string) ([]*entity.Chat, error)
}
