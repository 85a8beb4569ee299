package xormimplement

import (
	"fmt"

	"xorm.io/builder"

	"github.com/AmineMekki01/rag-app-prod-example/entity"
	"github.com/AmineMekki01/rag-app-prod-example/model"
	"github.com/AmineMekki01/rag-app-prod-example/repository"
)

type ChatRepository struct {
	session *Session
}

func NewChatRepository(session *Session) repository.ChatRepository {
	return &ChatRepository{session: session}
}

func buildChatsQueryConditions(condition *model.GetChatsCondition) builder.Cond {
	var conds []builder.Cond

	if condition.UserID != nil && *condition.UserID != "" {
		conds = append(conds, builder.Eq{entity.ChatsFieldUserID: *condition.UserID})
	}

	if len(conds) == 0 {
		return nil
	}
	return builder.And(conds...)
}

func (r *ChatRepository) Insert(data *entity.Chat) error {
	if data == nil {
		return fmt.Errorf("chat cannot be nil")
	}
	if data.ID == "" {
		return fmt.Errorf("chat id is required")
	}

	_, err := r.session.Table(entity.TableNameChats).Insert(data)
	if err != nil {
		return fmt.Errorf("failed to insert chat: %w", err)
	}

	return nil
}

func (r *ChatRepository) Get(id string) (*entity.Chat, error) {
	if id == "" {
		return nil, fmt.Errorf("chat id is required")
	}

	result := &entity.Chat{}
	ok, err := r.session.Table(entity.TableNameChats).
		Where(builder.Eq{entity.ChatsFieldID: id}).
		Get(result)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return result, nil
}

func (r *ChatRepository) List(condition *model.GetChatsCondition) ([]*entity.Chat, error) {
	if condition == nil {
		return nil, fmt.Errorf("get condition cannot be nil")
	}

	cond := buildChatsQueryConditions(condition)

	session := r.session.Table(entity.TableNameChats)
	if cond != nil {
		session = session.Where(cond)
	}

	pagerOrder(session, condition, WithDefaultOrderField(entity.ChatsFieldCreatedAt))

	var results []*entity.Chat
	if err := session.Find(&results); err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	return results, nil
}

func (r *ChatRepository) ListByUser(userID string) ([]*entity.Chat, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	return r.List(&model.GetChatsCondition{UserID: &userID})
}
