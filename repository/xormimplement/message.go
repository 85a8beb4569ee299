package xormimplement

import (
	"fmt"

	"xorm.io/builder"

	"github.com/AmineMekki01/rag-app-prod-example/entity"
	"github.com/AmineMekki01/rag-app-prod-example/model"
	"github.com/AmineMekki01/rag-app-prod-example/repository"
)

type MessageRepository struct {
	session *Session
}

func NewMessageRepository(session *Session) repository.MessageRepository {
	return &MessageRepository{session: session}
}

func buildMessagesQueryConditions(condition *model.GetMessagesCondition) builder.Cond {
	var conds []builder.Cond

	if condition.UserID != nil && *condition.UserID != "" {
		conds = append(conds, builder.Eq{entity.MessagesFieldUserID: *condition.UserID})
	}
	if condition.ChatID != nil && *condition.ChatID != "" {
		conds = append(conds, builder.Eq{entity.MessagesFieldChatID: *condition.ChatID})
	}

	if len(conds) == 0 {
		return nil
	}
	return builder.And(conds...)
}

func (r *MessageRepository) Insert(data *entity.Message) error {
	if data == nil {
		return fmt.Errorf("message cannot be nil")
	}
	if data.ID == "" {
		return fmt.Errorf("message id is required")
	}

	_, err := r.session.Table(entity.TableNameMessages).Insert(data)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	return nil
}

func (r *MessageRepository) List(condition *model.GetMessagesCondition) ([]*entity.Message, error) {
	if condition == nil {
		return nil, fmt.Errorf("get condition cannot be nil")
	}

	cond := buildMessagesQueryConditions(condition)

	session := r.session.Table(entity.TableNameMessages)
	if cond != nil {
		session = session.Where(cond)
	}

	pagerOrder(session, condition, WithDefaultOrderField(entity.MessagesFieldCreatedAt), WithDefaultOrderAsc())

	var results []*entity.Message
	if err := session.Find(&results); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return results, nil
}

func (r *MessageRepository) ListByUser(userID string) ([]*entity.Message, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	return r.List(&model.GetMessagesCondition{UserID: &userID})
}

func (r *MessageRepository) ListByChat(chatID string) ([]*entity.Message, error) {
	if chatID == "" {
		return nil, fmt.Errorf("chat_id is required")
	}

	return r.List(&model.GetMessagesCondition{ChatID: &chatID})
}
