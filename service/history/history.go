package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AmineMekki01/rag-app-prod-example/constant"
	"github.com/AmineMekki01/rag-app-prod-example/entity"
	"github.com/AmineMekki01/rag-app-prod-example/model"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/tools"
	"github.com/AmineMekki01/rag-app-prod-example/repository/factory"
)

// Service reads the message/chat log and creates chat containers.
type Service struct {
	repositoryFactory factory.Factory
}

func NewService(repositoryFactory factory.Factory) *Service {
	return &Service{repositoryFactory: repositoryFactory}
}

// ListUserMessages returns all messages for a user, oldest first.
func (s *Service) ListUserMessages(ctx context.Context, userID string) ([]*entity.Message, *model.Error) {
	if userID == "" {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("user_id is required"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "list messages session, user %s", userID)

	repo, err := s.repositoryFactory.NewMessageRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	messages, err := repo.ListByUser(userID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, fmt.Errorf("failed to list messages for user %s: %w", userID, err))
	}

	return messages, nil
}

// ListChatMessages returns all messages of one chat, oldest first.
func (s *Service) ListChatMessages(ctx context.Context, chatID string) ([]*entity.Message, *model.Error) {
	if chatID == "" {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("chat_id is required"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "list messages session, chat %s", chatID)

	repo, err := s.repositoryFactory.NewMessageRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	messages, err := repo.ListByChat(chatID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, fmt.Errorf("failed to list messages for chat %s: %w", chatID, err))
	}

	return messages, nil
}

// ListUserChats returns the user's chats, newest first.
func (s *Service) ListUserChats(ctx context.Context, userID string) ([]*entity.Chat, *model.Error) {
	if userID == "" {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("user_id is required"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "list chats session, user %s", userID)

	repo, err := s.repositoryFactory.NewChatRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	chats, err := repo.ListByUser(userID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, fmt.Errorf("failed to list chats for user %s: %w", userID, err))
	}

	return chats, nil
}

// GetChat returns one chat by id or a not-found error.
func (s *Service) GetChat(ctx context.Context, chatID string) (*entity.Chat, *model.Error) {
	if chatID == "" {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("chat_id is required"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "get chat session, chat %s", chatID)

	repo, err := s.repositoryFactory.NewChatRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	chat, err := repo.Get(chatID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, fmt.Errorf("failed to get chat %s: %w", chatID, err))
	}
	if chat == nil {
		return nil, model.NewError(model.ErrorNotFound, fmt.Errorf("chat %s not found", chatID))
	}

	return chat, nil
}

// CreateChat inserts a new chat container. Caller-supplied id and
// timestamps are kept when present, defaulted otherwise.
func (s *Service) CreateChat(ctx context.Context, summary *model.ChatSummary) (*entity.Chat, *model.Error) {
	if summary == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("request body is required"))
	}
	if summary.UserID == "" {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("user_id is required"))
	}

	row := &entity.Chat{
		ID:        summary.ID,
		UserID:    summary.UserID,
		Title:     summary.Title,
		Model:     summary.Model,
		AgentRole: summary.AgentRole,
		CreatedAt: summary.CreatedAt,
		UpdatedAt: summary.UpdatedAt,
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.Model == "" {
		row.Model = constant.DefaultModel
	}
	now := time.Now()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = now
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "create chat session, chat %s", row.ID)

	repo, err := s.repositoryFactory.NewChatRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	if err := repo.Insert(row); err != nil {
		return nil, model.NewError(model.ErrorDB, fmt.Errorf("failed to create chat %s: %w", row.ID, err))
	}

	return row, nil
}
