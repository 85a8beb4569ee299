package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/AmineMekki01/rag-app-prod-example/constant"
	"github.com/AmineMekki01/rag-app-prod-example/entity"
	"github.com/AmineMekki01/rag-app-prod-example/model"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/clients/llm"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/tools"
	"github.com/AmineMekki01/rag-app-prod-example/repository/factory"
	"github.com/AmineMekki01/rag-app-prod-example/service/retrieval"
)

// Service orchestrates completions: plain and retrieval-augmented, sync
// and streaming. Answers are persisted best-effort; a store failure is
// logged and surfaced only through the persisted flag, never as a
// request failure.
type Service struct {
	repositoryFactory factory.Factory
	retrievalService  *retrieval.Service
	llmClient         *llm.Client
}

func NewService(repositoryFactory factory.Factory, retrievalService *retrieval.Service, llmClient *llm.Client) *Service {
	return &Service{
		repositoryFactory: repositoryFactory,
		retrievalService:  retrievalService,
		llmClient:         llmClient,
	}
}

func validateRequest(req *model.BaseMessage) *model.Error {
	if req == nil {
		return model.NewError(model.ErrorParams, fmt.Errorf("request body is required"))
	}
	if req.UserID == "" {
		return model.NewError(model.ErrorParams, fmt.Errorf("userId is required"))
	}
	if req.UserMessage == "" {
		return model.NewError(model.ErrorParams, fmt.Errorf("user_message is required"))
	}
	return nil
}

func resolveModel(requested string) string {
	if requested != "" {
		return requested
	}
	return constant.DefaultModel
}

// Complete runs one non-streaming completion turn and persists the
// resulting message.
func (s *Service) Complete(ctx context.Context, req *model.BaseMessage) (*model.Message, *model.Error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	answer, err := s.llmClient.PostChatCompletionsNonStreamContent(ctx, req.Model, req.Prompt())
	if err != nil {
		return nil, model.NewError(model.ErrorCompletion, fmt.Errorf("completion failed for user %s: %w", req.UserID, err))
	}

	return s.buildAndPersist(ctx, req, answer), nil
}

// CompleteStream runs one streaming completion turn, forwarding each
// fragment to the client as an SSE frame. Streamed answers are not
// persisted; the client holds the only full copy.
func (s *Service) CompleteStream(ginCtx *gin.Context, req *model.BaseMessage) *model.Error {
	if err := validateRequest(req); err != nil {
		return err
	}

	if err := s.llmClient.PostChatCompletions(ginCtx, req.Model, req.Prompt()); err != nil {
		return model.NewError(model.ErrorCompletion, fmt.Errorf("streaming completion failed for user %s: %w", req.UserID, err))
	}

	return nil
}

// QACreate is Complete with retrieval first. When the user's collection
// has no matching documents the fixed no-documents answer is returned
// as the assistant turn and the completion service is never called.
func (s *Service) QACreate(ctx context.Context, req *model.BaseMessage) (*model.Message, *model.Error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	augmented, err := s.retrievalService.Augment(ctx, req.UserID, req.UserMessage)
	if err != nil {
		if err.Code == model.ErrorNoDocuments {
			return s.buildAndPersist(ctx, req, constant.NoDocumentsFound), nil
		}
		return nil, err
	}

	req.AugmentedMessage = augmented
	return s.Complete(ctx, req)
}

// QAStream is CompleteStream with retrieval first. The no-documents
// answer goes out as a single SSE frame so streaming clients see one
// consistent protocol.
func (s *Service) QAStream(ginCtx *gin.Context, req *model.BaseMessage) *model.Error {
	if err := validateRequest(req); err != nil {
		return err
	}

	augmented, err := s.retrievalService.Augment(ginCtx.Request.Context(), req.UserID, req.UserMessage)
	if err != nil {
		if err.Code == model.ErrorNoDocuments {
			writeSingleFrame(ginCtx, constant.NoDocumentsFound)
			return nil
		}
		return err
	}

	req.AugmentedMessage = augmented
	return s.CompleteStream(ginCtx, req)
}

// writeSingleFrame emits one locally produced fragment over SSE, going
// through the same fragment shape the upstream stream decodes into.
func writeSingleFrame(ginCtx *gin.Context, payload string) {
	fragment := model.FragmentFromRaw(payload)

	ginCtx.Writer.Header().Set(llm.HeaderContentType, llm.HeaderContentTypeStream)
	ginCtx.Writer.Header().Set(llm.HeaderCacheControl, llm.HeaderCacheNo)
	ginCtx.Writer.Header().Set(llm.HeaderConnection, llm.HeaderKeepAlive)

	if _, err := ginCtx.Writer.Write(llm.FormatEventFrame(fragment.Content)); err != nil {
		log.Errorf("failed to write event frame: %v", err)
		return
	}
	ginCtx.Writer.Flush()
}

// buildAndPersist assembles the completed turn and writes it to the
// message log. The write is fire-and-log: a failure flips Persisted to
// false and nothing else.
func (s *Service) buildAndPersist(ctx context.Context, req *model.BaseMessage, answer string) *model.Message {
	now := time.Now()

	message := &model.Message{
		ID:          req.ID,
		ChatID:      req.ChatID,
		UserID:      req.UserID,
		Model:       resolveModel(req.Model),
		Role:        constant.RoleAssistant,
		UserMessage: req.UserMessage,
		Answer:      answer,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if message.ID == "" {
		message.ID = uuid.NewString()
	}

	message.Persisted = s.persistMessage(ctx, message)
	return message
}

func (s *Service) persistMessage(ctx context.Context, message *model.Message) bool {
	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "message log session, message %s", message.ID)

	repo, err := s.repositoryFactory.NewMessageRepository(session)
	if err != nil {
		log.Warnf("failed to create message repository, message %s not persisted: %v", message.ID, err)
		return false
	}

	row := &entity.Message{
		ID:          message.ID,
		ChatID:      message.ChatID,
		UserID:      message.UserID,
		Model:       message.Model,
		AgentRole:   message.Role,
		UserMessage: message.UserMessage,
		Answer:      message.Answer,
	}

	if err := repo.Insert(row); err != nil {
		log.Warnf("failed to persist message %s: %v", message.ID, err)
		return false
	}

	return true
}
