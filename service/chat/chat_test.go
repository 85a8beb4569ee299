package chat

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/AmineMekki01/rag-app-prod-example/constant"
	"github.com/AmineMekki01/rag-app-prod-example/entity"
	"github.com/AmineMekki01/rag-app-prod-example/model"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/clients/llm"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/clients/vectorstore"
	"github.com/AmineMekki01/rag-app-prod-example/repository"
	"github.com/AmineMekki01/rag-app-prod-example/repository/interfaces"
	"github.com/AmineMekki01/rag-app-prod-example/service/retrieval"
)

type fakeSession struct{}

func (fakeSession) Begin() error    { return nil }
func (fakeSession) Close() error    { return nil }
func (fakeSession) Commit() error   { return nil }
func (fakeSession) Rollback() error { return nil }

type fakeMessageRepo struct {
	insertErr error
	inserted  []*entity.Message
}

func (r *fakeMessageRepo) Insert(data *entity.Message) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, data)
	return nil
}

func (r *fakeMessageRepo) List(*model.GetMessagesCondition) ([]*entity.Message, error) {
	return r.inserted, nil
}

func (r *fakeMessageRepo) ListByUser(string) ([]*entity.Message, error) {
	return r.inserted, nil
}

func (r *fakeMessageRepo) ListByChat(string) ([]*entity.Message, error) {
	return r.inserted, nil
}

type fakeFactory struct {
	messages *fakeMessageRepo
}

func (f *fakeFactory) NewSession(ctx context.Context) interfaces.Session {
	return fakeSession{}
}

func (f *fakeFactory) NewMessageRepository(interfaces.Session) (repository.MessageRepository, error) {
	return f.messages, nil
}

func (f *fakeFactory) NewChatRepository(interfaces.Session) (repository.ChatRepository, error) {
	return nil, fmt.Errorf("not backed by this fake")
}

type stubEmbedder struct{}

func (stubEmbedder) GetTextEmbedding(ctx context.Context, text string) ([]float64, error) {
	return []float64{1, 0, 0}, nil
}

func (stubEmbedder) GetTextEmbeddingBatch(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i := range texts {
		vectors[i] = []float64{1, 0, 0}
	}
	return vectors, nil
}

type ChatServiceTest struct {
	suite.Suite

	qdrant         *httptest.Server
	llmUpstream    *httptest.Server
	llmCalls       int
	searchResponse string
	searchStatus   int

	messages *fakeMessageRepo
	service  *Service
}

func (s *ChatServiceTest) SetupTest() {
	s.searchResponse = `{"result":[]}`
	s.searchStatus = 0
	s.llmCalls = 0

	s.qdrant = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.searchStatus != 0 {
			w.WriteHeader(s.searchStatus)
			w.Write([]byte(`{"status":{"error":"Collection doesn't exist"}}`))
			return
		}
		w.Write([]byte(s.searchResponse))
	}))

	s.llmUpstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.llmCalls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "cmpl-1",
			"object": "chat.completion",
			"model": "test-model",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "the answer"}, "finish_reason": "stop"}]
		}`))
	}))

	store := vectorstore.NewClient(&vectorstore.Config{Addr: s.qdrant.URL, Dimension: 3}, stubEmbedder{})
	retrievalService := retrieval.NewService(store, retrieval.DefaultTopK)

	llmClient := llm.NewClient(&llm.Config{
		Addr:      s.llmUpstream.URL + "/v1",
		Model:     "test-model",
		Token:     "test-token",
		MaxTokens: 64,
	})

	s.messages = &fakeMessageRepo{}
	s.service = NewService(&fakeFactory{messages: s.messages}, retrievalService, llmClient)
}

func (s *ChatServiceTest) TearDownTest() {
	s.qdrant.Close()
	s.llmUpstream.Close()
}

func (s *ChatServiceTest) TestCompleteRequiresParams() {
	_, err := s.service.Complete(context.Background(), &model.BaseMessage{UserID: "user-1"})
	s.Require().NotNil(err)
	s.Equal(model.ErrorParams, err.Code)

	_, err = s.service.Complete(context.Background(), &model.BaseMessage{UserMessage: "hi"})
	s.Require().NotNil(err)
	s.Equal(model.ErrorParams, err.Code)
}

func (s *ChatServiceTest) TestCompleteReturnsAndPersistsAnswer() {
	message, err := s.service.Complete(context.Background(), &model.BaseMessage{
		UserID:      "user-1",
		ChatID:      "chat-1",
		UserMessage: "say something",
	})
	s.Require().Nil(err)

	s.Equal("the answer", message.Answer)
	s.Equal(constant.RoleAssistant, message.Role)
	s.Equal("say something", message.UserMessage)
	s.True(message.Persisted)
	s.NotEmpty(message.ID)

	s.Require().Len(s.messages.inserted, 1)
	s.Equal("the answer", s.messages.inserted[0].Answer)
	s.Equal("chat-1", s.messages.inserted[0].ChatID)
}

func (s *ChatServiceTest) TestCompleteSurvivesPersistFailure() {
	s.messages.insertErr = fmt.Errorf("db down")

	message, err := s.service.Complete(context.Background(), &model.BaseMessage{
		UserID:      "user-1",
		UserMessage: "say something",
	})
	s.Require().Nil(err)

	s.Equal("the answer", message.Answer)
	s.False(message.Persisted)
}

func (s *ChatServiceTest) TestQACreateNoDocumentsSkipsCompletion() {
	message, err := s.service.QACreate(context.Background(), &model.BaseMessage{
		UserID:      "user-1",
		UserMessage: "anything indexed?",
	})
	s.Require().Nil(err)

	s.Equal(constant.NoDocumentsFound, message.Answer)
	s.Equal(constant.RoleAssistant, message.Role)
	s.Zero(s.llmCalls)
}

func (s *ChatServiceTest) TestQACreateNeverUploadedUserGetsFallback() {
	s.searchStatus = http.StatusNotFound

	message, err := s.service.QACreate(context.Background(), &model.BaseMessage{
		UserID:      "user-without-documents",
		UserMessage: "what do my files say?",
	})
	s.Require().Nil(err)

	s.Equal(constant.NoDocumentsFound, message.Answer)
	s.Equal(constant.RoleAssistant, message.Role)
	s.Zero(s.llmCalls)
}

func (s *ChatServiceTest) TestQAStreamNeverUploadedUserGetsFallback() {
	s.searchStatus = http.StatusNotFound

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	ginCtx, _ := gin.CreateTestContext(recorder)
	ginCtx.Request = httptest.NewRequest(http.MethodPost, "/v1/qa-stream", nil)

	err := s.service.QAStream(ginCtx, &model.BaseMessage{
		UserID:      "user-without-documents",
		UserMessage: "what do my files say?",
	})
	s.Require().Nil(err)

	s.Equal("data: "+constant.NoDocumentsFound+"\n\n", recorder.Body.String())
	s.Zero(s.llmCalls)
}

func (s *ChatServiceTest) TestQACreateAugmentsPrompt() {
	s.searchResponse = `{"result":[{"id":"a","score":0.9,"payload":{"page_content":"indexed context"}}]}`

	message, err := s.service.QACreate(context.Background(), &model.BaseMessage{
		UserID:      "user-1",
		UserMessage: "what is indexed?",
	})
	s.Require().Nil(err)

	s.Equal("the answer", message.Answer)
	s.Equal(1, s.llmCalls)
}

func (s *ChatServiceTest) TestQAStreamNoDocumentsSingleFrame() {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	ginCtx, _ := gin.CreateTestContext(recorder)
	ginCtx.Request = httptest.NewRequest(http.MethodPost, "/v1/qa-stream", nil)

	err := s.service.QAStream(ginCtx, &model.BaseMessage{
		UserID:      "user-1",
		UserMessage: "anything indexed?",
	})
	s.Require().Nil(err)

	s.Equal(llm.HeaderContentTypeStream, recorder.Header().Get(llm.HeaderContentType))
	s.Equal("data: "+constant.NoDocumentsFound+"\n\n", recorder.Body.String())
	s.Zero(s.llmCalls)
}

func (s *ChatServiceTest) TestCompleteUsesAugmentedPromptWhenSet() {
	var lastBody string
	s.llmUpstream.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.llmCalls++
		body, _ := io.ReadAll(r.Body)
		lastBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cmpl-2","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}]}`))
	})

	req := &model.BaseMessage{
		UserID:           "user-1",
		UserMessage:      "raw question",
		AugmentedMessage: "augmented question",
	}
	_, err := s.service.Complete(context.Background(), req)
	s.Require().Nil(err)

	s.Contains(lastBody, "augmented question")
	s.NotContains(lastBody, "raw question")
}

func TestChatService(t *testing.T) {
	suite.Run(t, new(ChatServiceTest))
}
