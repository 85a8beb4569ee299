package model

import (
	"fmt"
	"time"

	"github.com/AmineMekki01/rag-app-prod-example/constant"
)

// BaseMessage is the completion request body shared by all four
// completion endpoints. Context is caller-supplied grounding text for
// the plain completion endpoints; AugmentedMessage is filled by the
// retriever and never accepted from the client.
type BaseMessage struct {
	ID               string `json:"id"`
	ChatID           string `json:"chat_id"`
	Model            string `json:"model"`
	UserID           string `json:"userId"`
	AgentRole        string `json:"agent_role"`
	UserMessage      string `json:"user_message"`
	Context          string `json:"context"`
	Answer           string `json:"answer"`
	AugmentedMessage string `json:"-"`
}

// Prompt returns the text sent to the completion service: the augmented
// message when retrieval ran, the user message grounded on the
// caller-supplied context when one came in, the raw user message
// otherwise.
func (m *BaseMessage) Prompt() string {
	if m.AugmentedMessage != "" {
		return m.AugmentedMessage
	}
	if m.Context != "" {
		return fmt.Sprintf(constant.AugmentedQueryTemplate, m.UserMessage, m.Context)
	}
	return m.UserMessage
}

// Message is one completed turn returned to the caller.
type Message struct {
	ID          string    `json:"id"`
	ChatID      string    `json:"chat_id"`
	UserID      string    `json:"user_id"`
	Model       string    `json:"model"`
	Role        string    `json:"role"`
	UserMessage string    `json:"user_message"`
	Answer      string    `json:"answer"`
	Persisted   bool      `json:"persisted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChatSummary is the chat container payload.
type ChatSummary struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Model     string    `json:"model"`
	AgentRole string    `json:"agent_role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UploadResponse lists the file names accepted by an upload request.
type UploadResponse struct {
	FilesNames []string `json:"files_names"`
}

// GetMessagesCondition filters message list queries.
type GetMessagesCondition struct {
	UserID *string `json:"user_id"`
	ChatID *string `json:"chat_id"`
	*Pager
	*Order
}

func (g *GetMessagesCondition) GetPager() *Pager {
	return g.Pager
}

func (g *GetMessagesCondition) GetOrder() *Order {
	return g.Order
}

// GetChatsCondition filters chat list queries.
type GetChatsCondition struct {
	UserID *string `json:"user_id"`
	*Pager
	*Order
}

func (g *GetChatsCondition) GetPager() *Pager {
	return g.Pager
}

func (g *GetChatsCondition) GetOrder() *Order {
	return g.Order
}
