package entity

import "time"

const (
	TableNameMessages = "messages"

	MessagesFieldID          = "id"
	MessagesFieldChatID      = "chat_id"
	MessagesFieldUserID      = "user_id"
	MessagesFieldModel       = "model"
	MessagesFieldAgentRole   = "agent_role"
	MessagesFieldUserMessage = "user_message"
	MessagesFieldAnswer      = "answer"
	MessagesFieldCreatedAt   = "created_at"
	MessagesFieldUpdatedAt   = "updated_at"
)

// Message is one row of the append-only message log. Rows are written
// once when a completion is accepted, the answer is attached at the
// same insert, and nothing is ever updated or deleted afterwards.
type Message struct {
	ID          string    `xorm:"pk id" json:"id"`
	ChatID      string    `xorm:"chat_id" json:"chat_id"`
	UserID      string    `xorm:"user_id" json:"user_id"`
	Model       string    `xorm:"model" json:"model"`
	AgentRole   string    `xorm:"agent_role" json:"agent_role"`
	UserMessage string    `xorm:"user_message" json:"user_message"`
	Answer      string    `xorm:"answer" json:"answer"`
	CreatedAt   time.Time `xorm:"created created_at" json:"created_at"`
	UpdatedAt   time.Time `xorm:"updated updated_at" json:"updated_at"`
}

func (e *Message) TableName() string {
	return TableNameMessages
}
