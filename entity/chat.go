package entity

import "time"

const (
	TableNameChats = "chats"

	ChatsFieldID        = "id"
	ChatsFieldUserID    = "user_id"
	ChatsFieldTitle     = "title"
	ChatsFieldModel     = "model"
	ChatsFieldAgentRole = "agent_role"
	ChatsFieldCreatedAt = "created_at"
	ChatsFieldUpdatedAt = "updated_at"
)

// Chat is a conversation container, created before messages attach to
// it and never mutated afterwards.
type Chat struct {
	ID        string    `xorm:"pk id" json:"id"`
	UserID    string    `xorm:"user_id" json:"user_id"`
	Title     string    `xorm:"title" json:"title"`
	Model     string    `xorm:"model" json:"model"`
	AgentRole string    `xorm:"agent_role" json:"agent_role"`
	CreatedAt time.Time `xorm:"created_at" json:"created_at"`
	UpdatedAt time.Time `xorm:"updated_at" json:"updated_at"`
}

func (e *Chat) TableName() string {
	return TableNameChats
}
