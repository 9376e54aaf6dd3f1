package model

import (
	"time"

	"gorm.io/gorm"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

// Conversation is one chat thread. Title is back-filled from the first
// user message after the first exchange if still unset.
type Conversation struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"userId"`
	CompanyID uint           `gorm:"index;not null" json:"companyId"`
	Model     string         `gorm:"type:varchar(64);not null" json:"model"`
	Title     string         `gorm:"type:varchar(128)" json:"title"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// Message belongs to one conversation and is immutable once created.
// Metadata carries token usage and, for tool messages, the invocation id.
type Message struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ConversationID uint           `gorm:"index;not null" json:"conversationId"`
	Role           string         `gorm:"type:varchar(16);not null" json:"role"`
	Content        string         `gorm:"type:longtext;not null" json:"content"`
	Metadata       string         `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}

// MessageMetadata is the decoded shape of Message.Metadata.
type MessageMetadata struct {
	PromptTokens     int    `json:"promptTokens,omitempty"`
	CompletionTokens int    `json:"completionTokens,omitempty"`
	ToolCallID       string `json:"toolCallId,omitempty"`
	ToolName         string `json:"toolName,omitempty"`
}
