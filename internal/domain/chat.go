package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole represents the role of a conversation message.
type ChatRole string

const (
	ChatRole_User      ChatRole = "user"
	ChatRole_Assistant ChatRole = "assistant"
)

// ConversationMessage represents one message in the assistant conversation
// history. Messages are immutable once created; the orchestrator only
// appends them and, on an explicit clear, removes them in bulk.
type ConversationMessage struct {
	ID        uuid.UUID
	Role      ChatRole
	Content   string
	CreatedAt time.Time
}

// NewConversationMessage creates an immutable conversation message.
func NewConversationMessage(role ChatRole, content string, createdAt time.Time) ConversationMessage {
	return ConversationMessage{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		CreatedAt: createdAt,
	}
}
