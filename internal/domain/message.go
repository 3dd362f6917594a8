package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MessageRole represents the sender of a chat message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Valid reports whether the role is one of the permitted values.
func (r MessageRole) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ChatMessage represents one turn in a user's conversation history.
// Messages are immutable once created; history only grows by appending
// or is cleared as a whole.
type ChatMessage struct {
	ID        string      `json:"id" bson:"id"`
	Role      MessageRole `json:"role" bson:"role"`
	Content   string      `json:"content" bson:"content"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

// NewChatMessage builds a message with a fresh ID and timestamps.
// Content is trimmed before storage.
func NewChatMessage(role MessageRole, content string) ChatMessage {
	now := time.Now().UTC()
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   strings.TrimSpace(content),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
