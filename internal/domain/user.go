package domain

import (
	"context"
	"time"
)

// User represents a platform user. Chat history is embedded in the user
// document, so a message always belongs to exactly one user.
type User struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	Name         string        `json:"name" bson:"name"`
	Email        string        `json:"email" bson:"email"`
	PasswordHash string        `json:"-" bson:"password"`
	Chats        []ChatMessage `json:"chats" bson:"chats"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

// UserCreate represents signup data
type UserCreate struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UserLogin represents login credentials
type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]User, error)

	// AppendChats pushes messages onto the user's chat list in a single
	// atomic write. Either every message in the batch persists or none do.
	AppendChats(ctx context.Context, userID string, messages []ChatMessage) error
	ClearChats(ctx context.Context, userID string) error
}
