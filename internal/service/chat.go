package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smarttravel/api/internal/domain"
	"github.com/smarttravel/api/internal/llm"
)

// ChatService orchestrates chat history and the completion provider
type ChatService struct {
	userRepo        domain.UserRepository
	llmRouter       *llm.Router
	providerTimeout time.Duration
}

// NewChatService creates a new chat service
func NewChatService(userRepo domain.UserRepository, llmRouter *llm.Router, providerTimeout time.Duration) *ChatService {
	return &ChatService{
		userRepo:        userRepo,
		llmRouter:       llmRouter,
		providerTimeout: providerTimeout,
	}
}

// SendMessage appends the user's message, asks the provider for a reply
// with the full ordered history as context, and persists both turns in a
// single atomic write. When the provider fails, nothing is persisted.
func (s *ChatService) SendMessage(ctx context.Context, userID, content string) ([]domain.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	userMsg := domain.NewChatMessage(domain.RoleUser, content)

	history := make([]llm.Message, 0, len(user.Chats)+1)
	for _, m := range user.Chats {
		history = append(history, llm.Message{Role: string(m.Role), Content: m.Content})
	}
	history = append(history, llm.Message{Role: string(userMsg.Role), Content: userMsg.Content})

	provider, err := s.llmRouter.GetProvider("")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	reply, err := provider.Complete(callCtx, history)
	if err != nil {
		log.Error().Err(err).Str("provider", provider.Name()).Msg("Completion failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}

	assistantMsg := domain.NewChatMessage(domain.RoleAssistant, reply.Content)
	pair := []domain.ChatMessage{userMsg, assistantMsg}

	if err := s.userRepo.AppendChats(ctx, userID, pair); err != nil {
		return nil, err
	}

	return append(user.Chats, pair...), nil
}

// ListChats returns the full ordered chat history for the user
func (s *ChatService) ListChats(ctx context.Context, userID string) ([]domain.ChatMessage, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.ID != userID {
		return nil, domain.ErrPermission
	}
	return user.Chats, nil
}

// ClearChats empties the user's chat history
func (s *ChatService) ClearChats(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.ID != userID {
		return domain.ErrPermission
	}
	return s.userRepo.ClearChats(ctx, userID)
}
