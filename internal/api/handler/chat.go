package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smarttravel/api/internal/api/middleware"
	"github.com/smarttravel/api/internal/api/response"
	"github.com/smarttravel/api/internal/domain"
	"github.com/smarttravel/api/internal/service"
)

// ChatHandler handles chat endpoints
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatInput struct {
	Message string `json:"message" validate:"required"`
}

// New appends the user's message, obtains the assistant reply, and
// returns the full updated history
func (h *ChatHandler) New(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Token Not Received")
		return
	}

	var input chatInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	chats, err := h.chatService.SendMessage(r.Context(), userID, input.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage):
			response.ValidationFailed(w, map[string]string{"message": "Message content is required"})
		case errors.Is(err, domain.ErrUserNotFound):
			response.Unauthorized(w, "User not registered OR token malfunctioned")
		default:
			response.InternalError(w, "Something went wrong")
		}
		return
	}

	response.OK(w, map[string]any{"chats": chats})
}

// All returns the user's full ordered chat history
func (h *ChatHandler) All(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Token Not Received")
		return
	}

	chats, err := h.chatService.ListChats(r.Context(), userID)
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"message": "OK",
		"chats":   chats,
	})
}

// Delete clears the user's chat history
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Token Not Received")
		return
	}

	if err := h.chatService.ClearChats(r.Context(), userID); err != nil {
		h.writeChatError(w, err)
		return
	}

	response.OK(w, map[string]any{"message": "OK"})
}

func (h *ChatHandler) writeChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		response.Unauthorized(w, "User not registered OR token malfunctioned")
	case errors.Is(err, domain.ErrPermission):
		response.Unauthorized(w, "Permission denied")
	default:
		response.InternalError(w, "Something went wrong")
	}
}
