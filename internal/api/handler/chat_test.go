package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smarttravel/api/internal/api/middleware"
	"github.com/smarttravel/api/internal/domain"
	"github.com/smarttravel/api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func authedJSONRequest(t *testing.T, userID, target string, body any) *http.Request {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
}

func TestChatHandler_New(t *testing.T) {
	userID := "64f1a2b3c4d5e6f7a8b9c0d1"

	t.Run("returns updated history", func(t *testing.T) {
		mockRepo := new(mockUserRepository)
		svc := service.NewChatService(mockRepo, newStubRouter(&stubProvider{reply: "Lisbon is lovely in May."}), time.Second)
		h := NewChatHandler(svc)

		mockRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)
		mockRepo.On("AppendChats", mock.Anything, userID, mock.AnythingOfType("[]domain.ChatMessage")).Return(nil)

		rec := httptest.NewRecorder()
		h.New(rec, authedJSONRequest(t, userID, "/chat/new", map[string]string{"message": "Where should I go in May?"}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Where should I go in May?")
		assert.Contains(t, rec.Body.String(), "Lisbon is lovely in May.")
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty message", func(t *testing.T) {
		mockRepo := new(mockUserRepository)
		svc := service.NewChatService(mockRepo, newStubRouter(&stubProvider{}), time.Second)
		h := NewChatHandler(svc)

		rec := httptest.NewRecorder()
		h.New(rec, authedJSONRequest(t, userID, "/chat/new", map[string]string{"message": "   "}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Message content is required")
		mockRepo.AssertNotCalled(t, "AppendChats", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("provider failure", func(t *testing.T) {
		mockRepo := new(mockUserRepository)
		svc := service.NewChatService(mockRepo, newStubRouter(&stubProvider{err: errors.New("upstream down")}), time.Second)
		h := NewChatHandler(svc)

		mockRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)

		rec := httptest.NewRecorder()
		h.New(rec, authedJSONRequest(t, userID, "/chat/new", map[string]string{"message": "Hi"}))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Something went wrong")
		mockRepo.AssertNotCalled(t, "AppendChats", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing identity", func(t *testing.T) {
		mockRepo := new(mockUserRepository)
		svc := service.NewChatService(mockRepo, newStubRouter(&stubProvider{}), time.Second)
		h := NewChatHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/chat/new", bytes.NewReader([]byte(`{"message":"Hi"}`)))
		rec := httptest.NewRecorder()
		h.New(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token Not Received")
	})
}

func TestChatHandler_All(t *testing.T) {
	userID := "64f1a2b3c4d5e6f7a8b9c0d1"

	mockRepo := new(mockUserRepository)
	svc := service.NewChatService(mockRepo, newStubRouter(&stubProvider{}), time.Second)
	h := NewChatHandler(svc)

	chats := []domain.ChatMessage{
		domain.NewChatMessage(domain.RoleUser, "Hi"),
		domain.NewChatMessage(domain.RoleAssistant, "Hello!"),
	}
	mockRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID, Chats: chats}, nil)

	req := httptest.NewRequest(http.MethodGet, "/chat/all-chats", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
	rec := httptest.NewRecorder()
	h.All(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello!")
}

func TestChatHandler_Delete(t *testing.T) {
	userID := "64f1a2b3c4d5e6f7a8b9c0d1"

	mockRepo := new(mockUserRepository)
	svc := service.NewChatService(mockRepo, newStubRouter(&stubProvider{}), time.Second)
	h := NewChatHandler(svc)

	mockRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)
	mockRepo.On("ClearChats", mock.Anything, userID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/chat/delete", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockRepo.AssertExpectations(t)
}
