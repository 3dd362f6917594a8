package handler

import (
	"context"

	"github.com/smarttravel/api/internal/domain"
	"github.com/smarttravel/api/internal/llm"
	"github.com/stretchr/testify/mock"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepository) AppendChats(ctx context.Context, userID string, messages []domain.ChatMessage) error {
	args := m.Called(ctx, userID, messages)
	return args.Error(0)
}

func (m *mockUserRepository) ClearChats(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockTripRepository struct {
	mock.Mock
}

func (m *mockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *mockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *mockTripRepository) ListByUser(ctx context.Context, userID string, filter domain.TripFilter) (*domain.TripPage, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripPage), args.Error(1)
}

func (m *mockTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *mockTripRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// stubProvider is a fixed-reply completion provider for handler tests
type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Name() string       { return "stub" }
func (p *stubProvider) IsConfigured() bool { return true }

func (p *stubProvider) Complete(ctx context.Context, history []llm.Message) (*llm.Message, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &llm.Message{Role: "assistant", Content: p.reply}, nil
}

func newStubRouter(p llm.Provider) *llm.Router {
	r := llm.NewRouter("stub")
	r.RegisterProvider(p)
	return r
}
