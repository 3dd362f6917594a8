package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smarttravel/api/internal/domain"
	"github.com/smarttravel/api/internal/security"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService handles signup, login and identity verification
type AuthService struct {
	userRepo   domain.UserRepository
	jwtManager *security.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo domain.UserRepository, jwtManager *security.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Signup creates a new user account with a hashed password
func (s *AuthService) Signup(ctx context.Context, input domain.UserCreate) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	hashedPassword, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           primitive.NewObjectID().Hex(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		Chats:        []domain.ChatMessage{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns a fresh session token
func (s *AuthService) Login(ctx context.Context, input domain.UserLogin) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, "", domain.ErrUserNotFound
	}

	if !security.CheckPassword(input.Password, user.PasswordHash) {
		return nil, "", domain.ErrWrongPassword
	}

	token, err := s.jwtManager.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// VerifyUser re-fetches the user behind a validated session and confirms
// the stored identity matches the one the token claims.
func (s *AuthService) VerifyUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.ID != userID {
		return nil, domain.ErrPermission
	}
	return user, nil
}

// ListUsers returns all users
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

// SessionTTL exposes the configured session lifetime for cookie expiry
func (s *AuthService) SessionTTL() time.Duration {
	return s.jwtManager.SessionTTL()
}
