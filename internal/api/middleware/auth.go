package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/smarttravel/api/internal/api/response"
	"github.com/smarttravel/api/internal/security"
)

type contextKey string

const (
	UserIDKey    contextKey = "userID"
	UserEmailKey contextKey = "userEmail"
)

// SessionMiddleware gates protected routes behind the signed session
// cookie. It never touches storage; user existence is re-checked by the
// endpoint itself.
type SessionMiddleware struct {
	jwtManager   *security.JWTManager
	cookieSigner *security.CookieSigner
	cookieName   string
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(jwtManager *security.JWTManager, cookieSigner *security.CookieSigner, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		jwtManager:   jwtManager,
		cookieSigner: cookieSigner,
		cookieName:   cookieName,
	}
}

// Authenticate validates the session cookie and injects the identity into
// the request context
func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || strings.TrimSpace(cookie.Value) == "" {
			response.Unauthorized(w, "Token Not Received")
			return
		}

		token, err := m.cookieSigner.Verify(cookie.Value)
		if err != nil {
			response.Unauthorized(w, "Token Expired")
			return
		}

		claims, err := m.jwtManager.ValidateSessionToken(token)
		if err != nil {
			response.Unauthorized(w, "Token Expired")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID gets the authenticated user ID from context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserEmail gets the authenticated user email from context
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}
