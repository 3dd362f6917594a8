package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/smarttravel/api/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookieName = "auth_token"

func newTestSessionMiddleware(t *testing.T, ttl time.Duration) (*SessionMiddleware, *security.JWTManager, *security.CookieSigner) {
	t.Helper()
	jwtManager := security.NewJWTManager("test-jwt-secret", ttl)
	signer, err := security.NewCookieSigner("test-cookie-secret")
	require.NoError(t, err)
	return NewSessionMiddleware(jwtManager, signer, testCookieName), jwtManager, signer
}

func sessionCookie(t *testing.T, jwtManager *security.JWTManager, signer *security.CookieSigner, userID, email string) *http.Cookie {
	t.Helper()
	token, err := jwtManager.GenerateSessionToken(userID, email)
	require.NoError(t, err)
	return &http.Cookie{Name: testCookieName, Value: signer.Sign(token)}
}

func TestSessionMiddleware_Authenticate(t *testing.T) {
	mw, jwtManager, signer := newTestSessionMiddleware(t, time.Hour)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "user-1", userID)

		email, ok := GetUserEmail(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "alice@example.com", email)

		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid cookie passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user/auth-status", nil)
		req.AddCookie(sessionCookie(t, jwtManager, signer, "user-1", "alice@example.com"))
		rec := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user/auth-status", nil)
		rec := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token Not Received")
	})

	t.Run("empty cookie value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user/auth-status", nil)
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: ""})
		rec := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token Not Received")
	})

	t.Run("unsigned token", func(t *testing.T) {
		token, err := jwtManager.GenerateSessionToken("user-1", "alice@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/user/auth-status", nil)
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
		rec := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token Expired")
	})

	t.Run("tampered cookie", func(t *testing.T) {
		cookie := sessionCookie(t, jwtManager, signer, "user-1", "alice@example.com")
		cookie.Value = strings.Replace(cookie.Value, "e", "f", 1)

		req := httptest.NewRequest(http.MethodGet, "/user/auth-status", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token Expired")
	})

	t.Run("expired session", func(t *testing.T) {
		expiredMW, expiredJWT, expiredSigner := newTestSessionMiddleware(t, -time.Minute)

		req := httptest.NewRequest(http.MethodGet, "/user/auth-status", nil)
		req.AddCookie(sessionCookie(t, expiredJWT, expiredSigner, "user-1", "alice@example.com"))
		rec := httptest.NewRecorder()

		expiredMW.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token Expired")
	})
}
