package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/smarttravel/api/internal/api/middleware"
	"github.com/smarttravel/api/internal/api/response"
	"github.com/smarttravel/api/internal/config"
	"github.com/smarttravel/api/internal/domain"
	"github.com/smarttravel/api/internal/security"
	"github.com/smarttravel/api/internal/service"
)

// AuthHandler handles signup, login, logout and auth-status endpoints
type AuthHandler struct {
	authService  *service.AuthService
	cookieSigner *security.CookieSigner
	cfg          config.AuthConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, cookieSigner *security.CookieSigner, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieSigner: cookieSigner,
		cfg:          cfg,
	}
}

// Signup handles user registration
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input domain.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		if errs, ok := fieldErrors(err); ok {
			response.ValidationFailed(w, errs)
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	user, err := h.authService.Signup(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			// 401 for a duplicate is the documented external contract
			response.Unauthorized(w, "User already exists")
			return
		}
		response.InternalError(w, "Something went wrong")
		return
	}

	response.Created(w, map[string]any{
		"message": "User created successfully",
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
	})
}

// Login handles user login and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.UserLogin
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		if errs, ok := fieldErrors(err); ok {
			response.ValidationFailed(w, errs)
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	user, token, err := h.authService.Login(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			response.Unauthorized(w, "User not registered")
		case errors.Is(err, domain.ErrWrongPassword):
			response.Forbidden(w, "Incorrect password")
		default:
			response.InternalError(w, "Something went wrong")
		}
		return
	}

	// Drop any pre-existing session cookie before setting the new one
	h.clearCookie(w)
	h.setCookie(w, h.cookieSigner.Sign(token))

	response.OK(w, map[string]any{
		"message": "Login successful",
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
	})
}

// AuthStatus verifies the current session and returns the user
func (h *AuthHandler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := h.verifiedUser(w, r)
	if !ok {
		return
	}

	response.OK(w, map[string]any{
		"message": "User verified",
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
	})
}

// Logout clears the session cookie. The token itself stays valid until
// natural expiry; only the cookie carrying it is dropped.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := h.verifiedUser(w, r)
	if !ok {
		return
	}

	h.clearCookie(w)

	response.OK(w, map[string]any{
		"message": "Logout successful",
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
	})
}

// ListUsers returns all users, without password hashes
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		response.InternalError(w, "Something went wrong")
		return
	}

	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, map[string]any{
			"id":    u.ID,
			"name":  u.Name,
			"email": u.Email,
		})
	}

	response.OK(w, map[string]any{
		"message": "OK",
		"users":   out,
	})
}

func (h *AuthHandler) verifiedUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Token Not Received")
		return nil, false
	}

	user, err := h.authService.VerifyUser(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			response.Unauthorized(w, "User not registered OR token malfunctioned")
		case errors.Is(err, domain.ErrPermission):
			response.Unauthorized(w, "Permission denied")
		default:
			response.InternalError(w, "Something went wrong")
		}
		return nil, false
	}
	return user, true
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.cfg.CookieDomain,
		Expires:  time.Now().Add(h.cfg.SessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cfg.CookieDomain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
