package http

import (
	"errors"
	"net/http"
	"time"

	"expensync/internal/domain/session"
	"expensync/internal/domain/user"
	"expensync/internal/domain/validation"

	"go.uber.org/zap"
)

const accessCookieName = "access_token"

type AuthHandler struct {
	sessions *session.Service
}

func NewAuthHandler(sessions *session.Service) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type SignupResponse struct {
	Message string     `json:"message"`
	User    *user.User `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// HandleSignup handles POST /auth/signup
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.sessions.Signup(r.Context(), session.SignupParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, user.ErrEmailTaken):
		writeError(w, "User with this email already exists", http.StatusConflict)
		return
	case validation.Is(err):
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		internalError(w, "Failed to create user", 0, err)
		return
	}

	writeJSON(w, http.StatusCreated, SignupResponse{Message: "User registered successfully", User: u})
}

// HandleLogin handles POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	tokens, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, session.ErrInvalidCredentials) {
		writeError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		internalError(w, "Failed to log in", 0, err)
		return
	}

	setAuthCookie(w, r, tokens.AccessToken, tokens.AccessExpiresAt)
	writeJSON(w, http.StatusOK, tokens)
}

// HandleRefreshToken handles POST /auth/refresh-token
func (h *AuthHandler) HandleRefreshToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeError(w, "Refresh token is required", http.StatusUnauthorized)
		return
	}

	access, exp, err := h.sessions.Refresh(r.Context(), req.RefreshToken)
	if errors.Is(err, session.ErrInvalidRefreshToken) {
		writeError(w, "Invalid or expired refresh token", http.StatusUnauthorized)
		return
	}
	if err != nil {
		internalError(w, "Failed to refresh token", 0, err)
		return
	}

	setAuthCookie(w, r, access, exp)
	writeJSON(w, http.StatusOK, RefreshResponse{AccessToken: access})
}

// HandleLogout handles POST /auth/logout. The refresh token is optional; the
// access cookie is always cleared.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req RefreshRequest
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}
	if req.RefreshToken != "" {
		if err := h.sessions.Logout(r.Context(), req.RefreshToken); err != nil && !errors.Is(err, session.ErrInvalidRefreshToken) {
			zap.L().Error("failed to revoke refresh token", zap.Error(err))
		}
	}

	clearAuthCookie(w, r)
	writeMessage(w, "Logged out successfully")
}

func isSecure(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

func setAuthCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func clearAuthCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
