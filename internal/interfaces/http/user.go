package http

import (
	"errors"
	"net/http"

	"expensync/internal/domain/session"
	"expensync/internal/domain/user"
)

type UserHandler struct {
	sessions *session.Service
}

func NewUserHandler(sessions *session.Service) *UserHandler {
	return &UserHandler{sessions: sessions}
}

// HandleMe handles GET /auth/me
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	u, err := h.sessions.Me(r.Context(), userID)
	if errors.Is(err, user.ErrUserNotFound) {
		writeError(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, "Failed to load user", userID, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}
