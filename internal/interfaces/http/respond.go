package http

import (
	"encoding/json"
	"net/http"
	"time"

	"expensync/internal/domain/transaction"
	"expensync/internal/domain/validation"
	"expensync/internal/shared/middleware"

	"go.uber.org/zap"
)

const maxBodySize = 1 << 20 // 1 MiB

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, messageResponse{Message: message})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
	}
	return userID, ok
}

func internalError(w http.ResponseWriter, msg string, userID int64, err error) {
	zap.L().Error(msg, zap.Int64("user_id", userID), zap.Error(err))
	writeError(w, msg, http.StatusInternalServerError)
}

// writeDomainError maps validation failures to 400 and anything else to 500.
func writeDomainError(w http.ResponseWriter, msg string, userID int64, err error) {
	if validation.Is(err) {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	internalError(w, msg, userID, err)
}

// parseOptionalDate accepts the same formats as transaction dates. Empty input yields nil.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := transaction.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
