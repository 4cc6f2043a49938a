// Package web provides shared HTTP plumbing: response helpers, context keys
// and router middleware.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// GetUserID retrieves the authenticated caller's user ID from the request
// context. Responds 401 and returns false when the request carries none.
func GetUserID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok || userID == "" {
		RespondError(w, logger, http.StatusUnauthorized, "Access token required")
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(userID)
	if err != nil {
		RespondError(w, logger, http.StatusForbidden, "Invalid or expired token")
		return uuid.Nil, false
	}
	return parsed, true
}
