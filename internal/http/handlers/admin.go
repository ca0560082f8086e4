package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type rotateKeyRequest struct {
	Password string `json:"password"`
	NewKey   string `json:"new_key"`
}

const minKeyLength = 16

// RotateAPIKey replaces the stored access key. The caller proves operator
// identity with the admin password; the new key takes effect on the next
// request since the gate reads it from the options table.
func (h *Handler) RotateAPIKey(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	var req rotateKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "invalid json")
		return
	}
	if h.cfg.AdminPassHash == "" {
		logger.Warn("action", "action", "rotate_api_key", "status", "disabled")
		writeError(w, http.StatusForbidden, "forbidden", "admin operations are disabled")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPassHash), []byte(req.Password)); err != nil {
		logger.Warn("action", "action", "rotate_api_key", "status", "invalid_credentials")
		writeError(w, http.StatusForbidden, "forbidden", "invalid credentials")
		return
	}
	newKey := strings.TrimSpace(req.NewKey)
	if len(newKey) < minKeyLength {
		writeError(w, http.StatusBadRequest, "invalid_argument", "new_key must be at least 16 characters")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	if err := h.repo.SetAPIKey(ctx, newKey); err != nil {
		logger.Error("action", "action", "rotate_api_key", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "could not store the new key")
		return
	}
	logger.Info("action", "action", "rotate_api_key", "status", "rotated")
	writeJSON(w, http.StatusOK, map[string]string{"status": "rotated"})
}
