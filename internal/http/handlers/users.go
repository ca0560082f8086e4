package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"

	"vertical/backend/internal/integrations"
)

// GetUser serves one user row, password hash excluded.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	userID, ok := positiveID(r, "user_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "user_id must be a positive integer")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	user, err := h.repo.GetUser(ctx, userID)
	if err != nil {
		logger.Warn("action", "action", "get_user", "user_id", userID, "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetUserMeta serves the fixed metadata template for one user.
func (h *Handler) GetUserMeta(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	userID, ok := positiveID(r, "user_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "user_id must be a positive integer")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	meta, err := h.repo.UserMeta(ctx, userID)
	if err != nil {
		logger.Warn("action", "action", "get_user_meta", "user_id", userID, "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

// UserProfileByID serves the profile aggregate for one user.
func (h *Handler) UserProfileByID(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	userID, ok := positiveID(r, "user_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "user_id must be a positive integer")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	profile, err := h.cards.UserProfileByID(ctx, userID)
	if err != nil {
		logger.Warn("action", "action", "user_profile_by_id", "user_id", userID, "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UserProfileByEmail serves the profile aggregate resolved through an email.
func (h *Handler) UserProfileByEmail(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	email := r.URL.Query().Get("email")
	if err := h.validator.Var(email, "required,email"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "email must be a valid address")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	profile, err := h.cards.UserProfileByEmail(ctx, email)
	if err != nil {
		logger.Warn("action", "action", "user_profile_by_email", "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UserProfilePicture streams the member's profile photo out of the media
// bucket.
func (h *Handler) UserProfilePicture(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	userID, ok := positiveID(r, "user_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "user_id must be a positive integer")
		return
	}
	if h.s3 == nil {
		writeError(w, http.StatusInternalServerError, "unconfigured", "media storage is not configured")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	meta, err := h.repo.UserMeta(ctx, userID)
	if err != nil {
		logger.Warn("action", "action", "user_profile_picture", "user_id", userID, "error", err)
		writeRepoError(w, err)
		return
	}
	if meta.ProfilePhoto == nil || *meta.ProfilePhoto == "" {
		writeError(w, http.StatusNotFound, "not_found", "user has no profile photo")
		return
	}

	key := integrations.ProfilePhotoKey(userID, *meta.ProfilePhoto)
	obj, err := h.s3.GetObject(ctx, key)
	if err != nil {
		logger.Warn("action", "action", "user_profile_picture", "user_id", userID, "key", key, "error", err)
		writeError(w, http.StatusNotFound, "not_found", "profile photo not available")
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != nil {
		w.Header().Set("Content-Type", *obj.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	if obj.ContentLength != nil {
		w.Header().Set("Content-Length", strconv.FormatInt(*obj.ContentLength, 10))
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", path.Base(*meta.ProfilePhoto)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, obj.Body); err != nil {
		logger.Warn("action", "action", "user_profile_picture", "status", "stream_interrupted", "error", err)
	}
}
