package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"vertical/backend/internal/composite"
	"vertical/backend/internal/repository"
)

// ListComments serves a post's comment thread. An empty thread is a normal
// empty list, not an error.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	postID, ok := positiveID(r, "post_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "post_id must be a positive integer")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	comments, err := h.repo.ListPostComments(ctx, postID)
	if err != nil {
		logger.Error("action", "action", "list_comments", "post_id", postID, "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

type createCommentRequest struct {
	EventID  int64  `json:"event_id" validate:"required,gt=0"`
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
	Content  string `json:"content" validate:"required"`
	ParentID int64  `json:"parent_id" validate:"gte=0"`
}

// CreateComment posts a comment on behalf of a known user. Markup is
// stripped before storage.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "invalid json")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "event_id, user_id and content are required")
		return
	}
	content := strings.TrimSpace(composite.PlainText(req.Content))
	if content == "" {
		writeError(w, http.StatusBadRequest, "invalid_argument", "content must not be empty")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	postID, err := h.resolveEventPost(ctx, req.EventID)
	if err != nil {
		logger.Warn("action", "action", "create_comment", "event_id", req.EventID, "error", err)
		writeRepoError(w, err)
		return
	}
	user, err := h.repo.GetUser(ctx, req.UserID)
	if err != nil {
		logger.Warn("action", "action", "create_comment", "user_id", req.UserID, "error", err)
		writeRepoError(w, err)
		return
	}
	comment, err := h.repo.CreateComment(ctx, postID, user, content, r.UserAgent(), req.ParentID)
	if err != nil {
		logger.Error("action", "action", "create_comment", "error", err)
		writeRepoError(w, err)
		return
	}
	logger.Info("action", "action", "create_comment", "comment_id", comment.CommentID, "event_id", req.EventID)
	writeJSON(w, http.StatusCreated, comment)
}

type updateCommentRequest struct {
	CommentID int64  `json:"comment_id" validate:"required,gt=0"`
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	Content   string `json:"content" validate:"required"`
}

// UpdateComment edits a comment the user owns.
func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	var req updateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "invalid json")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "comment_id, user_id and content are required")
		return
	}
	content := strings.TrimSpace(composite.PlainText(req.Content))
	if content == "" {
		writeError(w, http.StatusBadRequest, "invalid_argument", "content must not be empty")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	comment, err := h.repo.UpdateComment(ctx, req.CommentID, req.UserID, content)
	if err != nil {
		logger.Warn("action", "action", "update_comment", "comment_id", req.CommentID, "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

type deleteCommentRequest struct {
	CommentID int64 `json:"comment_id" validate:"required,gt=0"`
	UserID    int64 `json:"user_id" validate:"required,gt=0"`
}

// DeleteComment removes one comment the user owns.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	var req deleteCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "invalid json")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "comment_id and user_id are required")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	if err := h.repo.DeleteComment(ctx, req.CommentID, req.UserID); err != nil {
		logger.Warn("action", "action", "delete_comment", "comment_id", req.CommentID, "error", err)
		writeRepoError(w, err)
		return
	}
	logger.Info("action", "action", "delete_comment", "comment_id", req.CommentID)
	writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": 1})
}

type deleteUserCommentsRequest struct {
	EventID int64 `json:"event_id" validate:"required,gt=0"`
	UserID  int64 `json:"user_id" validate:"required,gt=0"`
}

// DeleteUserComments clears every comment one user left on an event.
func (h *Handler) DeleteUserComments(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	var req deleteUserCommentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "invalid json")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "event_id and user_id are required")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	postID, err := h.resolveEventPost(ctx, req.EventID)
	if err != nil {
		logger.Warn("action", "action", "delete_user_comments", "event_id", req.EventID, "error", err)
		writeRepoError(w, err)
		return
	}
	deleted, err := h.repo.DeleteUserComments(ctx, postID, req.UserID)
	if err != nil {
		logger.Error("action", "action", "delete_user_comments", "event_id", req.EventID, "error", err)
		writeRepoError(w, err)
		return
	}
	logger.Info("action", "action", "delete_user_comments", "event_id", req.EventID, "user_id", req.UserID, "deleted", deleted)
	writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": deleted})
}

type deleteAllCommentsRequest struct {
	EventID int64 `json:"event_id" validate:"required,gt=0"`
}

// DeleteAllComments clears an event's whole comment thread.
func (h *Handler) DeleteAllComments(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	var req deleteAllCommentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "invalid json")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "event_id is required")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	postID, err := h.resolveEventPost(ctx, req.EventID)
	if err != nil {
		logger.Warn("action", "action", "delete_all_comments", "event_id", req.EventID, "error", err)
		writeRepoError(w, err)
		return
	}
	deleted, err := h.repo.DeleteAllComments(ctx, postID)
	if err != nil {
		logger.Error("action", "action", "delete_all_comments", "event_id", req.EventID, "error", err)
		writeRepoError(w, err)
		return
	}
	logger.Info("action", "action", "delete_all_comments", "event_id", req.EventID, "deleted", deleted)
	writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": deleted})
}

// resolveEventPost maps an event onto its linked post. An event without a
// linked post behaves like a missing event.
func (h *Handler) resolveEventPost(ctx context.Context, eventID int64) (int64, error) {
	ev, err := h.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if ev.PostID == nil {
		return 0, repository.ErrNotFound
	}
	return *ev.PostID, nil
}
