package handlers

import (
	"net/http"
)

// GetPost serves one post row.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	postID, ok := positiveID(r, "post_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "post_id must be a positive integer")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	post, err := h.repo.GetPost(ctx, postID)
	if err != nil {
		logger.Warn("action", "action", "get_post", "post_id", postID, "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// GetPostMeta serves a post's decoded metadata map.
func (h *Handler) GetPostMeta(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	postID, ok := positiveID(r, "post_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "post_id must be a positive integer")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	meta, err := h.repo.PostMeta(ctx, postID)
	if err != nil {
		logger.Error("action", "action", "get_post_meta", "post_id", postID, "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}
