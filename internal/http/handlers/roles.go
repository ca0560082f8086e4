package handlers

import (
	"net/http"

	"vertical/backend/internal/models"
)

// ListRoles serves both role catalogues. The capability and role-meta blobs
// are stripped unless the caller asks for them with with_meta.
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	cat, err := h.repo.ListRoles(ctx)
	if err != nil {
		logger.Error("action", "action", "list_roles", "error", err)
		writeRepoError(w, err)
		return
	}
	if !includeRoleMeta(r) {
		stripRoleMeta(&cat)
	}
	writeJSON(w, http.StatusOK, cat)
}

func includeRoleMeta(r *http.Request) bool {
	switch r.URL.Query().Get("with_meta") {
	case "1", "true":
		return true
	}
	return false
}

func stripRoleMeta(cat *models.RoleCatalogue) {
	for i := range cat.WordPress {
		cat.WordPress[i].Capabilities = nil
		cat.WordPress[i].Meta = nil
	}
	for i := range cat.UltimateMember {
		cat.UltimateMember[i].Capabilities = nil
		cat.UltimateMember[i].Meta = nil
	}
}
