package handlers

import (
	"net/http"
)

// EventCardByID serves the card aggregate for one event.
func (h *Handler) EventCardByID(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	eventID, ok := positiveID(r, "event_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "event_id must be a positive integer")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	card, err := h.cards.EventCardByID(ctx, eventID)
	if err != nil {
		logger.Warn("action", "action", "event_card_by_id", "event_id", eventID, "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// EventCardQuery serves one page of cards for a timeframe.
func (h *Handler) EventCardQuery(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	q, ok := eventQueryFromRequest(r)
	if !ok {
		logger.Warn("action", "action", "event_card_query", "status", "invalid_params")
		writeError(w, http.StatusBadRequest, "invalid_argument", "invalid timeframe or pagination parameters")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	list, err := h.cards.EventCards(ctx, q)
	if err != nil {
		logger.Error("action", "action", "event_card_query", "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// FullEvent serves the complete aggregate for one event.
func (h *Handler) FullEvent(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	eventID, ok := positiveID(r, "event_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "event_id must be a positive integer")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	full, err := h.cards.FullEvent(ctx, eventID)
	if err != nil {
		logger.Warn("action", "action", "full_event", "event_id", eventID, "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, full)
}
