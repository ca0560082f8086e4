package handlers

import (
	"net/http"
	"time"

	"vertical/backend/internal/models"
	"vertical/backend/internal/repository"
)

type eventListResponse struct {
	Events      []models.Event `json:"events"`
	Count       int            `json:"count"`
	TotalEvents int            `json:"total_events"`
	TotalPages  int            `json:"total_pages"`
	CurrentPage int            `json:"current_page"`
}

// ListEvents serves the raw event listing filtered by timeframe.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	q, ok := eventQueryFromRequest(r)
	if !ok {
		logger.Warn("action", "action", "list_events", "status", "invalid_params")
		writeError(w, http.StatusBadRequest, "invalid_argument", "invalid timeframe or pagination parameters")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	events, total, err := h.repo.ListEventsByTimeframe(ctx, q)
	if err != nil {
		logger.Error("action", "action", "list_events", "error", err)
		writeRepoError(w, err)
		return
	}

	resp := eventListResponse{Events: events, Count: len(events), TotalEvents: total}
	if q.Limit > 0 {
		resp.TotalPages = (total + q.Limit - 1) / q.Limit
		resp.CurrentPage = q.Offset/q.Limit + 1
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetEvent serves one raw event row.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	eventID, ok := positiveID(r, "event_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "event_id must be a positive integer")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	ev, err := h.repo.GetEventByID(ctx, eventID)
	if err != nil {
		logger.Warn("action", "action", "get_event", "event_id", eventID, "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// ListEventTickets serves the tickets attached to one event.
func (h *Handler) ListEventTickets(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	eventID, ok := positiveID(r, "event_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "event_id must be a positive integer")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	tickets, err := h.repo.ListEventTickets(ctx, eventID)
	if err != nil {
		logger.Error("action", "action", "list_event_tickets", "event_id", eventID, "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tickets": tickets, "count": len(tickets)})
}

// ListEventBookings serves an event's bookings, filtered to validated ones
// unless the caller asks for all of them.
func (h *Handler) ListEventBookings(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	eventID, ok := positiveID(r, "event_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "event_id must be a positive integer")
		return
	}
	status, ok := bookingStatusFilter(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "status must be validated or all")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	bookings, err := h.repo.ListEventBookings(ctx, eventID, status == bookingFilterValidated)
	if err != nil {
		logger.Error("action", "action", "list_event_bookings", "event_id", eventID, "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bookings":      bookings,
		"count":         len(bookings),
		"event_id":      eventID,
		"filter_status": status,
	})
}

const (
	bookingFilterValidated = "validated"
	bookingFilterAll       = "all"
)

// bookingStatusFilter reads the status parameter, defaulting to validated.
func bookingStatusFilter(r *http.Request) (string, bool) {
	switch raw := r.URL.Query().Get("status"); raw {
	case "", bookingFilterValidated:
		return bookingFilterValidated, true
	case bookingFilterAll:
		return bookingFilterAll, true
	default:
		return "", false
	}
}

// GetEventLocation serves one venue row.
func (h *Handler) GetEventLocation(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	locationID, ok := positiveID(r, "location_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "location_id must be a positive integer")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	loc, err := h.repo.GetLocation(ctx, locationID)
	if err != nil {
		logger.Warn("action", "action", "get_event_location", "location_id", locationID, "error", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

// eventQueryFromRequest validates the timeframe parameters shared by the raw
// listing and the card listing.
func eventQueryFromRequest(r *http.Request) (repository.EventQuery, bool) {
	q := repository.EventQuery{Timeframe: repository.TimeframeDefault}
	if raw := r.URL.Query().Get("timeframe"); raw != "" {
		q.Timeframe = raw
	}
	switch q.Timeframe {
	case repository.TimeframeWeek, repository.TimeframeMonth, repository.TimeframeYear,
		repository.TimeframeFuture, repository.TimeframeDefault:
	case repository.TimeframeCustom:
		q.StartDate = r.URL.Query().Get("start_date")
		q.EndDate = r.URL.Query().Get("end_date")
		if !validDate(q.StartDate) || !validDate(q.EndDate) {
			return repository.EventQuery{}, false
		}
	default:
		return repository.EventQuery{}, false
	}

	limit, offset, ok := pagination(r)
	if !ok {
		return repository.EventQuery{}, false
	}
	q.Limit = limit
	q.Offset = offset
	return q, true
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
