package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"vertical/backend/internal/registration"
)

type registrationRequest struct {
	EventID int64 `json:"event_id" validate:"required,gt=0"`
	UserID  int64 `json:"user_id" validate:"required,gt=0"`
}

// Register books one seat on an event for a member.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "invalid json")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "event_id and user_id must be positive integers")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	result, err := h.reg.Register(ctx, req.EventID, req.UserID)
	if err != nil {
		h.writeRegistrationError(w, logger, "register", req, err)
		return
	}
	logger.Info("action", "action", "register", "event_id", req.EventID, "user_id", req.UserID, "booking_id", result.Booking.BookingID)
	writeJSON(w, http.StatusCreated, result)
}

// Unregister cancels a member's booking on an event.
func (h *Handler) Unregister(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "invalid json")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "event_id and user_id must be positive integers")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	booking, err := h.reg.Unregister(ctx, req.EventID, req.UserID)
	if err != nil {
		h.writeRegistrationError(w, logger, "unregister", req, err)
		return
	}
	logger.Info("action", "action", "unregister", "event_id", req.EventID, "user_id", req.UserID, "booking_id", booking.BookingID)

	resp := map[string]interface{}{"booking": booking}
	if !h.cfg.SuppressCancelNotice {
		resp["notice"] = "booking cancelled, the event organizer has been notified"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeRegistrationError(w http.ResponseWriter, logger *slog.Logger, action string, req registrationRequest, err error) {
	var forbidden *registration.ForbiddenError
	switch {
	case errors.Is(err, registration.ErrEventNotFound),
		errors.Is(err, registration.ErrUserNotFound),
		errors.Is(err, registration.ErrBookingNotFound):
		logger.Warn("action", "action", action, "event_id", req.EventID, "user_id", req.UserID, "status", "not_found")
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.As(err, &forbidden):
		logger.Warn("action", "action", action, "event_id", req.EventID, "user_id", req.UserID, "status", "forbidden")
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"code":           "forbidden",
			"message":        "user roles do not allow registering for this event",
			"required_roles": forbidden.RequiredRoles,
		})
	case errors.Is(err, registration.ErrAlreadyBooked):
		logger.Warn("action", "action", action, "event_id", req.EventID, "user_id", req.UserID, "status", "already_booked")
		writeError(w, http.StatusBadRequest, "already_booked", err.Error())
	case errors.Is(err, registration.ErrEventFull), errors.Is(err, registration.ErrClosed):
		logger.Warn("action", "action", action, "event_id", req.EventID, "user_id", req.UserID, "status", "rejected")
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	default:
		logger.Warn("action", "action", action, "event_id", req.EventID, "user_id", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
