// Package registration implements the event sign-up workflow: eligibility
// checks against role restrictions, duplicate detection and booking
// lifecycle transitions.
package registration

import (
	"context"
	"errors"
	"fmt"

	"vertical/backend/internal/access"
	"vertical/backend/internal/models"
	"vertical/backend/internal/phpserial"
	"vertical/backend/internal/repository"
)

// Sentinel errors callers map onto HTTP statuses.
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrAlreadyBooked   = errors.New("user already has a booking on this event")
	ErrEventFull       = errors.New("event has no seats left")
	ErrClosed          = errors.New("event does not take reservations")
)

// ForbiddenError carries the roles the caller would have needed.
type ForbiddenError struct {
	RequiredRoles []string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("user roles do not satisfy restriction %v", e.RequiredRoles)
}

const restrictionMetaKey = "um_content_restriction"

// Store is the slice of the repository the workflow writes through.
type Store interface {
	GetEventByID(ctx context.Context, eventID int64) (models.Event, error)
	GetEventTicket(ctx context.Context, eventID int64) (models.Ticket, error)
	PostMetaValue(ctx context.Context, postID int64, key string) (phpserial.Value, error)
	CountValidatedSpaces(ctx context.Context, eventID int64) (int, error)
	ActiveBookingForUser(ctx context.Context, eventID, userID int64) (models.Booking, error)
	CreateBooking(ctx context.Context, eventID, userID, ticketID int64, spaces int, price *float64) (models.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64) error
	ListTicketBookings(ctx context.Context, bookingID int64) ([]models.TicketBooking, error)
}

// ProfileSource resolves the registering user's profile and roles.
type ProfileSource interface {
	UserProfileByID(ctx context.Context, userID int64) (models.UserProfile, error)
}

type Service struct {
	store      Store
	profiles   ProfileSource
	roleSource access.RoleSource
}

func NewService(store Store, profiles ProfileSource, roleSource access.RoleSource) *Service {
	return &Service{store: store, profiles: profiles, roleSource: roleSource}
}

// Result is a completed registration: the pending booking plus its
// per-ticket breakdown.
type Result struct {
	Booking models.Booking         `json:"booking"`
	Tickets []models.TicketBooking `json:"tickets"`
}

// Register books one seat for the user. The booking lands pending; a site
// operator validates it later, so it does not consume a seat yet.
func (s *Service) Register(ctx context.Context, eventID, userID int64) (Result, error) {
	ev, err := s.store.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Result{}, ErrEventNotFound
		}
		return Result{}, err
	}
	if !ev.RSVP {
		return Result{}, ErrClosed
	}

	profile, err := s.profiles.UserProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Result{}, ErrUserNotFound
		}
		return Result{}, err
	}

	ticket, err := s.store.GetEventTicket(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Result{}, ErrClosed
		}
		return Result{}, err
	}

	required, err := s.requiredRoles(ctx, ev, ticket)
	if err != nil {
		return Result{}, err
	}
	if !access.CanRegister(profile.Roles, required) {
		return Result{}, &ForbiddenError{RequiredRoles: required}
	}

	if _, err := s.store.ActiveBookingForUser(ctx, eventID, userID); err == nil {
		return Result{}, ErrAlreadyBooked
	} else if !errors.Is(err, repository.ErrNotFound) {
		return Result{}, err
	}

	totalSeats := ticket.Spaces
	if totalSeats == 0 && ev.Spaces != nil {
		totalSeats = *ev.Spaces
	}
	taken, err := s.store.CountValidatedSpaces(ctx, eventID)
	if err != nil {
		return Result{}, err
	}
	if totalSeats > 0 && taken >= totalSeats {
		return Result{}, ErrEventFull
	}

	booking, err := s.store.CreateBooking(ctx, eventID, userID, ticket.TicketID, 1, ticket.Price)
	if err != nil {
		return Result{}, err
	}
	tickets, err := s.store.ListTicketBookings(ctx, booking.BookingID)
	if err != nil {
		return Result{}, err
	}
	return Result{Booking: booking, Tickets: tickets}, nil
}

// Unregister cancels the user's active booking on an event. The row is kept
// with a cancelled status.
func (s *Service) Unregister(ctx context.Context, eventID, userID int64) (models.Booking, error) {
	if _, err := s.store.GetEventByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Booking{}, ErrEventNotFound
		}
		return models.Booking{}, err
	}
	booking, err := s.store.ActiveBookingForUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	if err := s.store.CancelBooking(ctx, booking.BookingID); err != nil {
		return models.Booking{}, err
	}
	booking.Status = models.BookingStatusCancelled
	return booking, nil
}

// requiredRoles resolves the restriction list from the configured source.
func (s *Service) requiredRoles(ctx context.Context, ev models.Event, ticket models.Ticket) ([]string, error) {
	if s.roleSource == access.RoleSourceMetadata {
		if ev.PostID == nil {
			return nil, nil
		}
		settings, err := s.store.PostMetaValue(ctx, *ev.PostID, restrictionMetaKey)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return access.RestrictionRoles(settings), nil
	}
	return ticket.RoleNames(), nil
}
