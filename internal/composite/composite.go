// Package composite assembles the aggregate read models served by the API:
// event cards, full event views and user profiles. It only reads through the
// Store interface, so the pieces stay testable without a database.
package composite

import (
	"context"

	"vertical/backend/internal/models"
	"vertical/backend/internal/phpserial"
	"vertical/backend/internal/repository"
)

// Store is the slice of the repository the aggregates read from.
type Store interface {
	GetEventByID(ctx context.Context, eventID int64) (models.Event, error)
	ListEventsByTimeframe(ctx context.Context, q repository.EventQuery) ([]models.Event, int, error)
	GetPost(ctx context.Context, postID int64) (models.Post, error)
	PostMeta(ctx context.Context, postID int64) (map[string]phpserial.Value, error)
	PostMetaValue(ctx context.Context, postID int64, key string) (phpserial.Value, error)
	GetEventTicket(ctx context.Context, eventID int64) (models.Ticket, error)
	CountValidatedSpaces(ctx context.Context, eventID int64) (int, error)
	ListEnrichedBookings(ctx context.Context, eventID int64) ([]models.EnrichedBooking, error)
	ListPostComments(ctx context.Context, postID int64) ([]models.Comment, error)
	GetLocation(ctx context.Context, locationID int64) (models.Location, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UserMeta(ctx context.Context, userID int64) (models.UserMetadata, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}
