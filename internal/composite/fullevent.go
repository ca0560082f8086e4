package composite

import (
	"context"
	"errors"

	"vertical/backend/internal/models"
	"vertical/backend/internal/repository"
)

// FullEvent assembles everything known about one event: the raw row, its
// decoded post metadata, the card, validated bookings with their users, the
// comment thread and the venue. Optional pieces missing from storage are
// left null rather than failing the whole aggregate.
func (s *Service) FullEvent(ctx context.Context, eventID int64) (models.FullEvent, error) {
	ev, err := s.store.GetEventByID(ctx, eventID)
	if err != nil {
		return models.FullEvent{}, err
	}
	if ev.PostID == nil {
		return models.FullEvent{}, repository.ErrNotFound
	}
	postID := *ev.PostID

	out := models.FullEvent{EventRaw: ev}

	meta, err := s.store.PostMeta(ctx, postID)
	if err != nil {
		return models.FullEvent{}, err
	}
	out.EventMetadata = meta

	card, err := s.buildCard(ctx, ev)
	if err != nil {
		return models.FullEvent{}, err
	}
	out.EventCard = &card

	bookings, err := s.store.ListEnrichedBookings(ctx, ev.EventID)
	if err != nil {
		return models.FullEvent{}, err
	}
	out.Bookings = bookings

	comments, err := s.store.ListPostComments(ctx, postID)
	if err != nil {
		return models.FullEvent{}, err
	}
	out.Comments = comments

	if ev.LocationID != nil {
		loc, err := s.store.GetLocation(ctx, *ev.LocationID)
		switch {
		case err == nil:
			out.Location = &loc
		case !errors.Is(err, repository.ErrNotFound):
			return models.FullEvent{}, err
		}
	}
	return out, nil
}
