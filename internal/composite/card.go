package composite

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"vertical/backend/internal/derive"
	"vertical/backend/internal/models"
	"vertical/backend/internal/phpserial"
	"vertical/backend/internal/repository"

	"github.com/PuerkitoBio/goquery"
)

const excerptMaxRunes = 300

// CardList is one page of event cards plus pagination bookkeeping. Count is
// the page size, TotalEvents the match count before pagination.
type CardList struct {
	Events      []models.EventCard `json:"events"`
	Count       int                `json:"count"`
	TotalEvents int                `json:"total_events"`
	TotalPages  int                `json:"total_pages"`
	CurrentPage int                `json:"current_page"`
}

// EventCardByID builds the card aggregate for a single event.
func (s *Service) EventCardByID(ctx context.Context, eventID int64) (models.EventCard, error) {
	ev, err := s.store.GetEventByID(ctx, eventID)
	if err != nil {
		return models.EventCard{}, err
	}
	return s.buildCard(ctx, ev)
}

// EventCards builds cards for one page of the timeframe listing.
func (s *Service) EventCards(ctx context.Context, q repository.EventQuery) (CardList, error) {
	events, total, err := s.store.ListEventsByTimeframe(ctx, q)
	if err != nil {
		return CardList{}, err
	}
	cards := make([]models.EventCard, 0, len(events))
	for _, ev := range events {
		card, err := s.buildCard(ctx, ev)
		if err != nil {
			return CardList{}, err
		}
		cards = append(cards, card)
	}
	out := CardList{Events: cards, Count: len(cards), TotalEvents: total}
	if q.Limit > 0 {
		out.TotalPages = (total + q.Limit - 1) / q.Limit
		out.CurrentPage = q.Offset/q.Limit + 1
	}
	return out, nil
}

func (s *Service) buildCard(ctx context.Context, ev models.Event) (models.EventCard, error) {
	if ev.PostID == nil || *ev.PostID <= 0 {
		return models.EventCard{}, repository.ErrNotFound
	}
	postID := *ev.PostID
	card := models.EventCard{
		Title:              ev.Name,
		EventID:            ev.EventID,
		PostID:             postID,
		StartDate:          ev.StartDate,
		EndDate:            ev.EndDate,
		StartTime:          derive.FormatHHMM(ev.StartTime),
		EndTime:            derive.FormatHHMM(ev.EndTime),
		ReservationsOpened: ev.RSVP,
		SpansWeekend:       derive.SpansWeekend(ev.StartDate, ev.EndDate),
		WholeDay:           derive.WholeDay(ev.StartTime, ev.EndTime),
	}

	totalSeats := 0
	if ev.Spaces != nil {
		totalSeats = *ev.Spaces
	}
	ticket, err := s.store.GetEventTicket(ctx, ev.EventID)
	switch {
	case err == nil:
		if ticket.Spaces > 0 {
			totalSeats = ticket.Spaces
		}
	case !errors.Is(err, repository.ErrNotFound):
		return models.EventCard{}, err
	}
	taken, err := s.store.CountValidatedSpaces(ctx, ev.EventID)
	if err != nil {
		return models.EventCard{}, err
	}
	card.TotalSeats = totalSeats
	card.AvailableSeats = derive.AvailableSeats(totalSeats, taken)

	post, err := s.store.GetPost(ctx, postID)
	switch {
	case err == nil:
		if card.Title == "" {
			card.Title = post.Title
		}
		card.Excerpt = excerpt(post)
	case !errors.Is(err, repository.ErrNotFound):
		return models.EventCard{}, err
	}

	if src, err := s.thumbnailSource(ctx, postID); err != nil {
		return models.EventCard{}, err
	} else if src != "" {
		card.ThumbnailSource = &src
	}
	return card, nil
}

// thumbnailSource follows the featured-image pointer to the attachment's
// public URL. A missing pointer or attachment is not an error.
func (s *Service) thumbnailSource(ctx context.Context, postID int64) (string, error) {
	val, err := s.store.PostMetaValue(ctx, postID, "_thumbnail_id")
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	coerced := phpserial.ParseInt(val)
	if coerced.Kind != phpserial.KindInt || coerced.Int <= 0 {
		return "", nil
	}
	attachment, err := s.store.GetPost(ctx, coerced.Int)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return attachment.GUID, nil
}

// excerpt prefers the stored excerpt and otherwise strips the content down
// to plain text, truncated on a rune boundary.
func excerpt(post models.Post) string {
	if strings.TrimSpace(post.Excerpt) != "" {
		return post.Excerpt
	}
	text := PlainText(post.Content)
	if utf8.RuneCountInString(text) <= excerptMaxRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:excerptMaxRunes])) + "…"
}

// PlainText strips markup from an HTML fragment and collapses whitespace.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
