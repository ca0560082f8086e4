package composite

import (
	"context"
	"testing"

	"vertical/backend/internal/models"
	"vertical/backend/internal/phpserial"
	"vertical/backend/internal/repository"
)

type fakeStore struct {
	events    map[int64]models.Event
	posts     map[int64]models.Post
	postMeta  map[int64]map[string]phpserial.Value
	tickets   map[int64]models.Ticket
	taken     map[int64]int
	bookings  map[int64][]models.EnrichedBooking
	comments  map[int64][]models.Comment
	locations map[int64]models.Location
	users     map[int64]models.User
	userMeta  map[int64]models.UserMetadata
}

func (f *fakeStore) GetEventByID(_ context.Context, id int64) (models.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return models.Event{}, repository.ErrNotFound
	}
	return ev, nil
}

func (f *fakeStore) ListEventsByTimeframe(_ context.Context, q repository.EventQuery) ([]models.Event, int, error) {
	out := make([]models.Event, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev)
	}
	return out, len(out), nil
}

func (f *fakeStore) GetPost(_ context.Context, id int64) (models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return models.Post{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) PostMeta(_ context.Context, id int64) (map[string]phpserial.Value, error) {
	meta, ok := f.postMeta[id]
	if !ok {
		return map[string]phpserial.Value{}, nil
	}
	return meta, nil
}

func (f *fakeStore) PostMetaValue(_ context.Context, id int64, key string) (phpserial.Value, error) {
	meta, ok := f.postMeta[id]
	if !ok {
		return phpserial.Null(), repository.ErrNotFound
	}
	v, ok := meta[key]
	if !ok {
		return phpserial.Null(), repository.ErrNotFound
	}
	return v, nil
}

func (f *fakeStore) GetEventTicket(_ context.Context, id int64) (models.Ticket, error) {
	t, ok := f.tickets[id]
	if !ok {
		return models.Ticket{}, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeStore) CountValidatedSpaces(_ context.Context, id int64) (int, error) {
	return f.taken[id], nil
}

func (f *fakeStore) ListEnrichedBookings(_ context.Context, id int64) ([]models.EnrichedBooking, error) {
	return f.bookings[id], nil
}

func (f *fakeStore) ListPostComments(_ context.Context, id int64) ([]models.Comment, error) {
	return f.comments[id], nil
}

func (f *fakeStore) GetLocation(_ context.Context, id int64) (models.Location, error) {
	l, ok := f.locations[id]
	if !ok {
		return models.Location{}, repository.ErrNotFound
	}
	return l, nil
}

func (f *fakeStore) GetUser(_ context.Context, id int64) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (f *fakeStore) UserMeta(_ context.Context, id int64) (models.UserMetadata, error) {
	m, ok := f.userMeta[id]
	if !ok {
		return models.UserMetadata{}, repository.ErrNotFound
	}
	return m, nil
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func i64Ptr(n int64) *int64   { return &n }

func newFakeStore() *fakeStore {
	locID := int64(9)
	return &fakeStore{
		events: map[int64]models.Event{
			42: {
				EventID:    42,
				PostID:     i64Ptr(100),
				LocationID: &locID,
				EventOwner: 1,
				Status:     "1",
				Name:       "Friday Night Drive",
				StartDate:  strPtr("2024-06-07"),
				EndDate:    strPtr("2024-06-10"),
				StartTime:  strPtr("09:30:00"),
				EndTime:    strPtr("18:00:00"),
				RSVP:       true,
				Spaces:     intPtr(80),
			},
		},
		posts: map[int64]models.Post{
			100: {ID: 100, Title: "Friday Night Drive", Content: "<p>Bring your <b>own</b> car.</p>"},
			555: {ID: 555, Type: "attachment", GUID: "https://cdn.example.com/flyer.jpg"},
		},
		postMeta: map[int64]map[string]phpserial.Value{
			100: {
				"_thumbnail_id": phpserial.StringValue("555"),
				"_event_rsvp":   phpserial.BoolValue(true),
			},
		},
		tickets: map[int64]models.Ticket{
			42: {TicketID: 7, EventID: 42, Name: "Standard", Spaces: 50},
		},
		taken: map[int64]int{42: 60},
		comments: map[int64][]models.Comment{
			100: {{CommentID: 1, PostID: 100, Content: "see you there"}},
		},
		locations: map[int64]models.Location{
			9: {LocationID: 9, PostID: 101, Name: "Old Depot"},
		},
		users: map[int64]models.User{
			12: {ID: 12, Login: "marie", Email: "marie@example.com", DisplayName: "Marie D"},
		},
		userMeta: map[int64]models.UserMetadata{
			12: {
				AccountStatus: strPtr("approved"),
				Adresse:       strPtr("3 rue des Lilas"),
				CodePostal:    strPtr("69001"),
				Ville:         strPtr("Lyon"),
				MobileNumber:  strPtr("+33600000000"),
				FirstName:     strPtr("Marie"),
				LastName:      strPtr("Dupont"),
				UserLevel:     strPtr("2"),
				Capabilities: phpserial.MapValue(map[string]phpserial.Value{
					"subscriber": phpserial.BoolValue(true),
					"um_driver":  phpserial.BoolValue(true),
					"editor":     phpserial.BoolValue(false),
				}),
				UmMemberDirectoryData: phpserial.MapValue(map[string]phpserial.Value{
					"account_status": phpserial.StringValue("approved"),
					"profile_photo":  phpserial.BoolValue(true),
					"verified":       phpserial.StringValue("1"),
				}),
			},
		},
	}
}

func TestEventCardByID(t *testing.T) {
	svc := NewService(newFakeStore())
	card, err := svc.EventCardByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("EventCardByID: %v", err)
	}
	if card.Title != "Friday Night Drive" {
		t.Fatalf("title = %q", card.Title)
	}
	if card.TotalSeats != 50 {
		t.Fatalf("total_seats = %d, want ticket spaces 50", card.TotalSeats)
	}
	if card.AvailableSeats != 0 {
		t.Fatalf("available_seats = %d, want 0 when overbooked", card.AvailableSeats)
	}
	if !card.SpansWeekend {
		t.Fatal("fri..mon range should span the weekend")
	}
	if card.WholeDay {
		t.Fatal("a 09:30 start is not a whole-day event")
	}
	if card.StartTime == nil || *card.StartTime != "09:30" {
		t.Fatalf("start_time = %v, want 09:30", card.StartTime)
	}
	if card.ThumbnailSource == nil || *card.ThumbnailSource != "https://cdn.example.com/flyer.jpg" {
		t.Fatalf("thumbnail_source = %v", card.ThumbnailSource)
	}
	if card.Excerpt != "Bring your own car." {
		t.Fatalf("excerpt = %q", card.Excerpt)
	}
	if !card.ReservationsOpened {
		t.Fatal("rsvp flag should open reservations")
	}
}

func TestEventCardMissingEvent(t *testing.T) {
	svc := NewService(newFakeStore())
	if _, err := svc.EventCardByID(context.Background(), 999); err != repository.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestEventCardMissingLinkedPostID(t *testing.T) {
	store := newFakeStore()
	ev := store.events[42]
	ev.PostID = nil
	store.events[42] = ev
	svc := NewService(store)
	if _, err := svc.EventCardByID(context.Background(), 42); err != repository.ErrNotFound {
		t.Fatalf("card err = %v, want ErrNotFound when the event has no linked post id", err)
	}
	if _, err := svc.FullEvent(context.Background(), 42); err != repository.ErrNotFound {
		t.Fatalf("full event err = %v, want ErrNotFound when the event has no linked post id", err)
	}
}

func TestEventCardsPagination(t *testing.T) {
	svc := NewService(newFakeStore())
	list, err := svc.EventCards(context.Background(), repository.EventQuery{Timeframe: repository.TimeframeDefault, Limit: 10, Offset: 20})
	if err != nil {
		t.Fatalf("EventCards: %v", err)
	}
	if list.TotalEvents != 1 {
		t.Fatalf("total_events = %d", list.TotalEvents)
	}
	if list.Count != len(list.Events) {
		t.Fatalf("count = %d, want page size %d", list.Count, len(list.Events))
	}
	if list.TotalPages != 1 {
		t.Fatalf("total_pages = %d", list.TotalPages)
	}
	if list.CurrentPage != 3 {
		t.Fatalf("current_page = %d, want offset/limit+1 = 3", list.CurrentPage)
	}
}

func TestFullEvent(t *testing.T) {
	svc := NewService(newFakeStore())
	full, err := svc.FullEvent(context.Background(), 42)
	if err != nil {
		t.Fatalf("FullEvent: %v", err)
	}
	if full.EventRaw.EventID != 42 {
		t.Fatalf("event_raw id = %d", full.EventRaw.EventID)
	}
	if full.EventCard == nil || full.EventCard.EventID != 42 {
		t.Fatal("card missing from aggregate")
	}
	if len(full.Comments) != 1 {
		t.Fatalf("comments = %d", len(full.Comments))
	}
	if full.Location == nil || full.Location.Name != "Old Depot" {
		t.Fatalf("location = %+v", full.Location)
	}
	if !phpserial.Truthy(full.EventMetadata["_event_rsvp"]) {
		t.Fatal("metadata should carry the rsvp flag")
	}
}

func TestUserProfileMapping(t *testing.T) {
	svc := NewService(newFakeStore())
	profile, err := svc.UserProfileByID(context.Background(), 12)
	if err != nil {
		t.Fatalf("UserProfileByID: %v", err)
	}
	if profile.Status != models.StatusApproved {
		t.Fatalf("status = %q", profile.Status)
	}
	if profile.Address == nil || *profile.Address != "3 rue des Lilas" {
		t.Fatalf("address = %v", profile.Address)
	}
	if profile.PostalCode == nil || *profile.PostalCode != "69001" {
		t.Fatalf("postal_code = %v", profile.PostalCode)
	}
	if profile.City == nil || *profile.City != "Lyon" {
		t.Fatalf("city = %v", profile.City)
	}
	if profile.Phone == nil || *profile.Phone != "+33600000000" {
		t.Fatalf("phone = %v", profile.Phone)
	}
	if profile.FullName != "Marie Dupont" {
		t.Fatalf("full_name = %q", profile.FullName)
	}
	if len(profile.Roles) != 2 || profile.Roles[0] != "subscriber" || profile.Roles[1] != "um_driver" {
		t.Fatalf("roles = %v, want enabled capabilities only", profile.Roles)
	}
	if profile.UserLevel != 2 {
		t.Fatalf("user_level = %d", profile.UserLevel)
	}
	if profile.DirectoryData == nil {
		t.Fatal("directory data missing")
	}
	if profile.DirectoryData.Status != models.StatusApproved || !profile.DirectoryData.Verified || !profile.DirectoryData.HasProfilePicture {
		t.Fatalf("directory data = %+v", profile.DirectoryData)
	}
}

func TestUserProfileByEmail(t *testing.T) {
	svc := NewService(newFakeStore())
	profile, err := svc.UserProfileByEmail(context.Background(), "marie@example.com")
	if err != nil {
		t.Fatalf("UserProfileByEmail: %v", err)
	}
	if profile.ID != 12 {
		t.Fatalf("id = %d", profile.ID)
	}
	if _, err := svc.UserProfileByEmail(context.Background(), "nobody@example.com"); err != repository.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUserProfileWithoutMeta(t *testing.T) {
	store := newFakeStore()
	delete(store.userMeta, 12)
	svc := NewService(store)
	if _, err := svc.UserProfileByID(context.Background(), 12); err != repository.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound for a user with no metadata rows", err)
	}
}
