package models

import "vertical/backend/internal/phpserial"

// Event mirrors one em_events row. Dates and times stay as the calendar
// strings the events manager stores; nothing in this layer converts them to
// timestamps.
type Event struct {
	EventID    int64   `json:"event_id"`
	PostID     *int64  `json:"post_id"`
	LocationID *int64  `json:"location_id"`
	EventOwner int64   `json:"event_owner"`
	Status     string  `json:"event_status"`
	Name       string  `json:"event_name"`
	StartDate  *string `json:"event_start_date"`
	EndDate    *string `json:"event_end_date"`
	StartTime  *string `json:"event_start_time"`
	EndTime    *string `json:"event_end_time"`
	RSVP       bool    `json:"event_rsvp"`
	Spaces     *int    `json:"event_spaces"`
}

// Ticket is the booking template an event exposes. MembersRoles holds the
// decoded role restriction list, or the raw blob when it cannot be decoded.
type Ticket struct {
	TicketID     int64           `json:"ticket_id"`
	EventID      int64           `json:"event_id"`
	Name         string          `json:"ticket_name"`
	Description  *string         `json:"ticket_description"`
	Price        *float64        `json:"ticket_price"`
	Spaces       int             `json:"ticket_spaces"`
	MembersRoles phpserial.Value `json:"ticket_members_roles"`
}

// RoleNames extracts the role restriction list from the decoded blob.
func (t Ticket) RoleNames() []string {
	if t.MembersRoles.Kind != phpserial.KindList {
		return nil
	}
	out := make([]string, 0, len(t.MembersRoles.List))
	for _, item := range t.MembersRoles.List {
		if item.Kind == phpserial.KindString && item.Str != "" {
			out = append(out, item.Str)
		}
	}
	return out
}

// Booking status values used by the events manager tables.
const (
	BookingStatusPending   = 0
	BookingStatusValidated = 1
	BookingStatusCancelled = 3
)

// Booking mirrors one em_bookings row.
type Booking struct {
	BookingID int64           `json:"booking_id"`
	EventID   int64           `json:"event_id"`
	PersonID  int64           `json:"person_id"`
	Spaces    int             `json:"booking_spaces"`
	Comment   *string         `json:"booking_comment"`
	Date      *string         `json:"booking_date"`
	Status    int             `json:"booking_status"`
	Price     *float64        `json:"booking_price"`
	Meta      phpserial.Value `json:"booking_meta"`
}

// EnrichedBooking is a booking with its person resolved, as the full-event
// aggregate exposes it.
type EnrichedBooking struct {
	BookingID int64   `json:"booking_id"`
	User      *User   `json:"user"`
	Spaces    int     `json:"spaces"`
	Date      *string `json:"booking_date"`
	Status    int     `json:"booking_status"`
}

// TicketBooking is one line of a registration's per-ticket breakdown.
type TicketBooking struct {
	TicketID   int64    `json:"ticket_id"`
	Spaces     int      `json:"spaces"`
	Price      *float64 `json:"price"`
	TicketName string   `json:"ticket_name"`
}

// User mirrors one users row. The password hash column is never selected.
type User struct {
	ID          int64  `json:"id"`
	Login       string `json:"user_login"`
	NiceName    string `json:"user_nicename"`
	Email       string `json:"user_email"`
	Registered  string `json:"user_registered"`
	DisplayName string `json:"display_name"`
}

// Post mirrors one posts row.
type Post struct {
	ID      int64  `json:"id"`
	Author  int64  `json:"post_author"`
	Date    string `json:"post_date"`
	Content string `json:"post_content"`
	Title   string `json:"post_title"`
	Excerpt string `json:"post_excerpt"`
	Status  string `json:"post_status"`
	Name    string `json:"post_name"`
	Type    string `json:"post_type"`
	GUID    string `json:"guid"`
}

// Location mirrors one em_locations row.
type Location struct {
	LocationID int64   `json:"location_id"`
	PostID     int64   `json:"post_id"`
	Slug       string  `json:"location_slug"`
	Name       string  `json:"location_name"`
	Town       *string `json:"location_town"`
	State      *string `json:"location_state"`
	Region     *string `json:"location_region"`
	Address    *string `json:"location_address"`
	Postcode   *string `json:"location_postcode"`
	Country    *string `json:"location_country"`
	Latitude   *string `json:"location_latitude"`
	Longitude  *string `json:"location_longitude"`
}

// Comment mirrors one comments row, reshaped with the flattened field names
// the API exposes.
type Comment struct {
	CommentID int64  `json:"comment_id"`
	PostID    int64  `json:"post_id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Email     string `json:"email"`
	UserID    int64  `json:"user_id"`
	Date      string `json:"date"`
	Approved  string `json:"approved"`
	Agent     string `json:"agent"`
	Type      string `json:"type"`
	Parent    int64  `json:"parent"`
}

// Role is one role definition from either the WordPress role option or the
// Ultimate Member role options.
type Role struct {
	RoleKey      string           `json:"role_key"`
	Name         string           `json:"name"`
	Capabilities *phpserial.Value `json:"capabilities,omitempty"`
	Meta         *phpserial.Value `json:"meta,omitempty"`
}

// RoleCatalogue keeps the two role sources as separate lists.
type RoleCatalogue struct {
	WordPress      []Role `json:"wordpress_roles"`
	UltimateMember []Role `json:"ultimate_member_roles"`
}

// EventCard is the composite card shape consumed by listing UIs.
type EventCard struct {
	Title              string  `json:"title"`
	ThumbnailSource    *string `json:"thumbnail_source"`
	StartDate          *string `json:"start_date"`
	EndDate            *string `json:"end_date"`
	StartTime          *string `json:"start_time"`
	EndTime            *string `json:"end_time"`
	AvailableSeats     int     `json:"available_seats"`
	TotalSeats         int     `json:"total_seats"`
	ReservationsOpened bool    `json:"reservations_opened"`
	Excerpt            string  `json:"excerpt"`
	EventID            int64   `json:"event_id"`
	PostID             int64   `json:"post_id"`
	SpansWeekend       bool    `json:"spans_weekend"`
	WholeDay           bool    `json:"whole_day"`
}

// FullEvent aggregates everything known about one event. Categories remain a
// placeholder, as upstream never shipped them.
type FullEvent struct {
	EventRaw      Event                      `json:"event_raw"`
	EventMetadata map[string]phpserial.Value `json:"event_metadata"`
	EventCard     *EventCard                 `json:"event_card"`
	Bookings      []EnrichedBooking          `json:"bookings"`
	Comments      []Comment                  `json:"comments"`
	Location      *Location                  `json:"location"`
	Categories    string                     `json:"categories"`
}
