package repository

import (
	"context"
	"database/sql"

	"vertical/backend/internal/models"
	"vertical/backend/internal/phpserial"

	"github.com/jackc/pgx/v5"
)

// ListEventBookings returns the bookings of one event, optionally filtered
// down to validated ones.
func (r *Repository) ListEventBookings(ctx context.Context, eventID int64, validatedOnly bool) ([]models.Booking, error) {
	query := `
SELECT booking_id, event_id, person_id, booking_spaces, booking_comment,
	booking_date::text, booking_status, booking_price, booking_meta
FROM em_bookings
WHERE event_id = $1`
	args := []interface{}{eventID}
	if validatedOnly {
		query += ` AND booking_status = $2`
		args = append(args, models.BookingStatusValidated)
	}
	query += `
ORDER BY booking_id;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CountValidatedSpaces sums the spaces taken by validated bookings. Pending
// and cancelled bookings never consume seats.
func (r *Repository) CountValidatedSpaces(ctx context.Context, eventID int64) (int, error) {
	row := r.pool.QueryRow(ctx, `
SELECT COALESCE(SUM(booking_spaces), 0)
FROM em_bookings
WHERE event_id = $1 AND booking_status = $2;`, eventID, models.BookingStatusValidated)
	var taken int
	if err := row.Scan(&taken); err != nil {
		return 0, err
	}
	return taken, nil
}

// ActiveBookingForUser returns the user's non-cancelled booking on an event,
// or ErrNotFound. Cancelled bookings do not block a re-registration.
func (r *Repository) ActiveBookingForUser(ctx context.Context, eventID, userID int64) (models.Booking, error) {
	row := r.pool.QueryRow(ctx, `
SELECT booking_id, event_id, person_id, booking_spaces, booking_comment,
	booking_date::text, booking_status, booking_price, booking_meta
FROM em_bookings
WHERE event_id = $1 AND person_id = $2 AND booking_status <> $3
ORDER BY booking_id DESC
LIMIT 1;`, eventID, userID, models.BookingStatusCancelled)
	b, err := scanBooking(row)
	if err != nil {
		return models.Booking{}, notFound(err)
	}
	return b, nil
}

// CreateBooking inserts a pending booking and its per-ticket line in one
// transaction and returns the stored row.
func (r *Repository) CreateBooking(ctx context.Context, eventID, userID, ticketID int64, spaces int, price *float64) (models.Booking, error) {
	var out models.Booking
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
INSERT INTO em_bookings (event_id, person_id, booking_spaces, booking_date, booking_status, booking_price)
VALUES ($1, $2, $3, now(), $4, COALESCE($5, 0))
RETURNING booking_id, event_id, person_id, booking_spaces, booking_comment,
	booking_date::text, booking_status, booking_price, booking_meta;`,
			eventID, userID, spaces, models.BookingStatusPending, price)
		b, err := scanBooking(row)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
INSERT INTO em_tickets_bookings (booking_id, ticket_id, ticket_booking_spaces, ticket_booking_price)
VALUES ($1, $2, $3, COALESCE($4, 0));`, b.BookingID, ticketID, spaces, price)
		if err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}
	return out, nil
}

// CancelBooking marks a booking cancelled. The row is kept so the history
// stays visible to the events manager.
func (r *Repository) CancelBooking(ctx context.Context, bookingID int64) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE em_bookings SET booking_status = $2 WHERE booking_id = $1;`, bookingID, models.BookingStatusCancelled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListTicketBookings returns the per-ticket breakdown of one booking.
func (r *Repository) ListTicketBookings(ctx context.Context, bookingID int64) ([]models.TicketBooking, error) {
	rows, err := r.pool.Query(ctx, `
SELECT tb.ticket_id, tb.ticket_booking_spaces, tb.ticket_booking_price, t.ticket_name
FROM em_tickets_bookings tb
JOIN em_tickets t ON t.ticket_id = tb.ticket_id
WHERE tb.booking_id = $1
ORDER BY tb.ticket_id;`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.TicketBooking, 0)
	for rows.Next() {
		var tb models.TicketBooking
		var price sql.NullFloat64
		if err := rows.Scan(&tb.TicketID, &tb.Spaces, &price, &tb.TicketName); err != nil {
			return nil, err
		}
		if price.Valid {
			tb.Price = &price.Float64
		}
		out = append(out, tb)
	}
	return out, rows.Err()
}

// ListEnrichedBookings joins validated bookings with their users for the
// full-event aggregate. Bookings whose person no longer exists keep a nil
// user.
func (r *Repository) ListEnrichedBookings(ctx context.Context, eventID int64) ([]models.EnrichedBooking, error) {
	rows, err := r.pool.Query(ctx, `
SELECT b.booking_id, b.booking_spaces, b.booking_date::text, b.booking_status,
	u.id, u.user_login, u.user_nicename, u.user_email, u.user_registered::text, u.display_name
FROM em_bookings b
LEFT JOIN users u ON u.id = b.person_id
WHERE b.event_id = $1 AND b.booking_status = $2
ORDER BY b.booking_id;`, eventID, models.BookingStatusValidated)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.EnrichedBooking, 0)
	for rows.Next() {
		var eb models.EnrichedBooking
		var date sql.NullString
		var userID sql.NullInt64
		var login, niceName, email, registered, displayName sql.NullString
		if err := rows.Scan(&eb.BookingID, &eb.Spaces, &date, &eb.Status,
			&userID, &login, &niceName, &email, &registered, &displayName); err != nil {
			return nil, err
		}
		if date.Valid {
			eb.Date = &date.String
		}
		if userID.Valid {
			eb.User = &models.User{
				ID:          userID.Int64,
				Login:       login.String,
				NiceName:    niceName.String,
				Email:       email.String,
				Registered:  registered.String,
				DisplayName: displayName.String,
			}
		}
		out = append(out, eb)
	}
	return out, rows.Err()
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var b models.Booking
	var comment, date, meta sql.NullString
	var price sql.NullFloat64
	err := row.Scan(&b.BookingID, &b.EventID, &b.PersonID, &b.Spaces, &comment,
		&date, &b.Status, &price, &meta)
	if err != nil {
		return models.Booking{}, err
	}
	if comment.Valid {
		b.Comment = &comment.String
	}
	if date.Valid {
		b.Date = &date.String
	}
	if price.Valid {
		b.Price = &price.Float64
	}
	if meta.Valid && meta.String != "" {
		b.Meta = phpserial.TryUnserialize(meta.String)
	}
	return b, nil
}
