package repository

import (
	"context"
	"database/sql"

	"vertical/backend/internal/models"
	"vertical/backend/internal/phpserial"
)

// ListEventTickets returns every ticket attached to an event. The serialized
// member-role blob is decoded leniently; undecodable blobs pass through raw.
func (r *Repository) ListEventTickets(ctx context.Context, eventID int64) ([]models.Ticket, error) {
	rows, err := r.pool.Query(ctx, `
SELECT ticket_id, event_id, ticket_name, ticket_description, ticket_price,
	COALESCE(ticket_spaces, 0), ticket_members_roles
FROM em_tickets
WHERE event_id = $1
ORDER BY ticket_id;`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetEventTicket returns the first ticket of an event, which the events
// manager treats as the default booking template.
func (r *Repository) GetEventTicket(ctx context.Context, eventID int64) (models.Ticket, error) {
	row := r.pool.QueryRow(ctx, `
SELECT ticket_id, event_id, ticket_name, ticket_description, ticket_price,
	COALESCE(ticket_spaces, 0), ticket_members_roles
FROM em_tickets
WHERE event_id = $1
ORDER BY ticket_id
LIMIT 1;`, eventID)
	t, err := scanTicket(row)
	if err != nil {
		return models.Ticket{}, notFound(err)
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTicket(row rowScanner) (models.Ticket, error) {
	var t models.Ticket
	var description sql.NullString
	var price sql.NullFloat64
	var roles sql.NullString
	err := row.Scan(&t.TicketID, &t.EventID, &t.Name, &description, &price, &t.Spaces, &roles)
	if err != nil {
		return models.Ticket{}, err
	}
	if description.Valid {
		t.Description = &description.String
	}
	if price.Valid {
		t.Price = &price.Float64
	}
	if roles.Valid && roles.String != "" {
		t.MembersRoles = phpserial.TryUnserialize(roles.String)
	}
	return t, nil
}
