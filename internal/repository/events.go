package repository

import (
	"context"
	"database/sql"
	"fmt"

	"vertical/backend/internal/models"
)

// Timeframe values accepted by the event listing.
const (
	TimeframeWeek    = "week"
	TimeframeMonth   = "month"
	TimeframeYear    = "year"
	TimeframeFuture  = "future"
	TimeframeCustom  = "custom"
	TimeframeDefault = "default"
)

// EventQuery parameterizes the event listing. StartDate and EndDate are only
// read for the custom timeframe.
type EventQuery struct {
	Timeframe string
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

const eventColumns = `
	e.event_id, e.post_id, e.location_id, e.event_owner, e.event_status,
	e.event_name,
	e.event_start_date::text, e.event_end_date::text,
	e.event_start_time::text, e.event_end_time::text,
	COALESCE(e.event_rsvp, 0), e.event_spaces`

// ListEventsByTimeframe returns published events whose start date falls in
// the requested window, newest first, plus the total row count before
// pagination.
func (r *Repository) ListEventsByTimeframe(ctx context.Context, q EventQuery) ([]models.Event, int, error) {
	query := `SELECT` + eventColumns + `,
	COUNT(*) OVER() AS total
FROM em_events e
WHERE e.event_status = '1'`
	args := []interface{}{}
	idx := 1

	switch q.Timeframe {
	case TimeframeWeek:
		query += ` AND e.event_start_date >= date_trunc('week', CURRENT_DATE)::date
	AND e.event_start_date < (date_trunc('week', CURRENT_DATE) + interval '7 days')::date`
	case TimeframeMonth:
		query += ` AND e.event_start_date >= date_trunc('month', CURRENT_DATE)::date
	AND e.event_start_date < (date_trunc('month', CURRENT_DATE) + interval '1 month')::date`
	case TimeframeYear:
		query += ` AND e.event_start_date >= date_trunc('year', CURRENT_DATE)::date
	AND e.event_start_date < (date_trunc('year', CURRENT_DATE) + interval '1 year')::date`
	case TimeframeFuture:
		query += ` AND e.event_start_date >= CURRENT_DATE`
	case TimeframeCustom:
		query += fmt.Sprintf(` AND e.event_start_date >= $%d::date AND e.event_start_date <= $%d::date`, idx, idx+1)
		args = append(args, q.StartDate, q.EndDate)
		idx += 2
	}

	query += fmt.Sprintf(`
ORDER BY e.event_start_date DESC, e.event_id DESC
LIMIT $%d OFFSET $%d;`, idx, idx+1)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]models.Event, 0)
	total := 0
	for rows.Next() {
		var ev models.Event
		var postID, locationID sql.NullInt64
		var startDate, endDate, startTime, endTime sql.NullString
		var rsvp int
		var spaces sql.NullInt32
		if err := rows.Scan(
			&ev.EventID, &postID, &locationID, &ev.EventOwner, &ev.Status,
			&ev.Name, &startDate, &endDate, &startTime, &endTime,
			&rsvp, &spaces, &total,
		); err != nil {
			return nil, 0, err
		}
		fillEvent(&ev, postID, locationID, startDate, endDate, startTime, endTime, rsvp, spaces)
		out = append(out, ev)
	}
	return out, total, rows.Err()
}

// GetEventByID returns one event regardless of its status.
func (r *Repository) GetEventByID(ctx context.Context, eventID int64) (models.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+eventColumns+`
FROM em_events e
WHERE e.event_id = $1;`, eventID)

	var ev models.Event
	var postID, locationID sql.NullInt64
	var startDate, endDate, startTime, endTime sql.NullString
	var rsvp int
	var spaces sql.NullInt32
	err := row.Scan(
		&ev.EventID, &postID, &locationID, &ev.EventOwner, &ev.Status,
		&ev.Name, &startDate, &endDate, &startTime, &endTime,
		&rsvp, &spaces,
	)
	if err != nil {
		return models.Event{}, notFound(err)
	}
	fillEvent(&ev, postID, locationID, startDate, endDate, startTime, endTime, rsvp, spaces)
	return ev, nil
}

func fillEvent(ev *models.Event, postID, locationID sql.NullInt64, startDate, endDate, startTime, endTime sql.NullString, rsvp int, spaces sql.NullInt32) {
	if postID.Valid {
		ev.PostID = &postID.Int64
	}
	if locationID.Valid {
		ev.LocationID = &locationID.Int64
	}
	if startDate.Valid {
		ev.StartDate = &startDate.String
	}
	if endDate.Valid {
		ev.EndDate = &endDate.String
	}
	if startTime.Valid {
		ev.StartTime = &startTime.String
	}
	if endTime.Valid {
		ev.EndTime = &endTime.String
	}
	ev.RSVP = rsvp != 0
	if spaces.Valid {
		n := int(spaces.Int32)
		ev.Spaces = &n
	}
}
