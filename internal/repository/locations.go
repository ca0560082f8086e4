package repository

import (
	"context"
	"database/sql"

	"vertical/backend/internal/models"
)

// GetLocation returns one em_locations row.
func (r *Repository) GetLocation(ctx context.Context, locationID int64) (models.Location, error) {
	row := r.pool.QueryRow(ctx, `
SELECT location_id, post_id, location_slug, location_name, location_town,
	location_state, location_region, location_address, location_postcode,
	location_country, location_latitude::text, location_longitude::text
FROM em_locations
WHERE location_id = $1;`, locationID)

	var l models.Location
	var town, state, region, address, postcode, country, lat, lng sql.NullString
	err := row.Scan(&l.LocationID, &l.PostID, &l.Slug, &l.Name, &town,
		&state, &region, &address, &postcode, &country, &lat, &lng)
	if err != nil {
		return models.Location{}, notFound(err)
	}
	assign := func(dst **string, src sql.NullString) {
		if src.Valid {
			s := src.String
			*dst = &s
		}
	}
	assign(&l.Town, town)
	assign(&l.State, state)
	assign(&l.Region, region)
	assign(&l.Address, address)
	assign(&l.Postcode, postcode)
	assign(&l.Country, country)
	assign(&l.Latitude, lat)
	assign(&l.Longitude, lng)
	return l, nil
}
