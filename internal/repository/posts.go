package repository

import (
	"context"
	"database/sql"

	"vertical/backend/internal/models"
	"vertical/backend/internal/phpserial"
)

// GetPost returns one posts row.
func (r *Repository) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, post_author, post_date::text, post_content, post_title,
	COALESCE(post_excerpt, ''), post_status, post_name, post_type, guid
FROM posts
WHERE id = $1;`, postID)

	var p models.Post
	err := row.Scan(&p.ID, &p.Author, &p.Date, &p.Content, &p.Title,
		&p.Excerpt, &p.Status, &p.Name, &p.Type, &p.GUID)
	if err != nil {
		return models.Post{}, notFound(err)
	}
	return p, nil
}

// Meta keys that callers expect as booleans or integers rather than the
// "0"/"1" and numeric strings WordPress stores.
var booleanMetaKeys = map[string]bool{
	"_um_custom_access_settings":     true,
	"_um_access_hide_from_queries":   true,
	"_event_rsvp":                    true,
	"_custom_booking_form":           true,
	"_event_all_day":                 true,
	"_event_active_status":           true,
	"_um_restrict_by_custom_message": true,
}

var numericMetaKeys = map[string]bool{
	"_event_id":          true,
	"_event_spaces":      true,
	"_event_rsvp_spaces": true,
	"_thumbnail_id":      true,
	"_edit_lock":         true,
	"_edit_last":         true,
	"_location_id":       true,
}

// PostMeta returns every meta row of a post as decoded values. Serialized
// blobs are expanded, and well-known keys are coerced to their natural
// boolean or numeric types, including inside nested maps.
func (r *Repository) PostMeta(ctx context.Context, postID int64) (map[string]phpserial.Value, error) {
	rows, err := r.pool.Query(ctx, `
SELECT meta_key, meta_value
FROM postmeta
WHERE post_id = $1;`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]phpserial.Value)
	for rows.Next() {
		var key string
		var raw sql.NullString
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, err
		}
		val := phpserial.Null()
		if raw.Valid {
			val = phpserial.TryUnserialize(raw.String)
		}
		out[key] = coerceMeta(key, val)
	}
	return out, rows.Err()
}

// PostMetaValue returns a single decoded meta value, or ErrNotFound.
func (r *Repository) PostMetaValue(ctx context.Context, postID int64, key string) (phpserial.Value, error) {
	row := r.pool.QueryRow(ctx, `
SELECT meta_value
FROM postmeta
WHERE post_id = $1 AND meta_key = $2
LIMIT 1;`, postID, key)
	var raw sql.NullString
	if err := row.Scan(&raw); err != nil {
		return phpserial.Null(), notFound(err)
	}
	if !raw.Valid {
		return phpserial.Null(), nil
	}
	return coerceMeta(key, phpserial.TryUnserialize(raw.String)), nil
}

func coerceMeta(key string, v phpserial.Value) phpserial.Value {
	switch {
	case booleanMetaKeys[key]:
		return phpserial.ParseBool(v)
	case numericMetaKeys[key]:
		return phpserial.ParseInt(v)
	case v.Kind == phpserial.KindMap:
		out := make(map[string]phpserial.Value, len(v.Map))
		for k, item := range v.Map {
			out[k] = coerceMeta(k, item)
		}
		return phpserial.MapValue(out)
	default:
		return v
	}
}
