package repository

import (
	"context"
	"database/sql"

	"vertical/backend/internal/models"
	"vertical/backend/internal/phpserial"
)

const userColumns = `id, user_login, user_nicename, user_email, user_registered::text, display_name`

// GetUser returns one users row. The password hash column is never read.
func (r *Repository) GetUser(ctx context.Context, userID int64) (models.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1;`, userID)
	return scanUser(row)
}

// GetUserByEmail resolves a user by their registered email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_email = $1;`, email)
	return scanUser(row)
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Login, &u.NiceName, &u.Email, &u.Registered, &u.DisplayName)
	if err != nil {
		return models.User{}, notFound(err)
	}
	return u, nil
}

// UserMeta projects a user's meta rows onto the fixed response template.
// Keys absent from storage stay null; keys outside the template are dropped.
func (r *Repository) UserMeta(ctx context.Context, userID int64) (models.UserMetadata, error) {
	rows, err := r.pool.Query(ctx, `
SELECT meta_key, meta_value
FROM usermeta
WHERE user_id = $1;`, userID)
	if err != nil {
		return models.UserMetadata{}, err
	}
	defer rows.Close()

	var meta models.UserMetadata
	found := false
	for rows.Next() {
		var key string
		var raw sql.NullString
		if err := rows.Scan(&key, &raw); err != nil {
			return models.UserMetadata{}, err
		}
		found = true
		if !raw.Valid {
			continue
		}
		assignUserMeta(&meta, key, raw.String)
	}
	if err := rows.Err(); err != nil {
		return models.UserMetadata{}, err
	}
	if !found {
		return models.UserMetadata{}, ErrNotFound
	}
	return meta, nil
}

func assignUserMeta(meta *models.UserMetadata, key, raw string) {
	switch key {
	case "_application_passwords":
		meta.ApplicationPasswords = phpserial.TryUnserialize(raw)
	case "_um_last_login":
		meta.UmLastLogin = &raw
	case "account_status":
		meta.AccountStatus = &raw
	case "adresse":
		meta.Adresse = &raw
	case "birth_date":
		meta.BirthDate = &raw
	case "code_postal":
		meta.CodePostal = &raw
	case "first_name":
		meta.FirstName = &raw
	case "full_name":
		meta.FullName = &raw
	case "last_name":
		meta.LastName = &raw
	case "mobile_number":
		meta.MobileNumber = &raw
	case "nickname":
		meta.Nickname = &raw
	case "profile_photo":
		meta.ProfilePhoto = &raw
	case "um_member_directory_data":
		meta.UmMemberDirectoryData = phpserial.TryUnserialize(raw)
	case "v34a_capabilities":
		meta.Capabilities = phpserial.TryUnserialize(raw)
	case "v34a_user_level":
		meta.UserLevel = &raw
	case "ville":
		meta.Ville = &raw
	}
}
