package models

import "vertical/backend/internal/phpserial"

// AccountStatus is the closed set of member account states owned by the
// membership plugin. This layer only reflects it.
type AccountStatus string

const (
	StatusApproved     AccountStatus = "approved"
	StatusPendingAdmin AccountStatus = "awaiting_admin_review"
	StatusPendingEmail AccountStatus = "awaiting_email_confirmation"
	StatusRejected     AccountStatus = "rejected"
	StatusInactive     AccountStatus = "inactive"
	StatusDisabled     AccountStatus = "disabled"
)

// ParseAccountStatus maps a raw status string onto the closed set.
// Anything unrecognized, including the empty string, falls back to inactive.
func ParseAccountStatus(raw string) AccountStatus {
	switch AccountStatus(raw) {
	case StatusApproved, StatusPendingAdmin, StatusPendingEmail, StatusRejected, StatusInactive, StatusDisabled:
		return AccountStatus(raw)
	default:
		return StatusInactive
	}
}

// UserMetadata is the fixed template the /usermeta endpoint always emits.
// Keys missing from storage stay null; keys present in storage but absent
// here are never exposed.
type UserMetadata struct {
	ApplicationPasswords  phpserial.Value `json:"_application_passwords"`
	UmLastLogin           *string         `json:"_um_last_login"`
	AccountStatus         *string         `json:"account_status"`
	Adresse               *string         `json:"adresse"`
	BirthDate             *string         `json:"birth_date"`
	CodePostal            *string         `json:"code_postal"`
	FirstName             *string         `json:"first_name"`
	FullName              *string         `json:"full_name"`
	LastName              *string         `json:"last_name"`
	MobileNumber          *string         `json:"mobile_number"`
	Nickname              *string         `json:"nickname"`
	ProfilePhoto          *string         `json:"profile_photo"`
	UmMemberDirectoryData phpserial.Value `json:"um_member_directory_data"`
	Capabilities          phpserial.Value `json:"v34a_capabilities"`
	UserLevel             *string         `json:"v34a_user_level"`
	Ville                 *string         `json:"ville"`
}

// DirectoryData is the parsed member-directory sub-structure.
type DirectoryData struct {
	Status            AccountStatus `json:"status"`
	HideInMembers     bool          `json:"hide_in_members"`
	HasProfilePicture bool          `json:"has_profile_picture"`
	HasCoverPicture   bool          `json:"has_cover_picture"`
	Verified          bool          `json:"verified"`
}

// UserProfile merges the core user row, the metadata template and the parsed
// membership sub-structures. Field names are the canonical English ones; the
// repository maps the legacy French meta keys onto them.
type UserProfile struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	NiceName    string `json:"nice_name"`
	Email       string `json:"email"`
	Registered  string `json:"registered"`
	DisplayName string `json:"display_name"`

	LastLogin   *string       `json:"last_login"`
	Status      AccountStatus `json:"status"`
	Address     *string       `json:"address"`
	DateOfBirth *string       `json:"date_of_birth"`
	PostalCode  *string       `json:"postal_code"`
	City        *string       `json:"city"`
	Phone       *string       `json:"phone"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	FullName    string        `json:"full_name"`
	Nickname    *string       `json:"nickname"`

	DirectoryData *DirectoryData `json:"directory_data"`
	Roles         []string       `json:"roles"`
	UserLevel     int            `json:"user_level"`
}
