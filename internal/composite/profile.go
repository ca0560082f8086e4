package composite

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"vertical/backend/internal/models"
	"vertical/backend/internal/phpserial"
)

// UserProfileByID assembles the canonical profile for one user.
func (s *Service) UserProfileByID(ctx context.Context, userID int64) (models.UserProfile, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return models.UserProfile{}, err
	}
	return s.buildProfile(ctx, user)
}

// UserProfileByEmail assembles the profile for the user owning an email.
func (s *Service) UserProfileByEmail(ctx context.Context, email string) (models.UserProfile, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return models.UserProfile{}, err
	}
	return s.buildProfile(ctx, user)
}

func (s *Service) buildProfile(ctx context.Context, user models.User) (models.UserProfile, error) {
	profile := models.UserProfile{
		ID:          user.ID,
		Login:       user.Login,
		NiceName:    user.NiceName,
		Email:       user.Email,
		Registered:  user.Registered,
		DisplayName: user.DisplayName,
		Status:      models.StatusInactive,
		Roles:       []string{},
	}

	meta, err := s.store.UserMeta(ctx, user.ID)
	if err != nil {
		return models.UserProfile{}, err
	}

	profile.LastLogin = meta.UmLastLogin
	if meta.AccountStatus != nil {
		profile.Status = models.ParseAccountStatus(*meta.AccountStatus)
	}
	profile.Address = meta.Adresse
	profile.DateOfBirth = meta.BirthDate
	profile.PostalCode = meta.CodePostal
	profile.City = meta.Ville
	profile.Phone = meta.MobileNumber
	profile.Nickname = meta.Nickname
	if meta.FirstName != nil {
		profile.FirstName = *meta.FirstName
	}
	if meta.LastName != nil {
		profile.LastName = *meta.LastName
	}
	if meta.FullName != nil {
		profile.FullName = *meta.FullName
	}
	if profile.FullName == "" {
		profile.FullName = strings.TrimSpace(profile.FirstName + " " + profile.LastName)
	}

	profile.DirectoryData = parseDirectoryData(meta.UmMemberDirectoryData)
	profile.Roles = RolesFromCapabilities(meta.Capabilities)
	if meta.UserLevel != nil {
		if level, err := strconv.Atoi(strings.TrimSpace(*meta.UserLevel)); err == nil {
			profile.UserLevel = level
		}
	}
	return profile, nil
}

// parseDirectoryData decodes the member-directory sub-structure. A blob of
// any other shape yields nil.
func parseDirectoryData(v phpserial.Value) *models.DirectoryData {
	if v.Kind != phpserial.KindMap {
		return nil
	}
	return &models.DirectoryData{
		Status:            models.ParseAccountStatus(v.Map["account_status"].StringOr("")),
		HideInMembers:     phpserial.Truthy(v.Map["hide_in_members"]),
		HasProfilePicture: phpserial.Truthy(v.Map["profile_photo"]),
		HasCoverPicture:   phpserial.Truthy(v.Map["cover_photo"]),
		Verified:          phpserial.Truthy(v.Map["verified"]),
	}
}

// RolesFromCapabilities lists the role keys enabled in a capabilities map,
// sorted for stable output.
func RolesFromCapabilities(v phpserial.Value) []string {
	roles := []string{}
	if v.Kind != phpserial.KindMap {
		return roles
	}
	for key, enabled := range v.Map {
		if phpserial.Truthy(enabled) {
			roles = append(roles, key)
		}
	}
	sort.Strings(roles)
	return roles
}
