// Package access decides whether a user may register for an event based on
// role restrictions. Restrictions come from one of two sources, selected by
// configuration: the ticket's member-role list, or the event post's
// content-restriction metadata.
package access

import "vertical/backend/internal/phpserial"

// RoleSource selects where required roles are read from.
type RoleSource string

const (
	// RoleSourceTicket reads required roles from the event ticket's
	// member-role list.
	RoleSourceTicket RoleSource = "ticket"
	// RoleSourceMetadata reads required roles from the post's
	// content-restriction settings.
	RoleSourceMetadata RoleSource = "metadata"
)

// ParseRoleSource maps a config string to a RoleSource, defaulting to ticket.
func ParseRoleSource(s string) RoleSource {
	if RoleSource(s) == RoleSourceMetadata {
		return RoleSourceMetadata
	}
	return RoleSourceTicket
}

// CanRegister reports whether a user holding userRoles satisfies
// requiredRoles. An empty requirement admits everyone; otherwise at least one
// role must match.
func CanRegister(userRoles, requiredRoles []string) bool {
	if len(requiredRoles) == 0 {
		return true
	}
	held := make(map[string]struct{}, len(userRoles))
	for _, r := range userRoles {
		held[r] = struct{}{}
	}
	for _, r := range requiredRoles {
		if _, ok := held[r]; ok {
			return true
		}
	}
	return false
}

// RestrictionRoles extracts the required role list from a post's
// content-restriction settings. The settings value is a serialized map where
// the access flag gates enforcement and the role sub-map lists role names
// with per-role allow flags. Returns nil when restriction is not enforced.
func RestrictionRoles(settings phpserial.Value) []string {
	if settings.Kind != phpserial.KindMap {
		return nil
	}
	enforced, ok := settings.Map["_um_custom_access_settings"]
	if !ok || !phpserial.Truthy(enforced) {
		return nil
	}
	rolesVal, ok := settings.Map["_um_accessible_roles"]
	if !ok {
		return nil
	}
	var roles []string
	switch rolesVal.Kind {
	case phpserial.KindMap:
		for name, allowed := range rolesVal.Map {
			if phpserial.Truthy(allowed) {
				roles = append(roles, name)
			}
		}
	case phpserial.KindList:
		for _, v := range rolesVal.List {
			if v.Kind == phpserial.KindString && v.Str != "" {
				roles = append(roles, v.Str)
			}
		}
	}
	return roles
}
