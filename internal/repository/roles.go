package repository

import (
	"context"
	"errors"
	"sort"

	"vertical/backend/internal/models"
	"vertical/backend/internal/phpserial"

	"github.com/jackc/pgx/v5"
)

const (
	wpRolesOption    = "v34a_user_roles"
	umRolesOption    = "um_roles"
	umRoleMetaPrefix = "um_role_"
	umRoleMetaSuffix = "_meta"
)

// ListRoles reads the WordPress role table and the membership plugin's
// custom roles as two separate lists. The core roles carry capabilities,
// the custom ones their role meta. Each list is sorted by role key for
// stable responses.
func (r *Repository) ListRoles(ctx context.Context) (models.RoleCatalogue, error) {
	cat := models.RoleCatalogue{
		WordPress:      make([]models.Role, 0),
		UltimateMember: make([]models.Role, 0),
	}

	wpRoles, err := r.optionValue(ctx, wpRolesOption)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.RoleCatalogue{}, err
	}
	if wpRoles.Kind == phpserial.KindMap {
		for key, def := range wpRoles.Map {
			role := models.Role{RoleKey: key, Name: key}
			if def.Kind == phpserial.KindMap {
				role.Name = def.Map["name"].StringOr(key)
				if caps, ok := def.Map["capabilities"]; ok {
					role.Capabilities = &caps
				}
			}
			cat.WordPress = append(cat.WordPress, role)
		}
	}

	umRoles, err := r.optionValue(ctx, umRolesOption)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.RoleCatalogue{}, err
	}
	if umRoles.Kind == phpserial.KindList {
		for _, slug := range umRoles.List {
			if slug.Kind != phpserial.KindString || slug.Str == "" {
				continue
			}
			role := models.Role{RoleKey: slug.Str, Name: slug.Str}
			meta, err := r.optionValue(ctx, umRoleMetaPrefix+slug.Str+umRoleMetaSuffix)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return models.RoleCatalogue{}, err
			}
			if meta.Kind == phpserial.KindMap {
				role.Name = meta.Map["name"].StringOr(slug.Str)
				role.Meta = &meta
			}
			cat.UltimateMember = append(cat.UltimateMember, role)
		}
	}

	sort.Slice(cat.WordPress, func(i, j int) bool { return cat.WordPress[i].RoleKey < cat.WordPress[j].RoleKey })
	sort.Slice(cat.UltimateMember, func(i, j int) bool { return cat.UltimateMember[i].RoleKey < cat.UltimateMember[j].RoleKey })
	return cat, nil
}

func (r *Repository) optionValue(ctx context.Context, name string) (phpserial.Value, error) {
	row := r.pool.QueryRow(ctx, `SELECT option_value FROM options WHERE option_name = $1`, name)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return phpserial.Null(), ErrNotFound
		}
		return phpserial.Null(), err
	}
	return phpserial.TryUnserialize(raw), nil
}
