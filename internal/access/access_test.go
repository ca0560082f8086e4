package access

import (
	"sort"
	"testing"

	"vertical/backend/internal/phpserial"
)

func TestCanRegister(t *testing.T) {
	cases := []struct {
		name     string
		user     []string
		required []string
		want     bool
	}{
		{"no restriction", []string{"subscriber"}, nil, true},
		{"empty restriction", []string{"subscriber"}, []string{}, true},
		{"match", []string{"subscriber", "driver"}, []string{"driver"}, true},
		{"no match", []string{"subscriber"}, []string{"driver", "admin"}, false},
		{"user has no roles", nil, []string{"driver"}, false},
		{"both empty", nil, nil, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CanRegister(c.user, c.required); got != c.want {
				t.Fatalf("CanRegister(%v, %v) = %v, want %v", c.user, c.required, got, c.want)
			}
		})
	}
}

func TestParseRoleSource(t *testing.T) {
	if ParseRoleSource("metadata") != RoleSourceMetadata {
		t.Fatal("metadata not recognized")
	}
	if ParseRoleSource("ticket") != RoleSourceTicket {
		t.Fatal("ticket not recognized")
	}
	if ParseRoleSource("") != RoleSourceTicket {
		t.Fatal("empty should default to ticket")
	}
	if ParseRoleSource("bogus") != RoleSourceTicket {
		t.Fatal("unknown should default to ticket")
	}
}

func TestRestrictionRolesEnforced(t *testing.T) {
	settings := phpserial.MapValue(map[string]phpserial.Value{
		"_um_custom_access_settings": phpserial.StringValue("1"),
		"_um_accessible_roles": phpserial.MapValue(map[string]phpserial.Value{
			"driver": phpserial.BoolValue(true),
			"member": phpserial.BoolValue(false),
			"admin":  phpserial.StringValue("1"),
		}),
	})
	roles := RestrictionRoles(settings)
	sort.Strings(roles)
	if len(roles) != 2 || roles[0] != "admin" || roles[1] != "driver" {
		t.Fatalf("RestrictionRoles = %v, want [admin driver]", roles)
	}
}

func TestRestrictionRolesNotEnforced(t *testing.T) {
	settings := phpserial.MapValue(map[string]phpserial.Value{
		"_um_custom_access_settings": phpserial.StringValue("0"),
		"_um_accessible_roles": phpserial.MapValue(map[string]phpserial.Value{
			"driver": phpserial.BoolValue(true),
		}),
	})
	if roles := RestrictionRoles(settings); roles != nil {
		t.Fatalf("RestrictionRoles = %v, want nil when flag is off", roles)
	}
	if roles := RestrictionRoles(phpserial.StringValue("junk")); roles != nil {
		t.Fatalf("RestrictionRoles on scalar = %v, want nil", roles)
	}
}

func TestRestrictionRolesListForm(t *testing.T) {
	settings := phpserial.MapValue(map[string]phpserial.Value{
		"_um_custom_access_settings": phpserial.BoolValue(true),
		"_um_accessible_roles": phpserial.ListValue([]phpserial.Value{
			phpserial.StringValue("driver"),
			phpserial.StringValue("member"),
		}),
	})
	roles := RestrictionRoles(settings)
	if len(roles) != 2 || roles[0] != "driver" || roles[1] != "member" {
		t.Fatalf("RestrictionRoles = %v, want [driver member]", roles)
	}
}
