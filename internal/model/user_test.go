package model

import (
	"errors"
	"testing"
)

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		name          string
		role, minimum string
		want          bool
	}{
		{"admin meets admin", RoleAdmin, RoleAdmin, true},
		{"admin meets manager", RoleAdmin, RoleManager, true},
		{"admin meets user", RoleAdmin, RoleUser, true},
		{"manager below admin", RoleManager, RoleAdmin, false},
		{"manager meets manager", RoleManager, RoleManager, true},
		{"manager meets user", RoleManager, RoleUser, true},
		{"user below admin", RoleUser, RoleAdmin, false},
		{"user below manager", RoleUser, RoleManager, false},
		{"user meets user", RoleUser, RoleUser, true},
		{"unknown role fails closed", "superuser", RoleUser, false},
		{"unknown minimum fails closed", RoleAdmin, "superuser", false},
		{"empty role fails closed", "", RoleUser, false},
		{"both empty fail closed", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RoleAtLeast(tc.role, tc.minimum); got != tc.want {
				t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", tc.role, tc.minimum, got, tc.want)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	for _, p := range []string{"", "short", "1234567"} {
		if err := ValidatePassword(p); !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("ValidatePassword(%q) = %v, want ErrPasswordTooShort", p, err)
		}
	}
	for _, p := range []string{"12345678", "forklift-operator-9"} {
		if err := ValidatePassword(p); err != nil {
			t.Errorf("ValidatePassword(%q) = %v, want nil", p, err)
		}
	}
}
