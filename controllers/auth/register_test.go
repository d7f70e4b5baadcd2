package auth

import (
	"testing"

	"taskory/models"
)

func TestRegistrationRole(t *testing.T) {
	if got := registrationRole(true); got != models.RoleUser {
		t.Fatalf("invitee role = %q, want %q", got, models.RoleUser)
	}
	if got := registrationRole(false); got != models.RoleSuperadmin {
		t.Fatalf("founder role = %q, want %q", got, models.RoleSuperadmin)
	}
}

// The founder must outrank every other role, otherwise no account in a new
// organization could ever promote anyone to admin.
func TestFounderCanGrantEveryRole(t *testing.T) {
	founder := registrationRole(false)
	for _, role := range []string{models.RoleAdmin, models.RoleManager, models.RoleUser} {
		if !models.RoleOutranks(founder, role) {
			t.Errorf("founder role %q does not outrank %q", founder, role)
		}
	}
}
