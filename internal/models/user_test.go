package models

import (
	"errors"
	"testing"
)

func TestRolePermissionsNonEmpty(t *testing.T) {
	roles := []Role{
		RoleClientOwner, RoleClientCollaborator,
		RolePM, RoleAdmin, RoleSuperAdmin,
	}
	for _, role := range roles {
		if len(role.Permissions()) == 0 {
			t.Errorf("role %s has no permissions", role)
		}
	}
}

// The permission lists are authored independently, but the product relies on
// the staff roles widening (de_pm ⊆ de_admin ⊆ super_admin) and the client
// collaborator being a subset of the owner. Pin that here so an edit to one
// list cannot silently break the hierarchy.
func TestRolePermissionContainment(t *testing.T) {
	assertSubset := func(narrow, wide Role) {
		t.Helper()
		for _, token := range narrow.Permissions() {
			if !wide.HasPermission(token) {
				t.Errorf("%s has %q but %s does not", narrow, token, wide)
			}
		}
	}

	assertSubset(RolePM, RoleAdmin)
	assertSubset(RoleAdmin, RoleSuperAdmin)
	assertSubset(RoleClientCollaborator, RoleClientOwner)
}

func TestHasPermission(t *testing.T) {
	if !RoleClientOwner.HasPermission("approve_designs") {
		t.Error("client owner should approve designs")
	}
	if RoleClientCollaborator.HasPermission("approve_designs") {
		t.Error("client collaborator should not approve designs")
	}
	if Role("intruder").HasPermission("manage_tasks") {
		t.Error("unknown roles have no permissions")
	}
}

func TestUserLookups(t *testing.T) {
	resetDB(t)

	user, err := testDB.Users.GetByEmail("dr.smith@vetclinic.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if user.Role != RoleClientOwner {
		t.Errorf("expected client_owner, got %s", user.Role)
	}

	_, err = testDB.Users.GetByEmail("stranger@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	pm, err := testDB.Users.GetByRole(RolePM)
	if err != nil {
		t.Fatalf("GetByRole failed: %v", err)
	}
	if pm.ID != "2" {
		t.Errorf("expected seeded PM Jane Cooper, got user %s", pm.ID)
	}
}

func TestGetOrCreate(t *testing.T) {
	resetDB(t)

	user, created, err := testDB.Users.GetOrCreate("google", "oauth-123", User{
		Name:  "New Staffer",
		Email: "new@designengine.com",
		Role:  RolePM,
	})
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if !created {
		t.Error("first call should create the user")
	}

	again, created, err := testDB.Users.GetOrCreate("google", "oauth-123", User{
		Name:  "Should Not Matter",
		Email: "other@designengine.com",
		Role:  RoleAdmin,
	})
	if err != nil {
		t.Fatalf("GetOrCreate failed on second call: %v", err)
	}
	if created {
		t.Error("second call should find the existing user")
	}
	if again.ID != user.ID || again.Name != "New Staffer" {
		t.Error("defaults must not overwrite an existing user")
	}
}
