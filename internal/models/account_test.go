package models

import "testing"

func TestRoleAutoApproved(t *testing.T) {
	tests := []struct {
		role     Role
		expected bool
	}{
		{RoleAdmin, true},
		{RoleGuardian, true},
		{RoleVolunteer, false},
	}

	for _, tt := range tests {
		if result := tt.role.AutoApproved(); result != tt.expected {
			t.Errorf("AutoApproved(%q) = %v, want %v", tt.role, result, tt.expected)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleVolunteer, RoleGuardian} {
		if !role.Valid() {
			t.Errorf("Valid(%q) = false, want true", role)
		}
	}
	for _, role := range []Role{Role("STUDENT"), Role("admin"), Role("")} {
		if role.Valid() {
			t.Errorf("Valid(%q) = true, want false", role)
		}
	}
}

func TestAccountPendingApproval(t *testing.T) {
	tests := []struct {
		name     string
		account  Account
		expected bool
	}{
		{"unapproved volunteer", Account{Role: RoleVolunteer, Approved: false}, true},
		{"approved volunteer", Account{Role: RoleVolunteer, Approved: true}, false},
		{"admin", Account{Role: RoleAdmin, Approved: true}, false},
		{"guardian", Account{Role: RoleGuardian, Approved: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.account.PendingApproval(); result != tt.expected {
				t.Errorf("PendingApproval() = %v, want %v", result, tt.expected)
			}
		})
	}
}
