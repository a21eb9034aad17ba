package models

import "time"

// Role is the closed set of platform roles. Adding a role requires revisiting
// every switch in the authz package.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleVolunteer Role = "VOLUNTEER"
	RoleGuardian  Role = "GUARDIAN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleVolunteer, RoleGuardian:
		return true
	}
	return false
}

// AutoApproved reports whether accounts holding this role are approved on
// creation or role change. Volunteers always require admin approval.
func (r Role) AutoApproved() bool {
	switch r {
	case RoleAdmin, RoleGuardian:
		return true
	case RoleVolunteer:
		return false
	}
	return false
}

// Account represents a platform account linked to an external identity
// subject. The identity provider owns authentication; this record owns the
// role and approval state.
type Account struct {
	ID        int64
	SubjectID string
	Email     string
	Role      Role
	Approved  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingApproval reports whether the account is a volunteer still waiting
// for admin approval.
func (a *Account) PendingApproval() bool {
	return a.Role == RoleVolunteer && !a.Approved
}
