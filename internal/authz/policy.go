// Package authz is the single place where role and ownership rules live.
// Services fetch the entities involved and ask for a decision; the policy
// itself never touches storage.
package authz

import (
	"errors"

	"skillbridge/internal/models"
)

// Denial sentinels. ErrPendingApproval is surfaced separately from the other
// two so callers can tell an unapproved volunteer why they are locked out.
var (
	ErrPendingApproval  = errors.New("volunteer account is pending admin approval")
	ErrRoleNotPermitted = errors.New("role not permitted for this action")
	ErrNotOwner         = errors.New("only the owner may perform this action")
)

// Action is the closed set of permission-checked action classes.
type Action int

const (
	// ActionAdministerAccounts covers listing accounts, listing pending
	// volunteers and approving them.
	ActionAdministerAccounts Action = iota

	// ActionReadAccount covers reading a single account record.
	ActionReadAccount

	// ActionManageCatalog covers creating offerings, engagements and videos,
	// and mutating offerings (which carry no ownership gate).
	ActionManageCatalog

	// ActionMutateEngagement covers updating or deleting an engagement.
	ActionMutateEngagement

	// ActionMutateVideo covers updating or deleting a video.
	ActionMutateVideo

	// ActionReadCatalog covers reads of offerings, engagements and videos.
	ActionReadCatalog

	// ActionManageDependents covers guardian registration, dependent
	// management and enrollment actions.
	ActionManageDependents
)

// Target carries the pre-fetched entities a decision may depend on. Only the
// fields relevant to the action need to be set.
type Target struct {
	// AccountID is the account being read for ActionReadAccount.
	AccountID int64

	// Engagement is the engagement being mutated.
	Engagement *models.Engagement

	// Video is the video being mutated.
	Video *models.Video

	// Dependent is the dependent being mutated, with Guardian holding the
	// acting account's guardian record for the ownership comparison.
	Dependent *models.Dependent
	Guardian  *models.Guardian
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  error
}

// Err returns nil for an allowed decision and the denial reason otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.Reason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason error) Decision {
	return Decision{Reason: reason}
}

// Authorize decides whether actor may perform action on target. It is a pure
// function over its inputs. Rules are evaluated in order: the
// pending-approval gate, then role gates, then ownership gates; anything not
// explicitly allowed is denied.
func Authorize(actor models.Account, action Action, target Target) Decision {
	// Unapproved volunteers may do nothing except read their own account.
	if actor.PendingApproval() {
		if action == ActionReadAccount && target.AccountID == actor.ID {
			return allow()
		}
		return deny(ErrPendingApproval)
	}

	switch action {
	case ActionAdministerAccounts:
		switch actor.Role {
		case models.RoleAdmin:
			return allow()
		case models.RoleVolunteer, models.RoleGuardian:
			return deny(ErrRoleNotPermitted)
		}

	case ActionReadAccount:
		if target.AccountID == actor.ID {
			return allow()
		}
		switch actor.Role {
		case models.RoleAdmin:
			return allow()
		case models.RoleVolunteer, models.RoleGuardian:
			return deny(ErrRoleNotPermitted)
		}

	case ActionManageCatalog:
		switch actor.Role {
		case models.RoleAdmin, models.RoleVolunteer:
			return allow()
		case models.RoleGuardian:
			return deny(ErrRoleNotPermitted)
		}

	case ActionMutateEngagement:
		switch actor.Role {
		case models.RoleAdmin, models.RoleVolunteer:
			// Ownership only: even admins may not touch another presenter's
			// engagement.
			if target.Engagement == nil || target.Engagement.PresenterID != actor.ID {
				return deny(ErrNotOwner)
			}
			return allow()
		case models.RoleGuardian:
			return deny(ErrRoleNotPermitted)
		}

	case ActionMutateVideo:
		switch actor.Role {
		case models.RoleAdmin, models.RoleVolunteer:
			if target.Video == nil || target.Video.CreatedBy != actor.ID {
				return deny(ErrNotOwner)
			}
			return allow()
		case models.RoleGuardian:
			return deny(ErrRoleNotPermitted)
		}

	case ActionReadCatalog:
		switch actor.Role {
		case models.RoleAdmin, models.RoleVolunteer, models.RoleGuardian:
			return allow()
		}

	case ActionManageDependents:
		switch actor.Role {
		case models.RoleAdmin, models.RoleGuardian:
			if target.Dependent != nil {
				if target.Guardian == nil || target.Dependent.GuardianID != target.Guardian.ID {
					return deny(ErrNotOwner)
				}
			}
			return allow()
		case models.RoleVolunteer:
			return deny(ErrRoleNotPermitted)
		}
	}

	return deny(ErrRoleNotPermitted)
}
