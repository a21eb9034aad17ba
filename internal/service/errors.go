package service

import "errors"

// Sentinel errors returned by services. Handlers map these onto HTTP status
// codes; everything else is treated as an internal error.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrGuardianNotFound   = errors.New("guardian profile not found")
	ErrDependentNotFound  = errors.New("dependent not found")
	ErrOfferingNotFound   = errors.New("offering not found")
	ErrEngagementNotFound = errors.New("engagement not found")
	ErrVideoNotFound      = errors.New("video not found")

	ErrGuardianExists      = errors.New("guardian profile already exists for this account")
	ErrEmailTaken          = errors.New("email is already registered to another guardian")
	ErrDuplicateEnrollment = errors.New("dependent is already enrolled in this engagement")
	ErrInvalidStatusChange = errors.New("engagement status change not allowed")
)
