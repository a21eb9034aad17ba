package models

import "time"

// Guardian stores guardian-specific information for an account holding the
// GUARDIAN role. Exactly one guardian record exists per account, and the
// contact email is globally unique.
type Guardian struct {
	ID        int64
	AccountID int64
	Email     string
	CreatedAt time.Time
}

// Dependent age bounds accepted by the platform.
const (
	MinDependentAge = 5
	MaxDependentAge = 18
)

// Dependent represents a child profile owned by exactly one guardian.
type Dependent struct {
	ID         int64
	GuardianID int64
	Name       string
	Age        int
	Interests  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
