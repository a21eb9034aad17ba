package models

import "time"

// EngagementStatus is the closed set of engagement states.
type EngagementStatus string

const (
	StatusScheduled EngagementStatus = "scheduled"
	StatusCompleted EngagementStatus = "completed"
	StatusCancelled EngagementStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s EngagementStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are permitted from s.
func (s EngagementStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is permitted.
// Completed and cancelled are terminal; only scheduled engagements may move.
// Setting the same status again is a no-op and always allowed.
func (s EngagementStatus) CanTransitionTo(next EngagementStatus) bool {
	if s == next {
		return true
	}
	return s == StatusScheduled
}

// Engagement represents a scheduled learning event tied to one offering and
// presented by one account. Only the presenter may mutate or delete it.
type Engagement struct {
	ID          int64
	OfferingID  int64
	PresenterID int64
	Title       string
	Description string
	Schedule    time.Time
	MeetingLink string
	Status      EngagementStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
