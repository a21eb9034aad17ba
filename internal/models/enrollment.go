package models

import "time"

// Enrollment records a dependent's registration in an engagement. The pair
// (dependent, engagement) is unique and enforced by the database schema.
// Enrollments are created once and never updated.
type Enrollment struct {
	ID           int64
	DependentID  int64
	EngagementID int64
	EnrolledAt   time.Time
}
