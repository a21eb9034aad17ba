package models

import "time"

// Offering represents a subject or topic that can be taught. The creator
// reference is informational only; it does not gate reads or updates.
type Offering struct {
	ID          int64
	Name        string
	Description string
	CreatedBy   int64 // 0 when the creating account is unknown
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Video stores an external video URL attached to an offering. Only URLs are
// stored, never raw uploads. Mutation rights belong to the creating account.
type Video struct {
	ID          int64
	OfferingID  int64
	Title       string
	Description string
	URL         string
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
