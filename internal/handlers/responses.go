package handlers

import (
	"time"

	"skillbridge/internal/models"
)

// Wire shapes for API responses. Models stay free of transport concerns;
// these structs define the JSON contract.

type accountResponse struct {
	ID        int64     `json:"id"`
	SubjectID string    `json:"subject_id"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountResponse(a *models.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		SubjectID: a.SubjectID,
		Email:     a.Email,
		Role:      string(a.Role),
		Approved:  a.Approved,
		CreatedAt: a.CreatedAt,
	}
}

func toAccountResponses(accounts []models.Account) []accountResponse {
	out := make([]accountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, toAccountResponse(&accounts[i]))
	}
	return out
}

type guardianResponse struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toGuardianResponse(g *models.Guardian) guardianResponse {
	return guardianResponse{
		ID:        g.ID,
		AccountID: g.AccountID,
		Email:     g.Email,
		CreatedAt: g.CreatedAt,
	}
}

type dependentResponse struct {
	ID         int64     `json:"id"`
	GuardianID int64     `json:"guardian_id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	Interests  string    `json:"interests,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toDependentResponse(d *models.Dependent) dependentResponse {
	return dependentResponse{
		ID:         d.ID,
		GuardianID: d.GuardianID,
		Name:       d.Name,
		Age:        d.Age,
		Interests:  d.Interests,
		CreatedAt:  d.CreatedAt,
	}
}

func toDependentResponses(dependents []models.Dependent) []dependentResponse {
	out := make([]dependentResponse, 0, len(dependents))
	for i := range dependents {
		out = append(out, toDependentResponse(&dependents[i]))
	}
	return out
}

type offeringResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   int64     `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toOfferingResponse(o *models.Offering) offeringResponse {
	return offeringResponse{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt,
	}
}

func toOfferingResponses(offerings []models.Offering) []offeringResponse {
	out := make([]offeringResponse, 0, len(offerings))
	for i := range offerings {
		out = append(out, toOfferingResponse(&offerings[i]))
	}
	return out
}

type engagementResponse struct {
	ID          int64     `json:"id"`
	OfferingID  int64     `json:"offering_id"`
	PresenterID int64     `json:"presenter_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Schedule    time.Time `json:"schedule"`
	MeetingLink string    `json:"meeting_link,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toEngagementResponse(e *models.Engagement) engagementResponse {
	return engagementResponse{
		ID:          e.ID,
		OfferingID:  e.OfferingID,
		PresenterID: e.PresenterID,
		Title:       e.Title,
		Description: e.Description,
		Schedule:    e.Schedule,
		MeetingLink: e.MeetingLink,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
	}
}

func toEngagementResponses(engagements []models.Engagement) []engagementResponse {
	out := make([]engagementResponse, 0, len(engagements))
	for i := range engagements {
		out = append(out, toEngagementResponse(&engagements[i]))
	}
	return out
}

type videoResponse struct {
	ID          int64     `json:"id"`
	OfferingID  int64     `json:"offering_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func toVideoResponse(v *models.Video) videoResponse {
	return videoResponse{
		ID:          v.ID,
		OfferingID:  v.OfferingID,
		Title:       v.Title,
		Description: v.Description,
		URL:         v.URL,
		CreatedBy:   v.CreatedBy,
		CreatedAt:   v.CreatedAt,
	}
}

func toVideoResponses(videos []models.Video) []videoResponse {
	out := make([]videoResponse, 0, len(videos))
	for i := range videos {
		out = append(out, toVideoResponse(&videos[i]))
	}
	return out
}

type enrollmentResponse struct {
	ID           int64     `json:"id"`
	DependentID  int64     `json:"dependent_id"`
	EngagementID int64     `json:"engagement_id"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

func toEnrollmentResponse(e *models.Enrollment) enrollmentResponse {
	return enrollmentResponse{
		ID:           e.ID,
		DependentID:  e.DependentID,
		EngagementID: e.EngagementID,
		EnrolledAt:   e.EnrolledAt,
	}
}

func toEnrollmentResponses(enrollments []models.Enrollment) []enrollmentResponse {
	out := make([]enrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		out = append(out, toEnrollmentResponse(&enrollments[i]))
	}
	return out
}
