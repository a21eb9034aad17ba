package service

import (
	"fmt"
	"time"

	"skillbridge/internal/authz"
	"skillbridge/internal/models"
	"skillbridge/internal/repository"
	"skillbridge/internal/validation"
)

// EngagementService handles scheduled engagements
type EngagementService struct {
	engagementRepo *repository.EngagementRepository
	offeringRepo   *repository.OfferingRepository
}

// NewEngagementService creates a new engagement service
func NewEngagementService(engagementRepo *repository.EngagementRepository, offeringRepo *repository.OfferingRepository) *EngagementService {
	return &EngagementService{
		engagementRepo: engagementRepo,
		offeringRepo:   offeringRepo,
	}
}

// EngagementUpdate carries the fields of a partial engagement update. Nil
// fields keep their current value.
type EngagementUpdate struct {
	Title       *string
	Description *string
	Schedule    *time.Time
	MeetingLink *string
	Status      *models.EngagementStatus
}

// CreateEngagement schedules a new engagement with the actor as presenter
func (s *EngagementService) CreateEngagement(actor models.Account, offeringID int64, title, description string, schedule time.Time, meetingLink string) (*models.Engagement, error) {
	decision := authz.Authorize(actor, authz.ActionManageCatalog, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	offering, err := s.offeringRepo.GetByID(offeringID)
	if err != nil {
		return nil, err
	}
	if offering == nil {
		return nil, ErrOfferingNotFound
	}

	if err := validation.ValidateName(title); err != nil {
		return nil, err
	}

	engagement, err := s.engagementRepo.CreateEngagement(offeringID, actor.ID, title, description, schedule, meetingLink)
	if err != nil {
		return nil, fmt.Errorf("failed to create engagement: %w", err)
	}

	return engagement, nil
}

// GetEngagement retrieves an engagement by ID
func (s *EngagementService) GetEngagement(actor models.Account, engagementID int64) (*models.Engagement, error) {
	decision := authz.Authorize(actor, authz.ActionReadCatalog, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	engagement, err := s.engagementRepo.GetByID(engagementID)
	if err != nil {
		return nil, err
	}
	if engagement == nil {
		return nil, ErrEngagementNotFound
	}
	return engagement, nil
}

// ListEngagements retrieves engagements ordered by schedule with pagination
func (s *EngagementService) ListEngagements(actor models.Account, skip, limit int) ([]models.Engagement, error) {
	decision := authz.Authorize(actor, authz.ActionReadCatalog, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	return s.engagementRepo.ListEngagements(skip, limit)
}

// ListByOffering retrieves all engagements for an offering
func (s *EngagementService) ListByOffering(actor models.Account, offeringID int64) ([]models.Engagement, error) {
	decision := authz.Authorize(actor, authz.ActionReadCatalog, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	offering, err := s.offeringRepo.GetByID(offeringID)
	if err != nil {
		return nil, err
	}
	if offering == nil {
		return nil, ErrOfferingNotFound
	}

	return s.engagementRepo.ListByOffering(offeringID)
}

// ListMine retrieves the acting presenter's own engagements
func (s *EngagementService) ListMine(actor models.Account) ([]models.Engagement, error) {
	decision := authz.Authorize(actor, authz.ActionManageCatalog, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	return s.engagementRepo.ListByPresenter(actor.ID)
}

// UpdateEngagement applies a partial update to an engagement. Only the
// presenter who owns the engagement may update it, and the status may only
// move out of the scheduled state.
func (s *EngagementService) UpdateEngagement(actor models.Account, engagementID int64, update EngagementUpdate) (*models.Engagement, error) {
	engagement, err := s.engagementRepo.GetByID(engagementID)
	if err != nil {
		return nil, err
	}
	if engagement == nil {
		return nil, ErrEngagementNotFound
	}

	decision := authz.Authorize(actor, authz.ActionMutateEngagement, authz.Target{Engagement: engagement})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if update.Title != nil {
		if err := validation.ValidateName(*update.Title); err != nil {
			return nil, err
		}
		engagement.Title = *update.Title
	}
	if update.Description != nil {
		engagement.Description = *update.Description
	}
	if update.Schedule != nil {
		engagement.Schedule = *update.Schedule
	}
	if update.MeetingLink != nil {
		engagement.MeetingLink = *update.MeetingLink
	}
	if update.Status != nil {
		if !update.Status.Valid() {
			return nil, ErrInvalidStatusChange
		}
		if !engagement.Status.CanTransitionTo(*update.Status) {
			return nil, ErrInvalidStatusChange
		}
		engagement.Status = *update.Status
	}

	if err := s.engagementRepo.UpdateEngagement(
		engagement.ID,
		engagement.Title,
		engagement.Description,
		engagement.Schedule,
		engagement.MeetingLink,
		engagement.Status,
	); err != nil {
		return nil, err
	}

	return engagement, nil
}

// DeleteEngagement removes an engagement. Only the owning presenter may
// delete it.
func (s *EngagementService) DeleteEngagement(actor models.Account, engagementID int64) error {
	engagement, err := s.engagementRepo.GetByID(engagementID)
	if err != nil {
		return err
	}
	if engagement == nil {
		return ErrEngagementNotFound
	}

	decision := authz.Authorize(actor, authz.ActionMutateEngagement, authz.Target{Engagement: engagement})
	if err := decision.Err(); err != nil {
		return err
	}

	return s.engagementRepo.DeleteEngagement(engagementID)
}
