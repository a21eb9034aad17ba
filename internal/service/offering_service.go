package service

import (
	"fmt"

	"skillbridge/internal/authz"
	"skillbridge/internal/models"
	"skillbridge/internal/repository"
	"skillbridge/internal/validation"
)

// OfferingService handles catalog offerings
type OfferingService struct {
	offeringRepo *repository.OfferingRepository
}

// NewOfferingService creates a new offering service
func NewOfferingService(offeringRepo *repository.OfferingRepository) *OfferingService {
	return &OfferingService{offeringRepo: offeringRepo}
}

// CreateOffering creates a new catalog offering. Admins and approved
// volunteers only.
func (s *OfferingService) CreateOffering(actor models.Account, name, description string) (*models.Offering, error) {
	decision := authz.Authorize(actor, authz.ActionManageCatalog, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	offering, err := s.offeringRepo.CreateOffering(name, description, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create offering: %w", err)
	}

	return offering, nil
}

// GetOffering retrieves an offering by ID
func (s *OfferingService) GetOffering(actor models.Account, offeringID int64) (*models.Offering, error) {
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
	return offering, nil
}

// ListOfferings retrieves offerings with pagination
func (s *OfferingService) ListOfferings(actor models.Account, skip, limit int) ([]models.Offering, error) {
	decision := authz.Authorize(actor, authz.ActionReadCatalog, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	return s.offeringRepo.ListOfferings(skip, limit)
}

// UpdateOffering updates an offering's name and description. Offerings are
// shared catalog entries: any admin or approved volunteer may edit them, not
// just the creator.
func (s *OfferingService) UpdateOffering(actor models.Account, offeringID int64, name, description string) (*models.Offering, error) {
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

	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	if err := s.offeringRepo.UpdateOffering(offeringID, name, description); err != nil {
		return nil, err
	}

	offering.Name = name
	offering.Description = description
	return offering, nil
}

// DeleteOffering removes an offering and, via cascade, its engagements and
// videos.
func (s *OfferingService) DeleteOffering(actor models.Account, offeringID int64) error {
	decision := authz.Authorize(actor, authz.ActionManageCatalog, authz.Target{})
	if err := decision.Err(); err != nil {
		return err
	}

	offering, err := s.offeringRepo.GetByID(offeringID)
	if err != nil {
		return err
	}
	if offering == nil {
		return ErrOfferingNotFound
	}

	return s.offeringRepo.DeleteOffering(offeringID)
}
