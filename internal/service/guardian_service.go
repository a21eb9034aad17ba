package service

import (
	"errors"
	"fmt"

	"skillbridge/internal/authz"
	"skillbridge/internal/models"
	"skillbridge/internal/repository"
	"skillbridge/internal/validation"
)

// GuardianService handles guardian profiles and their dependents
type GuardianService struct {
	guardianRepo  *repository.GuardianRepository
	dependentRepo *repository.DependentRepository
}

// NewGuardianService creates a new guardian service
func NewGuardianService(guardianRepo *repository.GuardianRepository, dependentRepo *repository.DependentRepository) *GuardianService {
	return &GuardianService{
		guardianRepo:  guardianRepo,
		dependentRepo: dependentRepo,
	}
}

// RegisterGuardian creates the guardian profile for the acting account. Each
// account may hold at most one profile and each contact email belongs to at
// most one guardian.
func (s *GuardianService) RegisterGuardian(actor models.Account, email string) (*models.Guardian, error) {
	decision := authz.Authorize(actor, authz.ActionManageDependents, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}

	existing, err := s.guardianRepo.GetByAccountID(actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrGuardianExists
	}

	guardian, err := s.guardianRepo.CreateGuardian(actor.ID, email)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// The account constraint and the email constraint both surface as
			// a duplicate; a second read tells them apart.
			existing, readErr := s.guardianRepo.GetByAccountID(actor.ID)
			if readErr == nil && existing != nil {
				return nil, ErrGuardianExists
			}
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return guardian, nil
}

// GetGuardian retrieves the acting account's guardian profile
func (s *GuardianService) GetGuardian(actor models.Account) (*models.Guardian, error) {
	decision := authz.Authorize(actor, authz.ActionManageDependents, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	return s.requireGuardian(actor)
}

// CreateDependent adds a dependent under the acting account's guardian profile
func (s *GuardianService) CreateDependent(actor models.Account, name string, age int, interests string) (*models.Dependent, error) {
	decision := authz.Authorize(actor, authz.ActionManageDependents, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	guardian, err := s.requireGuardian(actor)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateDependentAge(age); err != nil {
		return nil, err
	}

	dependent, err := s.dependentRepo.CreateDependent(guardian.ID, name, age, interests)
	if err != nil {
		return nil, fmt.Errorf("failed to create dependent: %w", err)
	}

	return dependent, nil
}

// GetDependent retrieves one of the acting guardian's dependents. A dependent
// belonging to another guardian is reported as not found, never as forbidden.
func (s *GuardianService) GetDependent(actor models.Account, dependentID int64) (*models.Dependent, error) {
	decision := authz.Authorize(actor, authz.ActionManageDependents, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	guardian, err := s.requireGuardian(actor)
	if err != nil {
		return nil, err
	}

	dependent, err := s.dependentRepo.GetByIDAndGuardian(dependentID, guardian.ID)
	if err != nil {
		return nil, err
	}
	if dependent == nil {
		return nil, ErrDependentNotFound
	}
	return dependent, nil
}

// ListDependents retrieves all of the acting guardian's dependents
func (s *GuardianService) ListDependents(actor models.Account) ([]models.Dependent, error) {
	decision := authz.Authorize(actor, authz.ActionManageDependents, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	guardian, err := s.requireGuardian(actor)
	if err != nil {
		return nil, err
	}

	return s.dependentRepo.ListByGuardian(guardian.ID)
}

// UpdateDependent updates one of the acting guardian's dependents. Unlike
// reads, an update of another guardian's dependent is refused as forbidden,
// not hidden as not found.
func (s *GuardianService) UpdateDependent(actor models.Account, dependentID int64, name string, age int, interests string) (*models.Dependent, error) {
	decision := authz.Authorize(actor, authz.ActionManageDependents, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	guardian, err := s.requireGuardian(actor)
	if err != nil {
		return nil, err
	}

	dependent, err := s.dependentRepo.GetByID(dependentID)
	if err != nil {
		return nil, err
	}
	if dependent == nil {
		return nil, ErrDependentNotFound
	}

	decision = authz.Authorize(actor, authz.ActionManageDependents, authz.Target{Dependent: dependent, Guardian: guardian})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateDependentAge(age); err != nil {
		return nil, err
	}

	if err := s.dependentRepo.UpdateDependent(dependent.ID, name, age, interests); err != nil {
		return nil, err
	}

	dependent.Name = name
	dependent.Age = age
	dependent.Interests = interests
	return dependent, nil
}

func (s *GuardianService) requireGuardian(actor models.Account) (*models.Guardian, error) {
	guardian, err := s.guardianRepo.GetByAccountID(actor.ID)
	if err != nil {
		return nil, err
	}
	if guardian == nil {
		return nil, ErrGuardianNotFound
	}
	return guardian, nil
}
