package service

import (
	"context"
	"errors"
	"log"

	"skillbridge/internal/authz"
	"skillbridge/internal/models"
	"skillbridge/internal/repository"
)

// EnrollmentService handles enrolling dependents into engagements
type EnrollmentService struct {
	enrollmentRepo *repository.EnrollmentRepository
	engagementRepo *repository.EngagementRepository
	dependentRepo  *repository.DependentRepository
	guardianRepo   *repository.GuardianRepository
	emailService   *EmailService
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	engagementRepo *repository.EngagementRepository,
	dependentRepo *repository.DependentRepository,
	guardianRepo *repository.GuardianRepository,
	emailService *EmailService,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		engagementRepo: engagementRepo,
		dependentRepo:  dependentRepo,
		guardianRepo:   guardianRepo,
		emailService:   emailService,
	}
}

// Enroll enrolls one of the acting guardian's dependents in an engagement.
// Checks run in a fixed order: the engagement must exist, the dependent must
// exist and belong to the guardian, and the pair must not already be
// enrolled. A dependent owned by another guardian is reported as not found.
func (s *EnrollmentService) Enroll(ctx context.Context, actor models.Account, dependentID, engagementID int64) (*models.Enrollment, error) {
	decision := authz.Authorize(actor, authz.ActionManageDependents, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	guardian, err := s.guardianRepo.GetByAccountID(actor.ID)
	if err != nil {
		return nil, err
	}
	if guardian == nil {
		return nil, ErrGuardianNotFound
	}

	engagement, err := s.engagementRepo.GetByID(engagementID)
	if err != nil {
		return nil, err
	}
	if engagement == nil {
		return nil, ErrEngagementNotFound
	}

	dependent, err := s.dependentRepo.GetByIDAndGuardian(dependentID, guardian.ID)
	if err != nil {
		return nil, err
	}
	if dependent == nil {
		return nil, ErrDependentNotFound
	}

	existing, err := s.enrollmentRepo.GetByPair(dependentID, engagementID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEnrollment
	}

	enrollment, err := s.enrollmentRepo.CreateEnrollment(dependentID, engagementID)
	if err != nil {
		// Two concurrent requests can pass the read above; the unique
		// constraint settles the race.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEnrollment
		}
		return nil, err
	}

	if s.emailService != nil && guardian.Email != "" {
		if err := s.emailService.SendEnrollmentEmail(ctx, guardian.Email, dependent.Name, engagement.Title); err != nil {
			log.Printf("Failed to send enrollment confirmation to %s: %v", guardian.Email, err)
		}
	}

	return enrollment, nil
}

// ListForDependent retrieves the enrollments of one of the acting guardian's
// dependents. A dependent owned by another guardian is reported as not found.
func (s *EnrollmentService) ListForDependent(actor models.Account, dependentID int64) ([]models.Enrollment, error) {
	decision := authz.Authorize(actor, authz.ActionManageDependents, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	guardian, err := s.guardianRepo.GetByAccountID(actor.ID)
	if err != nil {
		return nil, err
	}
	if guardian == nil {
		return nil, ErrGuardianNotFound
	}

	dependent, err := s.dependentRepo.GetByIDAndGuardian(dependentID, guardian.ID)
	if err != nil {
		return nil, err
	}
	if dependent == nil {
		return nil, ErrDependentNotFound
	}

	return s.enrollmentRepo.ListByDependent(dependentID)
}

// ListForEngagement retrieves the roster for an engagement. Admins and
// approved volunteers only.
func (s *EnrollmentService) ListForEngagement(actor models.Account, engagementID int64) ([]models.Enrollment, error) {
	decision := authz.Authorize(actor, authz.ActionManageCatalog, authz.Target{})
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

	return s.enrollmentRepo.ListByEngagement(engagementID)
}
