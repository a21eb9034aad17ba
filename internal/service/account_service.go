package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"skillbridge/internal/auth"
	"skillbridge/internal/authz"
	"skillbridge/internal/models"
	"skillbridge/internal/repository"
	"skillbridge/internal/validation"
)

// AccountService handles account registration, resolution and approval
type AccountService struct {
	accountRepo  *repository.AccountRepository
	provider     *auth.ProviderClient
	emailService *EmailService
}

// NewAccountService creates a new account service. provider may be nil when
// no identity provider lookup is configured.
func NewAccountService(accountRepo *repository.AccountRepository, provider *auth.ProviderClient, emailService *EmailService) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		provider:     provider,
		emailService: emailService,
	}
}

// ResolveOrRegister returns the account for a verified identity, creating or
// adjusting it as needed. Registering the role an account already holds is a
// no-op. Switching roles recomputes the approval flag: admins and guardians
// are approved immediately, volunteers wait for an admin.
func (s *AccountService) ResolveOrRegister(ctx context.Context, identity auth.Identity, role models.Role) (*models.Account, error) {
	if err := validation.ValidateRole(role); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetBySubjectID(identity.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if account == nil {
		return s.register(ctx, identity, role)
	}

	if account.Role == role {
		return account, nil
	}

	if err := s.accountRepo.UpdateRole(account.ID, role, role.AutoApproved()); err != nil {
		return nil, err
	}

	account.Role = role
	account.Approved = role.AutoApproved()
	return account, nil
}

func (s *AccountService) register(ctx context.Context, identity auth.Identity, role models.Role) (*models.Account, error) {
	email := identity.Email
	if email == "" && s.provider != nil {
		providerEmail, err := s.provider.SubjectEmail(ctx, identity.SubjectID)
		if err != nil {
			log.Printf("Identity provider lookup failed for subject %s: %v", identity.SubjectID, err)
		} else {
			email = providerEmail
		}
	}

	account, err := s.accountRepo.CreateAccount(identity.SubjectID, email, role, role.AutoApproved())
	if err == nil {
		return account, nil
	}

	// A concurrent request registered the same subject first; the stored row
	// wins.
	if errors.Is(err, repository.ErrDuplicate) {
		account, readErr := s.accountRepo.GetBySubjectID(identity.SubjectID)
		if readErr != nil {
			return nil, fmt.Errorf("failed to re-read account: %w", readErr)
		}
		if account != nil {
			return account, nil
		}
	}

	return nil, err
}

// Resolve returns the account for a verified identity without registering one
func (s *AccountService) Resolve(identity auth.Identity) (*models.Account, error) {
	account, err := s.accountRepo.GetBySubjectID(identity.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// GetAccount retrieves an account, allowing admins to read any record and
// everyone else only their own.
func (s *AccountService) GetAccount(actor models.Account, accountID int64) (*models.Account, error) {
	decision := authz.Authorize(actor, authz.ActionReadAccount, authz.Target{AccountID: accountID})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// ListAccounts retrieves all accounts with pagination. Admin only.
func (s *AccountService) ListAccounts(actor models.Account, skip, limit int) ([]models.Account, error) {
	decision := authz.Authorize(actor, authz.ActionAdministerAccounts, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	return s.accountRepo.ListAccounts(skip, limit)
}

// ListPendingVolunteers retrieves volunteers awaiting approval. Admin only.
func (s *AccountService) ListPendingVolunteers(actor models.Account) ([]models.Account, error) {
	decision := authz.Authorize(actor, authz.ActionAdministerAccounts, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	return s.accountRepo.ListPendingVolunteers()
}

// Approve marks an account as approved. Admin only. Approving an account
// that is already approved is a no-op.
func (s *AccountService) Approve(ctx context.Context, actor models.Account, accountID int64) (*models.Account, error) {
	decision := authz.Authorize(actor, authz.ActionAdministerAccounts, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	if account.Approved {
		return account, nil
	}

	if err := s.accountRepo.SetApproved(account.ID, true); err != nil {
		return nil, err
	}
	account.Approved = true

	// Notification failures must not roll back the approval.
	if s.emailService != nil && account.Email != "" {
		if err := s.emailService.SendApprovalEmail(ctx, account.Email); err != nil {
			log.Printf("Failed to send approval email to %s: %v", account.Email, err)
		}
	}

	return account, nil
}
