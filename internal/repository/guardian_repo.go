package repository

import (
	"database/sql"
	"fmt"
	"time"

	"skillbridge/internal/database"
	"skillbridge/internal/models"
)

// GuardianRepository handles database operations for guardians
type GuardianRepository struct {
	db *database.DB
}

// NewGuardianRepository creates a new guardian repository
func NewGuardianRepository(db *database.DB) *GuardianRepository {
	return &GuardianRepository{db: db}
}

// CreateGuardian inserts a guardian record for an account. Returns
// ErrDuplicate when the account already has a guardian record or the email is
// already registered.
func (r *GuardianRepository) CreateGuardian(accountID int64, email string) (*models.Guardian, error) {
	query := "INSERT INTO guardians (account_id, email) VALUES (?, ?)"
	id, err := r.db.ExecReturningID(query, accountID, email)
	if err != nil {
		if r.db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("guardian for account %d: %w", accountID, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create guardian: %w", err)
	}

	return &models.Guardian{
		ID:        id,
		AccountID: accountID,
		Email:     email,
		CreatedAt: time.Now(),
	}, nil
}

// GetByAccountID retrieves the guardian record for an account
func (r *GuardianRepository) GetByAccountID(accountID int64) (*models.Guardian, error) {
	query := "SELECT id, account_id, email, created_at FROM guardians WHERE account_id = ?"
	return r.scanGuardian(r.db.QueryRow(query, accountID))
}

// GetByID retrieves a guardian by ID
func (r *GuardianRepository) GetByID(id int64) (*models.Guardian, error) {
	query := "SELECT id, account_id, email, created_at FROM guardians WHERE id = ?"
	return r.scanGuardian(r.db.QueryRow(query, id))
}

// GetByEmail retrieves a guardian by contact email
func (r *GuardianRepository) GetByEmail(email string) (*models.Guardian, error) {
	query := "SELECT id, account_id, email, created_at FROM guardians WHERE email = ?"
	return r.scanGuardian(r.db.QueryRow(query, email))
}

func (r *GuardianRepository) scanGuardian(row *sql.Row) (*models.Guardian, error) {
	guardian := &models.Guardian{}
	err := row.Scan(
		&guardian.ID,
		&guardian.AccountID,
		&guardian.Email,
		&guardian.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guardian: %w", err)
	}

	return guardian, nil
}
