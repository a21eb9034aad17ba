package repository

import (
	"database/sql"
	"fmt"
	"time"

	"skillbridge/internal/database"
	"skillbridge/internal/models"
)

// AccountRepository handles database operations for accounts
type AccountRepository struct {
	db *database.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = "id, subject_id, email, role, approved, created_at, updated_at"

// CreateAccount inserts a new account. Returns ErrDuplicate when an account
// already exists for the subject id.
func (r *AccountRepository) CreateAccount(subjectID, email string, role models.Role, approved bool) (*models.Account, error) {
	query := `
		INSERT INTO accounts (subject_id, email, role, approved)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, subjectID, email, string(role), approved)
	if err != nil {
		if r.db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("account for subject %s: %w", subjectID, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &models.Account{
		ID:        id,
		SubjectID: subjectID,
		Email:     email,
		Role:      role,
		Approved:  approved,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// GetBySubjectID retrieves an account by its external subject identifier
func (r *AccountRepository) GetBySubjectID(subjectID string) (*models.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE subject_id = ?"
	return r.scanAccount(r.db.QueryRow(query, subjectID))
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(id int64) (*models.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE id = ?"
	return r.scanAccount(r.db.QueryRow(query, id))
}

// UpdateRole updates an account's role and approval flag together so the
// approval invariant holds after every role change.
func (r *AccountRepository) UpdateRole(id int64, role models.Role, approved bool) error {
	query := `
		UPDATE accounts
		SET role = ?, approved = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, string(role), approved, id)
	if err != nil {
		return fmt.Errorf("failed to update account role: %w", err)
	}
	return nil
}

// SetApproved updates an account's approval flag
func (r *AccountRepository) SetApproved(id int64, approved bool) error {
	query := `
		UPDATE accounts
		SET approved = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, approved, id)
	if err != nil {
		return fmt.Errorf("failed to update account approval: %w", err)
	}
	return nil
}

// ListAccounts retrieves accounts in creation order with pagination
func (r *AccountRepository) ListAccounts(skip, limit int) ([]models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.Query(query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	return r.collectAccounts(rows)
}

// ListPendingVolunteers retrieves unapproved volunteer accounts in creation order
func (r *AccountRepository) ListPendingVolunteers() ([]models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE role = ? AND approved = ?
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(query, string(models.RoleVolunteer), false)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending volunteers: %w", err)
	}
	defer rows.Close()

	return r.collectAccounts(rows)
}

func (r *AccountRepository) scanAccount(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	var role string
	err := row.Scan(
		&account.ID,
		&account.SubjectID,
		&account.Email,
		&role,
		&account.Approved,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	account.Role = models.Role(role)
	return account, nil
}

func (r *AccountRepository) collectAccounts(rows *sql.Rows) ([]models.Account, error) {
	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		var role string
		if err := rows.Scan(
			&account.ID,
			&account.SubjectID,
			&account.Email,
			&role,
			&account.Approved,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		account.Role = models.Role(role)
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}
