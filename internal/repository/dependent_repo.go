package repository

import (
	"database/sql"
	"fmt"
	"time"

	"skillbridge/internal/database"
	"skillbridge/internal/models"
)

// DependentRepository handles database operations for dependents
type DependentRepository struct {
	db *database.DB
}

// NewDependentRepository creates a new dependent repository
func NewDependentRepository(db *database.DB) *DependentRepository {
	return &DependentRepository{db: db}
}

const dependentColumns = "id, guardian_id, name, age, interests, created_at, updated_at"

// CreateDependent inserts a dependent under a guardian
func (r *DependentRepository) CreateDependent(guardianID int64, name string, age int, interests string) (*models.Dependent, error) {
	query := `
		INSERT INTO dependents (guardian_id, name, age, interests)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, guardianID, name, age, interests)
	if err != nil {
		return nil, fmt.Errorf("failed to create dependent: %w", err)
	}

	return &models.Dependent{
		ID:         id,
		GuardianID: guardianID,
		Name:       name,
		Age:        age,
		Interests:  interests,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}, nil
}

// GetByID retrieves a dependent by ID
func (r *DependentRepository) GetByID(id int64) (*models.Dependent, error) {
	query := "SELECT " + dependentColumns + " FROM dependents WHERE id = ?"
	return r.scanDependent(r.db.QueryRow(query, id))
}

// GetByIDAndGuardian retrieves a dependent only when it belongs to the given
// guardian. A dependent owned by someone else comes back as not found.
func (r *DependentRepository) GetByIDAndGuardian(id, guardianID int64) (*models.Dependent, error) {
	query := "SELECT " + dependentColumns + " FROM dependents WHERE id = ? AND guardian_id = ?"
	return r.scanDependent(r.db.QueryRow(query, id, guardianID))
}

// ListByGuardian retrieves all dependents of a guardian in creation order
func (r *DependentRepository) ListByGuardian(guardianID int64) ([]models.Dependent, error) {
	query := `
		SELECT ` + dependentColumns + `
		FROM dependents
		WHERE guardian_id = ?
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(query, guardianID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dependents: %w", err)
	}
	defer rows.Close()

	var dependents []models.Dependent
	for rows.Next() {
		var dependent models.Dependent
		if err := rows.Scan(
			&dependent.ID,
			&dependent.GuardianID,
			&dependent.Name,
			&dependent.Age,
			&dependent.Interests,
			&dependent.CreatedAt,
			&dependent.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dependent: %w", err)
		}
		dependents = append(dependents, dependent)
	}

	return dependents, rows.Err()
}

// UpdateDependent updates a dependent's profile fields
func (r *DependentRepository) UpdateDependent(id int64, name string, age int, interests string) error {
	query := `
		UPDATE dependents
		SET name = ?, age = ?, interests = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, name, age, interests, id)
	if err != nil {
		return fmt.Errorf("failed to update dependent: %w", err)
	}
	return nil
}

func (r *DependentRepository) scanDependent(row *sql.Row) (*models.Dependent, error) {
	dependent := &models.Dependent{}
	err := row.Scan(
		&dependent.ID,
		&dependent.GuardianID,
		&dependent.Name,
		&dependent.Age,
		&dependent.Interests,
		&dependent.CreatedAt,
		&dependent.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dependent: %w", err)
	}

	return dependent, nil
}
