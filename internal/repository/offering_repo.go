package repository

import (
	"database/sql"
	"fmt"
	"time"

	"skillbridge/internal/database"
	"skillbridge/internal/models"
)

// OfferingRepository handles database operations for catalog offerings
type OfferingRepository struct {
	db *database.DB
}

// NewOfferingRepository creates a new offering repository
func NewOfferingRepository(db *database.DB) *OfferingRepository {
	return &OfferingRepository{db: db}
}

const offeringColumns = "id, name, description, COALESCE(created_by, 0), created_at, updated_at"

// CreateOffering inserts a new offering
func (r *OfferingRepository) CreateOffering(name, description string, createdBy int64) (*models.Offering, error) {
	query := `
		INSERT INTO offerings (name, description, created_by)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, name, description, createdBy)
	if err != nil {
		return nil, fmt.Errorf("failed to create offering: %w", err)
	}

	return &models.Offering{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// GetByID retrieves an offering by ID
func (r *OfferingRepository) GetByID(id int64) (*models.Offering, error) {
	query := "SELECT " + offeringColumns + " FROM offerings WHERE id = ?"
	return r.scanOffering(r.db.QueryRow(query, id))
}

// ListOfferings retrieves offerings in creation order with pagination
func (r *OfferingRepository) ListOfferings(skip, limit int) ([]models.Offering, error) {
	query := `
		SELECT ` + offeringColumns + `
		FROM offerings
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.Query(query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to query offerings: %w", err)
	}
	defer rows.Close()

	var offerings []models.Offering
	for rows.Next() {
		var offering models.Offering
		if err := rows.Scan(
			&offering.ID,
			&offering.Name,
			&offering.Description,
			&offering.CreatedBy,
			&offering.CreatedAt,
			&offering.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan offering: %w", err)
		}
		offerings = append(offerings, offering)
	}

	return offerings, rows.Err()
}

// UpdateOffering updates an offering's name and description
func (r *OfferingRepository) UpdateOffering(id int64, name, description string) error {
	query := `
		UPDATE offerings
		SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, name, description, id)
	if err != nil {
		return fmt.Errorf("failed to update offering: %w", err)
	}
	return nil
}

// DeleteOffering removes an offering
func (r *OfferingRepository) DeleteOffering(id int64) error {
	_, err := r.db.Exec("DELETE FROM offerings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete offering: %w", err)
	}
	return nil
}

func (r *OfferingRepository) scanOffering(row *sql.Row) (*models.Offering, error) {
	offering := &models.Offering{}
	err := row.Scan(
		&offering.ID,
		&offering.Name,
		&offering.Description,
		&offering.CreatedBy,
		&offering.CreatedAt,
		&offering.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offering: %w", err)
	}

	return offering, nil
}
