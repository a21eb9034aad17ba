package repository

import (
	"database/sql"
	"fmt"
	"time"

	"skillbridge/internal/database"
	"skillbridge/internal/models"
)

// EngagementRepository handles database operations for engagements
type EngagementRepository struct {
	db *database.DB
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(db *database.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

const engagementColumns = "id, offering_id, presenter_id, title, description, schedule, meeting_link, status, created_at, updated_at"

// CreateEngagement inserts a new engagement in the scheduled state
func (r *EngagementRepository) CreateEngagement(offeringID, presenterID int64, title, description string, schedule time.Time, meetingLink string) (*models.Engagement, error) {
	query := `
		INSERT INTO engagements (offering_id, presenter_id, title, description, schedule, meeting_link, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, offeringID, presenterID, title, description, schedule, meetingLink, string(models.StatusScheduled))
	if err != nil {
		return nil, fmt.Errorf("failed to create engagement: %w", err)
	}

	return &models.Engagement{
		ID:          id,
		OfferingID:  offeringID,
		PresenterID: presenterID,
		Title:       title,
		Description: description,
		Schedule:    schedule,
		MeetingLink: meetingLink,
		Status:      models.StatusScheduled,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// GetByID retrieves an engagement by ID
func (r *EngagementRepository) GetByID(id int64) (*models.Engagement, error) {
	query := "SELECT " + engagementColumns + " FROM engagements WHERE id = ?"
	return r.scanEngagement(r.db.QueryRow(query, id))
}

// ListEngagements retrieves engagements ordered by schedule with pagination
func (r *EngagementRepository) ListEngagements(skip, limit int) ([]models.Engagement, error) {
	query := `
		SELECT ` + engagementColumns + `
		FROM engagements
		ORDER BY schedule ASC, id ASC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.Query(query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to query engagements: %w", err)
	}
	defer rows.Close()

	return r.collectEngagements(rows)
}

// ListByPresenter retrieves all engagements owned by a presenter
func (r *EngagementRepository) ListByPresenter(presenterID int64) ([]models.Engagement, error) {
	query := `
		SELECT ` + engagementColumns + `
		FROM engagements
		WHERE presenter_id = ?
		ORDER BY schedule ASC, id ASC
	`
	rows, err := r.db.Query(query, presenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query presenter engagements: %w", err)
	}
	defer rows.Close()

	return r.collectEngagements(rows)
}

// ListByOffering retrieves all engagements for an offering
func (r *EngagementRepository) ListByOffering(offeringID int64) ([]models.Engagement, error) {
	query := `
		SELECT ` + engagementColumns + `
		FROM engagements
		WHERE offering_id = ?
		ORDER BY schedule ASC, id ASC
	`
	rows, err := r.db.Query(query, offeringID)
	if err != nil {
		return nil, fmt.Errorf("failed to query offering engagements: %w", err)
	}
	defer rows.Close()

	return r.collectEngagements(rows)
}

// UpdateEngagement writes the full set of mutable engagement fields
func (r *EngagementRepository) UpdateEngagement(id int64, title, description string, schedule time.Time, meetingLink string, status models.EngagementStatus) error {
	query := `
		UPDATE engagements
		SET title = ?, description = ?, schedule = ?, meeting_link = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, title, description, schedule, meetingLink, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update engagement: %w", err)
	}
	return nil
}

// DeleteEngagement removes an engagement
func (r *EngagementRepository) DeleteEngagement(id int64) error {
	_, err := r.db.Exec("DELETE FROM engagements WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete engagement: %w", err)
	}
	return nil
}

func (r *EngagementRepository) scanEngagement(row *sql.Row) (*models.Engagement, error) {
	engagement := &models.Engagement{}
	var status string
	err := row.Scan(
		&engagement.ID,
		&engagement.OfferingID,
		&engagement.PresenterID,
		&engagement.Title,
		&engagement.Description,
		&engagement.Schedule,
		&engagement.MeetingLink,
		&status,
		&engagement.CreatedAt,
		&engagement.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get engagement: %w", err)
	}

	engagement.Status = models.EngagementStatus(status)
	return engagement, nil
}

func (r *EngagementRepository) collectEngagements(rows *sql.Rows) ([]models.Engagement, error) {
	var engagements []models.Engagement
	for rows.Next() {
		var engagement models.Engagement
		var status string
		if err := rows.Scan(
			&engagement.ID,
			&engagement.OfferingID,
			&engagement.PresenterID,
			&engagement.Title,
			&engagement.Description,
			&engagement.Schedule,
			&engagement.MeetingLink,
			&status,
			&engagement.CreatedAt,
			&engagement.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan engagement: %w", err)
		}
		engagement.Status = models.EngagementStatus(status)
		engagements = append(engagements, engagement)
	}

	return engagements, rows.Err()
}
