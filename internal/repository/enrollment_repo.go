package repository

import (
	"database/sql"
	"fmt"
	"time"

	"skillbridge/internal/database"
	"skillbridge/internal/models"
)

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *database.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *database.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// CreateEnrollment inserts an enrollment row. The unique constraint on
// (dependent_id, engagement_id) makes this the authoritative guard against
// double enrollment; a violation comes back as ErrDuplicate.
func (r *EnrollmentRepository) CreateEnrollment(dependentID, engagementID int64) (*models.Enrollment, error) {
	query := "INSERT INTO enrollments (dependent_id, engagement_id) VALUES (?, ?)"
	id, err := r.db.ExecReturningID(query, dependentID, engagementID)
	if err != nil {
		if r.db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("enrollment of dependent %d in engagement %d: %w", dependentID, engagementID, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	return &models.Enrollment{
		ID:           id,
		DependentID:  dependentID,
		EngagementID: engagementID,
		EnrolledAt:   time.Now(),
	}, nil
}

// GetByPair retrieves the enrollment linking a dependent to an engagement
func (r *EnrollmentRepository) GetByPair(dependentID, engagementID int64) (*models.Enrollment, error) {
	query := `
		SELECT id, dependent_id, engagement_id, enrolled_at
		FROM enrollments
		WHERE dependent_id = ? AND engagement_id = ?
	`
	enrollment := &models.Enrollment{}
	err := r.db.QueryRow(query, dependentID, engagementID).Scan(
		&enrollment.ID,
		&enrollment.DependentID,
		&enrollment.EngagementID,
		&enrollment.EnrolledAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return enrollment, nil
}

// ListByDependent retrieves a dependent's enrollments in enrollment order
func (r *EnrollmentRepository) ListByDependent(dependentID int64) ([]models.Enrollment, error) {
	query := `
		SELECT id, dependent_id, engagement_id, enrolled_at
		FROM enrollments
		WHERE dependent_id = ?
		ORDER BY enrolled_at ASC, id ASC
	`
	return r.queryEnrollments(query, dependentID)
}

// ListByEngagement retrieves an engagement's enrollments in enrollment order
func (r *EnrollmentRepository) ListByEngagement(engagementID int64) ([]models.Enrollment, error) {
	query := `
		SELECT id, dependent_id, engagement_id, enrolled_at
		FROM enrollments
		WHERE engagement_id = ?
		ORDER BY enrolled_at ASC, id ASC
	`
	return r.queryEnrollments(query, engagementID)
}

func (r *EnrollmentRepository) queryEnrollments(query string, arg int64) ([]models.Enrollment, error) {
	rows, err := r.db.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.DependentID,
			&enrollment.EngagementID,
			&enrollment.EnrolledAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}

	return enrollments, rows.Err()
}
