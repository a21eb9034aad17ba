package repository

import (
	"database/sql"
	"fmt"
	"time"

	"skillbridge/internal/database"
	"skillbridge/internal/models"
)

// VideoRepository handles database operations for library videos
type VideoRepository struct {
	db *database.DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *database.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

const videoColumns = "id, offering_id, title, description, url, COALESCE(created_by, 0), created_at, updated_at"

// CreateVideo inserts a new video
func (r *VideoRepository) CreateVideo(offeringID int64, title, description, videoURL string, createdBy int64) (*models.Video, error) {
	query := `
		INSERT INTO videos (offering_id, title, description, url, created_by)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, offeringID, title, description, videoURL, createdBy)
	if err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	return &models.Video{
		ID:          id,
		OfferingID:  offeringID,
		Title:       title,
		Description: description,
		URL:         videoURL,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// GetByID retrieves a video by ID
func (r *VideoRepository) GetByID(id int64) (*models.Video, error) {
	query := "SELECT " + videoColumns + " FROM videos WHERE id = ?"
	return r.scanVideo(r.db.QueryRow(query, id))
}

// ListVideos retrieves videos in creation order with pagination
func (r *VideoRepository) ListVideos(skip, limit int) ([]models.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.Query(query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	return r.collectVideos(rows)
}

// ListByOffering retrieves all videos attached to an offering
func (r *VideoRepository) ListByOffering(offeringID int64) ([]models.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE offering_id = ?
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(query, offeringID)
	if err != nil {
		return nil, fmt.Errorf("failed to query offering videos: %w", err)
	}
	defer rows.Close()

	return r.collectVideos(rows)
}

// UpdateVideo updates a video's metadata
func (r *VideoRepository) UpdateVideo(id int64, title, description, videoURL string) error {
	query := `
		UPDATE videos
		SET title = ?, description = ?, url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, title, description, videoURL, id)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	return nil
}

// DeleteVideo removes a video
func (r *VideoRepository) DeleteVideo(id int64) error {
	_, err := r.db.Exec("DELETE FROM videos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	return nil
}

func (r *VideoRepository) scanVideo(row *sql.Row) (*models.Video, error) {
	video := &models.Video{}
	err := row.Scan(
		&video.ID,
		&video.OfferingID,
		&video.Title,
		&video.Description,
		&video.URL,
		&video.CreatedBy,
		&video.CreatedAt,
		&video.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	return video, nil
}

func (r *VideoRepository) collectVideos(rows *sql.Rows) ([]models.Video, error) {
	var videos []models.Video
	for rows.Next() {
		var video models.Video
		if err := rows.Scan(
			&video.ID,
			&video.OfferingID,
			&video.Title,
			&video.Description,
			&video.URL,
			&video.CreatedBy,
			&video.CreatedAt,
			&video.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}

	return videos, rows.Err()
}
