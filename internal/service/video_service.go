package service

import (
	"fmt"

	"skillbridge/internal/authz"
	"skillbridge/internal/models"
	"skillbridge/internal/repository"
	"skillbridge/internal/validation"
)

// VideoService handles the recorded video library
type VideoService struct {
	videoRepo    *repository.VideoRepository
	offeringRepo *repository.OfferingRepository
}

// NewVideoService creates a new video service
func NewVideoService(videoRepo *repository.VideoRepository, offeringRepo *repository.OfferingRepository) *VideoService {
	return &VideoService{
		videoRepo:    videoRepo,
		offeringRepo: offeringRepo,
	}
}

// VideoUpdate carries the fields of a partial video update. Nil fields keep
// their current value.
type VideoUpdate struct {
	Title       *string
	Description *string
	URL         *string
}

// CreateVideo adds a video to an offering with the actor as creator
func (s *VideoService) CreateVideo(actor models.Account, offeringID int64, title, description, videoURL string) (*models.Video, error) {
	decision := authz.Authorize(actor, authz.ActionManageCatalog, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	offering, err := s.offeringRepo.GetByID(offeringID)
	if err != nil {
		return nil, err
	}
	if offering == nil {
		return nil, ErrOfferingNotFound
	}

	if err := validation.ValidateName(title); err != nil {
		return nil, err
	}

	video, err := s.videoRepo.CreateVideo(offeringID, title, description, videoURL, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	return video, nil
}

// GetVideo retrieves a video by ID
func (s *VideoService) GetVideo(actor models.Account, videoID int64) (*models.Video, error) {
	decision := authz.Authorize(actor, authz.ActionReadCatalog, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

// ListVideos retrieves videos with pagination
func (s *VideoService) ListVideos(actor models.Account, skip, limit int) ([]models.Video, error) {
	decision := authz.Authorize(actor, authz.ActionReadCatalog, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	return s.videoRepo.ListVideos(skip, limit)
}

// ListByOffering retrieves all videos attached to an offering
func (s *VideoService) ListByOffering(actor models.Account, offeringID int64) ([]models.Video, error) {
	decision := authz.Authorize(actor, authz.ActionReadCatalog, authz.Target{})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	offering, err := s.offeringRepo.GetByID(offeringID)
	if err != nil {
		return nil, err
	}
	if offering == nil {
		return nil, ErrOfferingNotFound
	}

	return s.videoRepo.ListByOffering(offeringID)
}

// UpdateVideo applies a partial update to a video. Only the creator may
// update it.
func (s *VideoService) UpdateVideo(actor models.Account, videoID int64, update VideoUpdate) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}

	decision := authz.Authorize(actor, authz.ActionMutateVideo, authz.Target{Video: video})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if update.Title != nil {
		if err := validation.ValidateName(*update.Title); err != nil {
			return nil, err
		}
		video.Title = *update.Title
	}
	if update.Description != nil {
		video.Description = *update.Description
	}
	if update.URL != nil {
		video.URL = *update.URL
	}

	if err := s.videoRepo.UpdateVideo(video.ID, video.Title, video.Description, video.URL); err != nil {
		return nil, err
	}

	return video, nil
}

// DeleteVideo removes a video. Only the creator may delete it.
func (s *VideoService) DeleteVideo(actor models.Account, videoID int64) error {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		return err
	}
	if video == nil {
		return ErrVideoNotFound
	}

	decision := authz.Authorize(actor, authz.ActionMutateVideo, authz.Target{Video: video})
	if err := decision.Err(); err != nil {
		return err
	}

	return s.videoRepo.DeleteVideo(videoID)
}
