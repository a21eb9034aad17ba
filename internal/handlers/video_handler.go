package handlers

import (
	"encoding/json"
	"net/http"

	"skillbridge/internal/service"
)

// VideoHandler handles video library endpoints
type VideoHandler struct {
	videoService *service.VideoService
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

type createVideoRequest struct {
	OfferingID  int64  `json:"offering_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type updateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
}

// Create handles POST /v1/videos
func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	var req createVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	video, err := h.videoService.CreateVideo(*actor, req.OfferingID, req.Title, req.Description, req.URL)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, toVideoResponse(video))
}

// List handles GET /v1/videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())
	skip, limit := parsePagination(r)

	videos, err := h.videoService.ListVideos(*actor, skip, limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toVideoResponses(videos))
}

// ListByOffering handles GET /v1/offerings/{id}/videos
func (h *VideoHandler) ListByOffering(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	offeringID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	videos, err := h.videoService.ListByOffering(*actor, offeringID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toVideoResponses(videos))
}

// Get handles GET /v1/videos/{id}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	videoID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	video, err := h.videoService.GetVideo(*actor, videoID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toVideoResponse(video))
}

// Update handles PATCH /v1/videos/{id}. Absent fields keep their current
// values.
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	videoID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	var req updateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	video, err := h.videoService.UpdateVideo(*actor, videoID, service.VideoUpdate{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toVideoResponse(video))
}

// Delete handles DELETE /v1/videos/{id}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	videoID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	if err := h.videoService.DeleteVideo(*actor, videoID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
