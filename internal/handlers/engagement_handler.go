package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"skillbridge/internal/models"
	"skillbridge/internal/service"
)

// EngagementHandler handles engagement scheduling endpoints
type EngagementHandler struct {
	engagementService *service.EngagementService
}

// NewEngagementHandler creates a new engagement handler
func NewEngagementHandler(engagementService *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

type createEngagementRequest struct {
	OfferingID  int64     `json:"offering_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Schedule    time.Time `json:"schedule"`
	MeetingLink string    `json:"meeting_link"`
}

type updateEngagementRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Schedule    *time.Time `json:"schedule"`
	MeetingLink *string    `json:"meeting_link"`
	Status      *string    `json:"status"`
}

// Create handles POST /v1/engagements
func (h *EngagementHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	var req createEngagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	engagement, err := h.engagementService.CreateEngagement(*actor, req.OfferingID, req.Title, req.Description, req.Schedule, req.MeetingLink)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, toEngagementResponse(engagement))
}

// List handles GET /v1/engagements
func (h *EngagementHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())
	skip, limit := parsePagination(r)

	engagements, err := h.engagementService.ListEngagements(*actor, skip, limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toEngagementResponses(engagements))
}

// ListMine handles GET /v1/engagements/mine
func (h *EngagementHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	engagements, err := h.engagementService.ListMine(*actor)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toEngagementResponses(engagements))
}

// ListByOffering handles GET /v1/offerings/{id}/engagements
func (h *EngagementHandler) ListByOffering(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	offeringID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	engagements, err := h.engagementService.ListByOffering(*actor, offeringID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toEngagementResponses(engagements))
}

// Get handles GET /v1/engagements/{id}
func (h *EngagementHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	engagementID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	engagement, err := h.engagementService.GetEngagement(*actor, engagementID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toEngagementResponse(engagement))
}

// Update handles PATCH /v1/engagements/{id}. Absent fields keep their
// current values.
func (h *EngagementHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	engagementID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	var req updateEngagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := service.EngagementUpdate{
		Title:       req.Title,
		Description: req.Description,
		Schedule:    req.Schedule,
		MeetingLink: req.MeetingLink,
	}
	if req.Status != nil {
		status := models.EngagementStatus(*req.Status)
		update.Status = &status
	}

	engagement, err := h.engagementService.UpdateEngagement(*actor, engagementID, update)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toEngagementResponse(engagement))
}

// Delete handles DELETE /v1/engagements/{id}
func (h *EngagementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	engagementID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	if err := h.engagementService.DeleteEngagement(*actor, engagementID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
