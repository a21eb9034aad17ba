package handlers

import (
	"encoding/json"
	"net/http"

	"skillbridge/internal/service"
)

// OfferingHandler handles catalog offering endpoints
type OfferingHandler struct {
	offeringService *service.OfferingService
}

// NewOfferingHandler creates a new offering handler
func NewOfferingHandler(offeringService *service.OfferingService) *OfferingHandler {
	return &OfferingHandler{offeringService: offeringService}
}

type offeringRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create handles POST /v1/offerings
func (h *OfferingHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	var req offeringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	offering, err := h.offeringService.CreateOffering(*actor, req.Name, req.Description)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, toOfferingResponse(offering))
}

// List handles GET /v1/offerings
func (h *OfferingHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())
	skip, limit := parsePagination(r)

	offerings, err := h.offeringService.ListOfferings(*actor, skip, limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toOfferingResponses(offerings))
}

// Get handles GET /v1/offerings/{id}
func (h *OfferingHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	offeringID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	offering, err := h.offeringService.GetOffering(*actor, offeringID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toOfferingResponse(offering))
}

// Update handles PUT /v1/offerings/{id}
func (h *OfferingHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	offeringID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	var req offeringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	offering, err := h.offeringService.UpdateOffering(*actor, offeringID, req.Name, req.Description)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toOfferingResponse(offering))
}

// Delete handles DELETE /v1/offerings/{id}
func (h *OfferingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	offeringID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	if err := h.offeringService.DeleteOffering(*actor, offeringID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
