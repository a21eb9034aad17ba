package handlers

import (
	"encoding/json"
	"net/http"

	"skillbridge/internal/service"
)

// GuardianHandler handles guardian profile and dependent endpoints
type GuardianHandler struct {
	guardianService *service.GuardianService
}

// NewGuardianHandler creates a new guardian handler
func NewGuardianHandler(guardianService *service.GuardianService) *GuardianHandler {
	return &GuardianHandler{guardianService: guardianService}
}

type registerGuardianRequest struct {
	Email string `json:"email"`
}

// Register handles POST /v1/guardians
func (h *GuardianHandler) Register(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	var req registerGuardianRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	guardian, err := h.guardianService.RegisterGuardian(*actor, req.Email)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, toGuardianResponse(guardian))
}

// Me handles GET /v1/guardians/me
func (h *GuardianHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	guardian, err := h.guardianService.GetGuardian(*actor)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toGuardianResponse(guardian))
}

type dependentRequest struct {
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Interests string `json:"interests"`
}

// CreateDependent handles POST /v1/dependents
func (h *GuardianHandler) CreateDependent(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	var req dependentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dependent, err := h.guardianService.CreateDependent(*actor, req.Name, req.Age, req.Interests)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, toDependentResponse(dependent))
}

// ListDependents handles GET /v1/dependents
func (h *GuardianHandler) ListDependents(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	dependents, err := h.guardianService.ListDependents(*actor)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toDependentResponses(dependents))
}

// GetDependent handles GET /v1/dependents/{id}
func (h *GuardianHandler) GetDependent(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	dependentID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	dependent, err := h.guardianService.GetDependent(*actor, dependentID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toDependentResponse(dependent))
}

// UpdateDependent handles PUT /v1/dependents/{id}
func (h *GuardianHandler) UpdateDependent(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	dependentID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	var req dependentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dependent, err := h.guardianService.UpdateDependent(*actor, dependentID, req.Name, req.Age, req.Interests)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toDependentResponse(dependent))
}
