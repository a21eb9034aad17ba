package handlers

import (
	"encoding/json"
	"net/http"

	"skillbridge/internal/service"
)

// EnrollmentHandler handles enrollment endpoints
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

type enrollRequest struct {
	DependentID  int64 `json:"dependent_id"`
	EngagementID int64 `json:"engagement_id"`
}

// Enroll handles POST /v1/enrollments
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	enrollment, err := h.enrollmentService.Enroll(r.Context(), *actor, req.DependentID, req.EngagementID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, toEnrollmentResponse(enrollment))
}

// ListForDependent handles GET /v1/dependents/{id}/enrollments
func (h *EnrollmentHandler) ListForDependent(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	dependentID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	enrollments, err := h.enrollmentService.ListForDependent(*actor, dependentID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toEnrollmentResponses(enrollments))
}

// ListForEngagement handles GET /v1/engagements/{id}/enrollments
func (h *EnrollmentHandler) ListForEngagement(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	engagementID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	enrollments, err := h.enrollmentService.ListForEngagement(*actor, engagementID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toEnrollmentResponses(enrollments))
}
