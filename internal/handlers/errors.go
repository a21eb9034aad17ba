package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"skillbridge/internal/auth"
	"skillbridge/internal/authz"
	"skillbridge/internal/service"
	"skillbridge/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, errorResponse{Error: message})
}

// respondWithServiceError maps service, policy and validation errors onto
// HTTP statuses. Anything unrecognized is logged and reported as a 500
// without leaking detail.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var validationErr validation.ValidationError

	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Error())

	case errors.Is(err, service.ErrInvalidStatusChange):
		respondWithError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, auth.ErrInvalidCredential):
		respondWithError(w, http.StatusUnauthorized, "invalid or missing credentials")

	case errors.Is(err, authz.ErrPendingApproval),
		errors.Is(err, authz.ErrRoleNotPermitted),
		errors.Is(err, authz.ErrNotOwner):
		respondWithError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrGuardianNotFound),
		errors.Is(err, service.ErrDependentNotFound),
		errors.Is(err, service.ErrOfferingNotFound),
		errors.Is(err, service.ErrEngagementNotFound),
		errors.Is(err, service.ErrVideoNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrGuardianExists),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrDuplicateEnrollment):
		respondWithError(w, http.StatusConflict, err.Error())

	default:
		log.Printf("Internal error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseIDParam parses a numeric path parameter
func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validation.ValidationError{Field: name, Message: "must be a positive integer"}
	}
	return id, nil
}

// parsePagination reads skip and limit query parameters with sane defaults
func parsePagination(r *http.Request) (skip, limit int) {
	skip = 0
	limit = 100

	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	return skip, limit
}
